package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type layout struct {
	Columns []string `json:"columns"`
	Width   int      `json:"width"`
}

func TestSetGet_RoundTripsDurable(t *testing.T) {
	s := Open(t.TempDir(), nil)

	in := layout{Columns: []string{"billNumber", "customerName"}, Width: 150}
	s.Set(Durable, "claims-view", in)

	var out layout
	if !s.Get(Durable, "claims-view", &out) {
		t.Fatalf("Get reported absent after Set")
	}
	if out.Width != in.Width || len(out.Columns) != 2 || out.Columns[0] != "billNumber" {
		t.Fatalf("Get = %+v, want %+v", out, in)
	}
}

func TestSetGet_SessionDoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)

	s.Set(Session, "claimsFormData", layout{Width: 1})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("session write created %d files on disk", len(entries))
	}

	var out layout
	if !s.Get(Session, "claimsFormData", &out) {
		t.Fatalf("session value missing")
	}
}

func TestGet_MissingKeyIsAbsent(t *testing.T) {
	s := Open(t.TempDir(), nil)
	var out layout
	if s.Get(Durable, "never-set", &out) {
		t.Fatalf("Get reported found for missing key")
	}
}

func TestGet_CorruptValueIsAbsent(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out layout
	if s.Get(Durable, "bad", &out) {
		t.Fatalf("Get reported found for corrupt value")
	}
}

func TestGet_CorruptValueLeavesDestUntouched(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)

	// Truncated mid-value: the decoder consumes "columns" before failing.
	partial := []byte(`{"columns":["billNumber"],"width":`)
	if err := os.WriteFile(filepath.Join(dir, "claims-view.json"), partial, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := layout{Columns: []string{"status"}, Width: 80}
	if s.Get(Durable, "claims-view", &out) {
		t.Fatalf("Get reported found for truncated value")
	}
	if out.Width != 80 || len(out.Columns) != 1 || out.Columns[0] != "status" {
		t.Fatalf("truncated entry modified dest: %+v", out)
	}
}

func TestGet_PartialValueMergesOverDest(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)
	if err := os.WriteFile(filepath.Join(dir, "claims-view.json"), []byte(`{"width":120}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := layout{Columns: []string{"status"}, Width: 80}
	if !s.Get(Durable, "claims-view", &out) {
		t.Fatalf("Get reported absent for valid value")
	}
	if out.Width != 120 {
		t.Fatalf("Width = %d, want 120", out.Width)
	}
	if len(out.Columns) != 1 || out.Columns[0] != "status" {
		t.Fatalf("fields absent from the snapshot lost their defaults: %+v", out)
	}
}

func TestSet_NilValueRemoves(t *testing.T) {
	s := Open(t.TempDir(), nil)
	s.Set(Durable, "k", layout{Width: 9})
	s.Set(Durable, "k", nil)

	var out layout
	if s.Get(Durable, "k", &out) {
		t.Fatalf("key not removed by nil Set")
	}
}

func TestTerminate_ClearsSelectedNamespace(t *testing.T) {
	s := Open(t.TempDir(), nil)
	s.Set(Durable, "a", layout{Width: 1})
	s.Set(Session, "b", layout{Width: 2})

	s.Terminate(Session)

	var out layout
	if s.Get(Session, "b", &out) {
		t.Fatalf("session key survived Terminate(Session)")
	}
	if !s.Get(Durable, "a", &out) {
		t.Fatalf("durable key lost by Terminate(Session)")
	}
}

func TestTerminate_NoArgsClearsEverything(t *testing.T) {
	s := Open(t.TempDir(), nil)
	s.Set(Durable, "a", layout{Width: 1})
	s.Set(Session, "b", layout{Width: 2})

	s.Terminate()

	var out layout
	if s.Get(Durable, "a", &out) || s.Get(Session, "b", &out) {
		t.Fatalf("Terminate() left keys behind")
	}
}
