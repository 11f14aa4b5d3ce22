package state

import (
	"errors"
	"testing"
	"time"

	"github.com/rgodse/claimdesk/internal/claims"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	list := []claims.Claim{{ID: "c1", BillNumber: "B-1"}, {ID: "c2"}}

	before := time.Now()
	s.Update(list, nil)

	snap := s.Snapshot()
	if len(snap.Claims) != 2 || snap.Claims[0].ID != "c1" {
		t.Fatalf("snapshot claims = %#v, want 2 items", snap.Claims)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Claims[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Claims[0].ID != "c1" {
		t.Fatalf("Snapshot should clone claims; got id %q want c1", snap2.Claims[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]claims.Claim{{ID: "c1"}}, nil)

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if len(snap.Claims) != 1 || snap.Claims[0].ID != "c1" {
		t.Fatalf("claims changed on error: %#v", snap.Claims)
	}
	if snap.LastError == nil || !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapped %v", snap.LastError, origErr)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestSnapshot_IsOffline(t *testing.T) {
	var s Store
	if s.Snapshot().IsOffline() {
		t.Fatalf("fresh store reported offline")
	}
	s.Update(nil, errors.New("down"))
	if s.Snapshot().IsOffline() {
		t.Fatalf("offline after a single failure")
	}
	s.Update(nil, errors.New("down"))
	if !s.Snapshot().IsOffline() {
		t.Fatalf("not offline after two failures")
	}

	s.Update(nil, nil)
	if s.Snapshot().IsOffline() {
		t.Fatalf("still offline after a successful update")
	}
}
