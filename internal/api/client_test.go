package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/storage"
)

func TestParseBaseURL_NormalizesAndValidates(t *testing.T) {
	u, err := parseBaseURL("claims.example.com:9000/some/path?x=1")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatalf("parseBaseURL accepted empty base")
	}
}

func TestLogin_ReturnsSessionAndOmitsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody LoginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"data": map[string]any{
				"token": "tok-123",
				"user":  map[string]string{"email": "jane@example.com", "organisationName": "Sharma Tyres"},
			},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	session, err := c.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token != "tok-123" {
		t.Fatalf("Token = %q", session.Token)
	}
	if session.User.OrganisationName != "Sharma Tyres" {
		t.Fatalf("User = %+v", session.User)
	}
	if gotAuth != "" {
		t.Fatalf("login request carried Authorization %q, want none", gotAuth)
	}
	if gotBody.Email != "jane@example.com" {
		t.Fatalf("request body = %+v", gotBody)
	}
}

func TestAuthClient_InjectsBearerFromStorage(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(claimsResponse{Data: []claims.Claim{{ID: "c1", BillNumber: "B-1"}}})
	}))
	t.Cleanup(server.Close)

	store := storage.Open(t.TempDir(), nil)
	tokens := NewTokenStore(store)
	tokens.SetToken("tok-xyz")

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	auth := NewAuthClient(c, tokens)

	got, err := auth.GetClaims(context.Background())
	if err != nil {
		t.Fatalf("GetClaims: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if len(got) != 1 || got[0].BillNumber != "B-1" {
		t.Fatalf("claims = %+v", got)
	}
}

func TestSaveClaimSection_UsesWireIndexPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotPayload claims.CustomerDetails
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "saved"})
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	auth := NewAuthClient(c, staticToken("t"))

	payload := claims.CustomerDetails{CustomerName: "Jane Doe", BillNumber: "B-9"}
	if err := auth.SaveClaimSection(context.Background(), "abc123", claims.SectionCustomer, payload); err != nil {
		t.Fatalf("SaveClaimSection: %v", err)
	}
	if gotPath != "/api/claims/add-claim/abc123/1" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotPayload.CustomerName != "Jane Doe" {
		t.Fatalf("payload = %+v", gotPayload)
	}

	if err := auth.SaveClaimSection(context.Background(), " ", claims.SectionCustomer, payload); err == nil {
		t.Fatalf("SaveClaimSection accepted empty claim id")
	}
}

func TestGetCustomers_EncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(customersResponse{Data: []claims.Customer{{Name: "Jane"}}})
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	auth := NewAuthClient(c, staticToken("t"))

	got, err := auth.GetCustomers(context.Background(), CustomerQuery{Name: "Jane"})
	if err != nil {
		t.Fatalf("GetCustomers: %v", err)
	}
	if gotQuery != "name=Jane" {
		t.Fatalf("query = %q", gotQuery)
	}
	if len(got) != 1 {
		t.Fatalf("customers = %+v", got)
	}
}

func TestErrorResponse_SurfacesBackendMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(messageResponse{Message: "invalid credentials"})
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	_, err := c.Login(context.Background(), LoginRequest{})
	if err == nil {
		t.Fatalf("Login succeeded on 401")
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("error %q missing backend message", err)
	}
}

func TestClaimPDFURL(t *testing.T) {
	c, _ := NewClient("https://claims.example.com")
	auth := NewAuthClient(c, staticToken(""))
	want := "https://claims.example.com/api/claims/get-claim-pdf/c42"
	if got := auth.ClaimPDFURL("c42"); got != want {
		t.Fatalf("ClaimPDFURL = %q, want %q", got, want)
	}
}

// staticToken is a fixed TokenSource for tests.
type staticToken string

func (s staticToken) Token() string { return string(s) }
