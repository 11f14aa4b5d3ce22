package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rgodse/claimdesk/internal/claims"
	"github.com/rgodse/claimdesk/internal/storage"
)

const (
	defaultUserAgent = "claimdesk/0.1"
	requestTimeout   = 15 * time.Second

	// authTokenKey is the durable-storage key holding the bearer token.
	authTokenKey = "authToken"
)

// TokenSource supplies the bearer credential for authenticated requests.
// An empty token means no credential is attached.
type TokenSource interface {
	Token() string
}

// TokenStore keeps the bearer token in durable storage. It implements
// TokenSource and is shared between the auth flow and the AuthClient.
type TokenStore struct {
	store *storage.Store
}

// NewTokenStore returns a TokenStore over the given persistence adapter.
func NewTokenStore(store *storage.Store) *TokenStore {
	return &TokenStore{store: store}
}

// Token returns the stored bearer token, or empty when signed out.
func (t *TokenStore) Token() string {
	var token string
	if !t.store.Get(storage.Durable, authTokenKey, &token) {
		return ""
	}
	return token
}

// SetToken persists the bearer token.
func (t *TokenStore) SetToken(token string) {
	t.store.Set(storage.Durable, authTokenKey, token)
}

// Clear removes the stored token (sign out).
func (t *TokenStore) Clear() {
	t.store.Delete(storage.Durable, authTokenKey)
}

// Client talks to the claims backend without attaching credentials. It
// serves the authentication lifecycle; everything else goes through
// AuthClient.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given base URL.
func NewClient(base string) (*Client, error) {
	parsed, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (Session, error) {
	var payload authResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login", req, "", &payload); err != nil {
		return Session{}, err
	}
	if payload.Data.Token == "" {
		return Session{}, fmt.Errorf("login succeeded but no token returned")
	}
	return Session{Token: payload.Data.Token, User: payload.Data.User}, nil
}

// Register creates an account. Depending on backend configuration the
// response may or may not carry a usable token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	var payload authResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/register", req, "", &payload); err != nil {
		return Session{}, err
	}
	return Session{Token: payload.Data.Token, User: payload.Data.User}, nil
}

// ForgotPassword starts the password reset flow for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var payload messageResponse
	return c.do(ctx, http.MethodPost, "/api/user/forgot-password", body, "", &payload)
}

// VerifyOTP completes the reset flow and returns a fresh session.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (Session, error) {
	var payload authResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/verify-otp", req, "", &payload); err != nil {
		return Session{}, err
	}
	return Session{Token: payload.Data.Token, User: payload.Data.User}, nil
}

// AuthClient wraps Client and injects the bearer token from its TokenSource
// into every request.
type AuthClient struct {
	client *Client
	tokens TokenSource
}

// NewAuthClient returns an AuthClient reading credentials from tokens.
func NewAuthClient(client *Client, tokens TokenSource) *AuthClient {
	return &AuthClient{client: client, tokens: tokens}
}

// GetClaims retrieves the full claim list.
func (a *AuthClient) GetClaims(ctx context.Context) ([]claims.Claim, error) {
	var payload claimsResponse
	if err := a.do(ctx, http.MethodGet, "/api/claims/get-claims", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// GetClaim retrieves one claim by id.
func (a *AuthClient) GetClaim(ctx context.Context, id string) (claims.Claim, error) {
	if strings.TrimSpace(id) == "" {
		return claims.Claim{}, fmt.Errorf("claim id required")
	}
	var payload claimResponse
	if err := a.do(ctx, http.MethodGet, "/api/claims/get-claim/"+url.PathEscape(id), nil, &payload); err != nil {
		return claims.Claim{}, err
	}
	return payload.Data, nil
}

// NewClaimID allocates a fresh claim identifier for an intake flow.
func (a *AuthClient) NewClaimID(ctx context.Context) (string, error) {
	var payload newClaimResponse
	if err := a.do(ctx, http.MethodGet, "/api/claims/add-claim", nil, &payload); err != nil {
		return "", err
	}
	if payload.Data.ID == "" {
		return "", fmt.Errorf("backend returned no claim id")
	}
	return payload.Data.ID, nil
}

// SaveClaimSection submits one form section's data for the claim. The wire
// index is fixed per section: customer 1, tyre 2, vehicle 3, issuance 4.
func (a *AuthClient) SaveClaimSection(ctx context.Context, claimID string, section claims.Section, payload any) error {
	if strings.TrimSpace(claimID) == "" {
		return fmt.Errorf("claim id required")
	}
	path := fmt.Sprintf("/api/claims/add-claim/%s/%d", url.PathEscape(claimID), section.Index())
	var resp messageResponse
	return a.do(ctx, http.MethodPost, path, payload, &resp)
}

// GetCustomers searches customers by name or mobile number.
func (a *AuthClient) GetCustomers(ctx context.Context, query CustomerQuery) ([]claims.Customer, error) {
	values := url.Values{}
	if name := strings.TrimSpace(query.Name); name != "" {
		values.Set("name", name)
	}
	if mobile := strings.TrimSpace(query.Mobile); mobile != "" {
		values.Set("mobile", mobile)
	}
	rel := &url.URL{Path: "/api/customers/get-customers", RawQuery: values.Encode()}
	var payload customersResponse
	if err := a.client.doURL(ctx, http.MethodGet, rel, nil, a.tokens.Token(), &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// ClaimPDFURL returns the acknowledgement document URL for a claim. The
// document is opened in an external viewer, not fetched programmatically.
func (a *AuthClient) ClaimPDFURL(id string) string {
	rel := &url.URL{Path: "/api/claims/get-claim-pdf/" + url.PathEscape(id)}
	return a.client.baseURL.ResolveReference(rel).String()
}

func (a *AuthClient) do(ctx context.Context, method, path string, body, dest any) error {
	return a.client.do(ctx, method, path, body, a.tokens.Token(), dest)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, token, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, token string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr messageResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
