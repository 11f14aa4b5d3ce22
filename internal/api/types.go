package api

import "github.com/rgodse/claimdesk/internal/claims"

// User describes the signed-in account.
type User struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	OrganisationName string `json:"organisationName"`
}

// Session is the result of a successful authentication call.
type Session struct {
	Token string
	User  User
}

// LoginRequest is the payload for /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for /api/user/register.
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganisationName string `json:"organisationName"`
}

// VerifyOTPRequest is the payload for /api/user/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// CustomerQuery narrows a customer search. Zero value lists everyone.
type CustomerQuery struct {
	Name   string
	Mobile string
}

// authResponse mirrors the backend's auth envelope.
type authResponse struct {
	Message string `json:"message"`
	Data    struct {
		Token   string `json:"token"`
		User    User   `json:"user"`
		Message string `json:"message"`
	} `json:"data"`
}

// messageResponse mirrors endpoints that only return a status message.
type messageResponse struct {
	Message string `json:"message"`
}

// claimsResponse mirrors /api/claims/get-claims.
type claimsResponse struct {
	Message string         `json:"message"`
	Data    []claims.Claim `json:"data"`
}

// claimResponse mirrors /api/claims/get-claim/:id.
type claimResponse struct {
	Message string       `json:"message"`
	Data    claims.Claim `json:"data"`
}

// newClaimResponse mirrors /api/claims/add-claim (id allocation).
type newClaimResponse struct {
	Message string `json:"message"`
	Data    struct {
		ID string `json:"_id"`
	} `json:"data"`
}

// customersResponse mirrors /api/customers/get-customers.
type customersResponse struct {
	Message string            `json:"message"`
	Data    []claims.Customer `json:"data"`
}
