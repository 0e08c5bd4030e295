package dto

// LoginRequest the operator PIN.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// TokenResponse a signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}
