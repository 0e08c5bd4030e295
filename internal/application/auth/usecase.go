// Package auth implements the single-operator PIN lock. The shop sets
// POS_PIN_HASH (a bcrypt hash); a correct PIN yields a session token.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
	"github.com/kiranapos/kirana-api/pkg/jwt"
)

// JWTConfig session token settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase verifies the operator PIN and issues session tokens.
type AuthUseCase struct {
	pinHash string
	jwtCfg  JWTConfig
}

// NewAuthUseCase builds the use case. An empty pinHash means login always fails.
func NewAuthUseCase(pinHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{pinHash: pinHash, jwtCfg: jwtCfg}
}

// Login checks the PIN against the configured bcrypt hash and returns a token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenResponse, error) {
	if in.PIN == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.pinHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.pinHash), []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, "operator", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}
