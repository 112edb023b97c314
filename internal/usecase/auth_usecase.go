package usecase

import (
	"context"
	"strings"

	"undulcito/internal/domain/entity"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
)

type AuthUseCase struct {
	auth        AuthProvider
	adminEmails map[string]struct{}
}

// NewAuthUseCase builds the admin auth flow. An empty allowlist admits every
// authenticated user.
func NewAuthUseCase(auth AuthProvider, adminEmails []string) *AuthUseCase {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allow[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &AuthUseCase{
		auth:        auth,
		adminEmails: allow,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	session, err := uc.auth.SignInWithEmailPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}
	return session, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (*entity.AuthSession, error) {
	session, err := uc.auth.RefreshIdToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}
	return session, nil
}

func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	identity, err := uc.auth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	return identity, nil
}

// IsAdmin checks identity against the admin allowlist.
func (uc *AuthUseCase) IsAdmin(identity *entity.Identity) bool {
	if len(uc.adminEmails) == 0 {
		return true
	}
	_, ok := uc.adminEmails[strings.ToLower(identity.Email)]
	return ok
}
