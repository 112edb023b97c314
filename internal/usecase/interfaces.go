package usecase

import (
	"context"

	"undulcito/internal/domain/entity"
)

// AuthProvider is the Firebase Auth surface the use cases need.
type AuthProvider interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (*entity.AuthSession, error)
	RefreshIdToken(ctx context.Context, refreshToken string) (*entity.AuthSession, error)
}
