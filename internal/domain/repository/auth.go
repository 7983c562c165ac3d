package repository

import (
	"context"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type OAuthProvider interface {
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for the GitHub identity behind it.
	Exchange(ctx context.Context, code string) (entity.SessionUser, error)
}

type TokenIssuer interface {
	Issue(user entity.SessionUser) (string, error)
	Parse(token string) (entity.SessionUser, error)
}
