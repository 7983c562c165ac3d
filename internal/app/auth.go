package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

func (s *ServiceImpl) LoginURL(_ context.Context) (string, error) {
	if s.oauth == nil {
		return "", fmt.Errorf("oauth: %w", usecase.ErrCredentialsMissing)
	}
	return s.oauth.AuthCodeURL(uuid.NewString()), nil
}

func (s *ServiceImpl) CompleteLogin(ctx context.Context, code string) (string, entity.SessionUser, error) {
	if code == "" {
		return "", entity.SessionUser{}, usecase.Invalid("code is required")
	}
	if s.oauth == nil {
		return "", entity.SessionUser{}, fmt.Errorf("oauth: %w", usecase.ErrCredentialsMissing)
	}

	user, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", entity.SessionUser{}, err
	}
	if user, err = s.withRole(ctx, user); err != nil {
		return "", entity.SessionUser{}, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", entity.SessionUser{}, err
	}
	return token, user, nil
}

// Authenticate re-reads the role on every call, so role changes apply to
// sessions issued earlier.
func (s *ServiceImpl) Authenticate(ctx context.Context, token string) (entity.SessionUser, error) {
	if token == "" {
		return entity.SessionUser{}, usecase.ErrUnauthorized
	}
	user, err := s.tokens.Parse(token)
	if err != nil {
		return entity.SessionUser{}, err
	}
	return s.withRole(ctx, user)
}

func (s *ServiceImpl) withRole(ctx context.Context, user entity.SessionUser) (entity.SessionUser, error) {
	role, err := s.ResolveRole(ctx, user.Login)
	if err != nil {
		return entity.SessionUser{}, err
	}
	user.Role = role
	user.Perms = entity.PermissionsFor(role)
	return user, nil
}
