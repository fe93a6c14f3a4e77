package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
	"experiencehub/internal/pkg/password"
	"experiencehub/internal/pkg/token"
)

type Service struct {
	users      UserRepositoryInterface
	tokens     *token.Service
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(users UserRepositoryInterface, tokens *token.Service, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TokenPair is what login/register hand back: the refresh token goes into the
// cookie, the access token (which embeds the refresh token string) into the
// response body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.mintTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.mintTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *Service) ChangeEmail(ctx context.Context, user *domain.User, req ChangeEmailRequest) error {
	if !password.Verify(req.Password, user.PasswordHash) {
		return ErrInvalidPassword
	}

	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.UpdatedAt = time.Now()
	return s.users.Update(ctx, user)
}

func (s *Service) ChangePassword(ctx context.Context, user *domain.User, req ChangePasswordRequest) error {
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return s.users.Update(ctx, user)
}

// mintTokens creates the double-token pair: a refresh token carrying the
// user id, and an access token carrying the refresh token string.
func (s *Service) mintTokens(userID int64) (*TokenPair, error) {
	refresh, err := s.tokens.Create(token.Payload{UserID: &userID}, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.Create(token.Payload{RefreshToken: refresh}, s.accessTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
