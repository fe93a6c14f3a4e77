package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"experiencehub/internal/domain"
	"experiencehub/internal/pkg/password"
	"experiencehub/internal/pkg/token"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newTestService(repo UserRepositoryInterface) (*Service, *token.Service) {
	tokens := token.New("test-secret")
	return NewService(repo, tokens, 15*time.Minute, 7*24*time.Hour), tokens
}

func TestRegister_MintsEmbeddedTokenPair(t *testing.T) {
	repo := new(mockUserRepo)
	svc, tokens := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).
		Return(nil)

	user, pair, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New User",
		Email:    "New@Example.com",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, password.Verify("supersecret", user.PasswordHash))

	// Access token must embed the refresh token, which carries the user id.
	accessPayload, ok := tokens.Verify(pair.AccessToken)
	assert.True(t, ok)
	assert.Equal(t, pair.RefreshToken, accessPayload.RefreshToken)

	refreshPayload, ok := tokens.Verify(pair.RefreshToken)
	assert.True(t, ok)
	if assert.NotNil(t, refreshPayload.UserID) {
		assert.Equal(t, int64(42), *refreshPayload.UserID)
	}

	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Dup",
		Email:    "taken@example.com",
		Password: "supersecret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc, tokens := newTestService(repo)

	hash, _ := password.Hash("supersecret")
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}, nil)

	user, pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	refreshPayload, ok := tokens.Verify(pair.RefreshToken)
	assert.True(t, ok)
	if assert.NotNil(t, refreshPayload.UserID) {
		assert.Equal(t, int64(7), *refreshPayload.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	hash, _ := password.Hash("supersecret")
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: hash,
	}, nil)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	hash, _ := password.Hash("old-password")
	user := &domain.User{ID: 7, PasswordHash: hash}

	err := svc.ChangePassword(context.Background(), user, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	repo.On("Update", mock.Anything, user).Return(nil)
	err = svc.ChangePassword(context.Background(), user, ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	assert.NoError(t, err)
	assert.True(t, password.Verify("new-password", user.PasswordHash))
}

func TestChangeEmail_NormalizesAndVerifies(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)

	hash, _ := password.Hash("supersecret")
	user := &domain.User{ID: 7, Email: "old@example.com", PasswordHash: hash}

	repo.On("Update", mock.Anything, user).Return(nil)

	err := svc.ChangeEmail(context.Background(), user, ChangeEmailRequest{
		Email:    "  NEW@Example.com ",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}
