package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"experiencehub/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 100
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ByExperience(ctx context.Context, experienceID int64, limit, offset int) ([]Row, error) {
	args := m.Called(ctx, experienceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *mockRepo) Like(ctx context.Context, commentID, userID int64) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

func (m *mockRepo) Unlike(ctx context.Context, commentID, userID int64) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

func (m *mockRepo) LikesCount(ctx context.Context, commentID int64) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) IsLiked(ctx context.Context, commentID, userID int64) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

type mockExperiences struct {
	mock.Mock
}

func (m *mockExperiences) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) UserCommented(ctx context.Context, fromUserID, experienceID, commentID, recipientID int64) error {
	return m.Called(ctx, fromUserID, experienceID, commentID, recipientID).Error(0)
}

func TestAdd_NotifiesHost(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	notifier := new(mockNotifier)
	svc := NewService(repo, experiences, notifier)

	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)
	notifier.On("UserCommented", mock.Anything, int64(2), int64(10), int64(100), int64(1)).Return(nil)

	created, err := svc.Add(context.Background(), 10, 2, CreateRequest{Content: "Nice!"})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	notifier.AssertExpectations(t)
}

func TestAdd_HostCommentingOwnExperienceIsSilent(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	notifier := new(mockNotifier)
	svc := NewService(repo, experiences, notifier)

	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)

	_, err := svc.Add(context.Background(), 10, 1, CreateRequest{Content: "See you there"})

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "UserCommented",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdd_ExperienceMissing(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	svc := NewService(repo, experiences, new(mockNotifier))

	experiences.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(context.Background(), 404, 2, CreateRequest{Content: "?"})

	assert.ErrorIs(t, err, ErrExperienceNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdd_NotificationFailureIsSwallowed(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	notifier := new(mockNotifier)
	svc := NewService(repo, experiences, notifier)

	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)
	notifier.On("UserCommented", mock.Anything, int64(2), int64(10), int64(100), int64(1)).
		Return(errors.New("insert failed"))

	_, err := svc.Add(context.Background(), 10, 2, CreateRequest{Content: "Nice!"})

	assert.NoError(t, err)
}

func TestEdit_AuthorOnly(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockExperiences), new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, UserID: 2, ExperienceID: 10}, nil)

	_, err := svc.Edit(context.Background(), 5, 3, UpdateRequest{Content: "edited"})

	assert.ErrorIs(t, err, ErrNotAuthor)
}

func TestDelete_AuthorAllowed(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockExperiences), new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, UserID: 2, ExperienceID: 10}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 5, 2)

	assert.NoError(t, err)
}

func TestDelete_HostAllowed(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	svc := NewService(repo, experiences, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, UserID: 2, ExperienceID: 10}, nil)
	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 5, 1)

	assert.NoError(t, err)
}

func TestDelete_StrangerRejected(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	svc := NewService(repo, experiences, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, UserID: 2, ExperienceID: 10}, nil)
	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)

	err := svc.Delete(context.Background(), 5, 9)

	assert.ErrorIs(t, err, ErrNotAllowed)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestByExperience_RendersAuthorAndLikes(t *testing.T) {
	repo := new(mockRepo)
	experiences := new(mockExperiences)
	svc := NewService(repo, experiences, new(mockNotifier))

	experiences.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.Experience{ID: 10, UserID: 1}, nil)
	repo.On("ByExperience", mock.Anything, int64(10), 20, 0).Return([]Row{
		{
			Comment: domain.Comment{ID: 5, Content: "Nice!", ExperienceID: 10, UserID: 2},
			Author:  domain.User{ID: 2, Name: "Alice"},
		},
	}, nil)
	repo.On("LikesCount", mock.Anything, int64(5)).Return(int64(3), nil)
	repo.On("IsLiked", mock.Anything, int64(5), int64(9)).Return(true, nil)

	viewer := int64(9)
	result, err := svc.ByExperience(context.Background(), 10, &viewer, 0, 0)

	assert.NoError(t, err)
	if assert.Len(t, result.Comments, 1) {
		got := result.Comments[0]
		assert.Equal(t, "Alice", got.Author.Name)
		assert.Equal(t, int64(3), got.LikesCount)
		if assert.NotNil(t, got.IsLiked) {
			assert.True(t, *got.IsLiked)
		}
	}
	assert.Nil(t, result.NextCursor)
}
