package experience

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

func (m *mockRepo) Create(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) Feed(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *mockRepo) Search(ctx context.Context, params SearchParams, limit, offset int) ([]domain.Experience, error) {
	args := m.Called(ctx, params, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *mockRepo) ByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *mockRepo) ByTag(ctx context.Context, tagID int64, limit, offset int) ([]domain.Experience, error) {
	args := m.Called(ctx, tagID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *mockRepo) FavoritesByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *mockRepo) Attend(ctx context.Context, experienceID, userID int64) error {
	return m.Called(ctx, experienceID, userID).Error(0)
}

func (m *mockRepo) Unattend(ctx context.Context, experienceID, userID int64) error {
	return m.Called(ctx, experienceID, userID).Error(0)
}

func (m *mockRepo) AttendeeExists(ctx context.Context, experienceID, userID int64) (bool, error) {
	args := m.Called(ctx, experienceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Attendees(ctx context.Context, experienceID int64, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, experienceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockRepo) AttendeesCount(ctx context.Context, experienceID int64) (int64, error) {
	args := m.Called(ctx, experienceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) Favorite(ctx context.Context, experienceID, userID int64) error {
	return m.Called(ctx, experienceID, userID).Error(0)
}

func (m *mockRepo) Unfavorite(ctx context.Context, experienceID, userID int64) error {
	return m.Called(ctx, experienceID, userID).Error(0)
}

func (m *mockRepo) FavoriteExists(ctx context.Context, experienceID, userID int64) (bool, error) {
	args := m.Called(ctx, experienceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) FavoritesCount(ctx context.Context, experienceID int64) (int64, error) {
	args := m.Called(ctx, experienceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) CommentsCount(ctx context.Context, experienceID int64) (int64, error) {
	args := m.Called(ctx, experienceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) Tags(ctx context.Context, experienceID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, experienceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockRepo) SetTags(ctx context.Context, experienceID int64, tagIDs []int64) error {
	return m.Called(ctx, experienceID, tagIDs).Error(0)
}

func (m *mockRepo) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRepo) FollowersCountOf(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) IsFollowedBy(ctx context.Context, followerID, followingID int64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) UserAttending(ctx context.Context, fromUserID, experienceID, recipientID int64) error {
	return m.Called(ctx, fromUserID, experienceID, recipientID).Error(0)
}

func (m *mockNotifier) UserUnattending(ctx context.Context, fromUserID, experienceID, recipientID int64) error {
	return m.Called(ctx, fromUserID, experienceID, recipientID).Error(0)
}

func (m *mockNotifier) UserKicked(ctx context.Context, fromUserID, experienceID, kickedUserID int64) error {
	return m.Called(ctx, fromUserID, experienceID, kickedUserID).Error(0)
}

func hostedExperience(id, hostID int64) *domain.Experience {
	return &domain.Experience{ID: id, Title: "Trail run", UserID: hostID}
}

func TestAttend_NotifiesHost(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("AttendeeExists", mock.Anything, int64(10), int64(2)).Return(false, nil)
	repo.On("Attend", mock.Anything, int64(10), int64(2)).Return(nil)
	notifier.On("UserAttending", mock.Anything, int64(2), int64(10), int64(1)).Return(nil)

	err := svc.Attend(context.Background(), 10, 2)

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestAttend_HostJoiningOwnExperienceStillNotifies(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("AttendeeExists", mock.Anything, int64(10), int64(1)).Return(false, nil)
	repo.On("Attend", mock.Anything, int64(10), int64(1)).Return(nil)
	notifier.On("UserAttending", mock.Anything, int64(1), int64(10), int64(1)).Return(nil)

	err := svc.Attend(context.Background(), 10, 1)

	assert.NoError(t, err)
	notifier.AssertCalled(t, "UserAttending", mock.Anything, int64(1), int64(10), int64(1))
}

func TestAttend_Duplicate(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("AttendeeExists", mock.Anything, int64(10), int64(2)).Return(true, nil)

	err := svc.Attend(context.Background(), 10, 2)

	assert.ErrorIs(t, err, ErrAlreadyAttending)
	notifier.AssertNotCalled(t, "UserAttending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttend_NotificationFailureIsSwallowed(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("AttendeeExists", mock.Anything, int64(10), int64(2)).Return(false, nil)
	repo.On("Attend", mock.Anything, int64(10), int64(2)).Return(nil)
	notifier.On("UserAttending", mock.Anything, int64(2), int64(10), int64(1)).
		Return(errors.New("insert failed"))

	err := svc.Attend(context.Background(), 10, 2)

	assert.NoError(t, err)
}

func TestUnattend_NotifiesHost(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("Unattend", mock.Anything, int64(10), int64(2)).Return(nil)
	notifier.On("UserUnattending", mock.Anything, int64(2), int64(10), int64(1)).Return(nil)

	err := svc.Unattend(context.Background(), 10, 2)

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestKick_OnlyHostMayKick(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)

	err := svc.Kick(context.Background(), 10, 2, 3)

	assert.ErrorIs(t, err, ErrNotOwner)
	notifier.AssertNotCalled(t, "UserKicked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKick_HostCannotBeKicked(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)

	err := svc.Kick(context.Background(), 10, 1, 1)

	assert.ErrorIs(t, err, ErrCannotKickOwner)
}

func TestKick_NotifiesKickedUser(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("Unattend", mock.Anything, int64(10), int64(3)).Return(nil)
	notifier.On("UserKicked", mock.Anything, int64(1), int64(10), int64(3)).Return(nil)

	err := svc.Kick(context.Background(), 10, 1, 3)

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestFavorite_NoNotification(t *testing.T) {
	repo := new(mockRepo)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("FavoriteExists", mock.Anything, int64(10), int64(2)).Return(false, nil)
	repo.On("Favorite", mock.Anything, int64(10), int64(2)).Return(nil)

	err := svc.Favorite(context.Background(), 10, 2)

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "UserAttending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_EnrichesForViewer(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("UserByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Host"}, nil)
	repo.On("AttendeesCount", mock.Anything, int64(10)).Return(int64(5), nil)
	repo.On("CommentsCount", mock.Anything, int64(10)).Return(int64(2), nil)
	repo.On("FavoritesCount", mock.Anything, int64(10)).Return(int64(1), nil)
	repo.On("Tags", mock.Anything, int64(10)).Return([]domain.Tag{{ID: 1, Name: "outdoors"}}, nil)
	repo.On("AttendeeExists", mock.Anything, int64(10), int64(2)).Return(true, nil)
	repo.On("FavoriteExists", mock.Anything, int64(10), int64(2)).Return(false, nil)
	repo.On("Attendees", mock.Anything, int64(10), 5, 0).
		Return([]domain.User{{ID: 3, Name: "Ben"}}, nil)
	repo.On("FollowersCountOf", mock.Anything, int64(3)).Return(int64(7), nil)
	repo.On("IsFollowedBy", mock.Anything, int64(2), int64(3)).Return(true, nil)

	viewer := int64(2)
	resp, err := svc.Get(context.Background(), 10, &viewer)

	assert.NoError(t, err)
	assert.Equal(t, "Host", resp.Owner.Name)
	assert.Equal(t, int64(5), resp.AttendeesCount)
	if assert.NotNil(t, resp.IsAttending) {
		assert.True(t, *resp.IsAttending)
	}
	if assert.NotNil(t, resp.IsFavorited) {
		assert.False(t, *resp.IsFavorited)
	}
	assert.Len(t, resp.Tags, 1)
	if assert.Len(t, resp.Attendees, 1) {
		assert.Equal(t, "Ben", resp.Attendees[0].Name)
		assert.Equal(t, int64(7), resp.Attendees[0].FollowersCount)
		assert.True(t, resp.Attendees[0].IsFollowing)
	}
}

func TestGet_AnonymousViewerHasNullFlags(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)
	repo.On("UserByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	repo.On("AttendeesCount", mock.Anything, int64(10)).Return(int64(0), nil)
	repo.On("CommentsCount", mock.Anything, int64(10)).Return(int64(0), nil)
	repo.On("FavoritesCount", mock.Anything, int64(10)).Return(int64(0), nil)
	repo.On("Tags", mock.Anything, int64(10)).Return([]domain.Tag{}, nil)
	repo.On("Attendees", mock.Anything, int64(10), 5, 0).Return([]domain.User{}, nil)

	resp, err := svc.Get(context.Background(), 10, nil)

	assert.NoError(t, err)
	assert.Nil(t, resp.IsAttending)
	assert.Nil(t, resp.IsFavorited)
	repo.AssertNotCalled(t, "AttendeeExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 404, nil)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(10)).Return(hostedExperience(10, 1), nil)

	_, err := svc.Update(context.Background(), 10, 2, UpdateRequest{Title: "x", Content: "y"}, nil)

	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
