package user

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
	"experiencehub/internal/pkg/files"
)

const defaultListLimit = 20

// Notifier is the slice of the notification service the user domain needs.
type Notifier interface {
	UserFollowed(ctx context.Context, fromUserID, recipientID int64) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Profile loads a public profile with its counters. viewerID is nil for
// anonymous requests, which leaves IsFollowing false.
func (s *Service) Profile(ctx context.Context, id int64, viewerID *int64) (*Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.buildProfile(ctx, u, viewerID)
}

func (s *Service) buildProfile(ctx context.Context, u *domain.User, viewerID *int64) (*Profile, error) {
	followers, err := s.repo.FollowersCount(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.repo.FollowingCount(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	hosted, err := s.repo.HostedExperiencesCount(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		PublicUser:             u.Public(),
		FollowersCount:         followers,
		FollowingCount:         following,
		HostedExperiencesCount: hosted,
	}

	if viewerID != nil && *viewerID != u.ID {
		profile.IsFollowing, err = s.repo.IsFollowing(ctx, *viewerID, u.ID)
		if err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func (s *Service) Follow(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return ErrCannotFollowSelf
	}

	if _, err := s.repo.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	already, err := s.repo.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyFollowing
	}

	if err := s.repo.Follow(ctx, followerID, followingID); err != nil {
		return err
	}

	// The follow is committed; a failed notification never unwinds it.
	if err := s.notifier.UserFollowed(ctx, followerID, followingID); err != nil {
		log.Printf("notify follow: user %d -> %d: %v", followerID, followingID, err)
	}

	return nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return ErrCannotFollowSelf
	}
	return s.repo.Unfollow(ctx, followerID, followingID)
}

func (s *Service) Followers(ctx context.Context, userID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.list(ctx, userID, viewerID, limit, cursor, s.repo.Followers)
}

func (s *Service) Following(ctx context.Context, userID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.list(ctx, userID, viewerID, limit, cursor, s.repo.Following)
}

func (s *Service) list(
	ctx context.Context,
	userID int64,
	viewerID *int64,
	limit, cursor int,
	fetch func(context.Context, int64, int, int) ([]domain.User, error),
) (*ListResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if cursor < 0 {
		cursor = 0
	}

	rows, err := fetch(ctx, userID, limit, cursor)
	if err != nil {
		return nil, err
	}

	users := make([]Profile, 0, len(rows))
	for i := range rows {
		profile, err := s.buildProfile(ctx, &rows[i], viewerID)
		if err != nil {
			return nil, err
		}
		users = append(users, *profile)
	}

	result := &ListResult{Users: users}
	if len(rows) == limit {
		next := cursor + limit
		result.NextCursor = &next
	}
	return result, nil
}

// Edit updates the caller's own profile. avatar is optional; when present it
// is stored and the public URL saved on the user.
func (s *Service) Edit(ctx context.Context, u *domain.User, req EditProfileRequest, avatar *multipart.FileHeader) (*domain.User, error) {
	u.Name = req.Name
	if req.Bio != nil {
		u.Bio = req.Bio
	}

	if avatar != nil {
		url, err := files.Save(avatar)
		if err != nil {
			return nil, err
		}
		u.AvatarURL = &url
	}

	u.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
