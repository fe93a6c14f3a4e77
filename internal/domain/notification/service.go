package notification

import (
	"context"
	"time"

	"experiencehub/internal/domain"
)

const defaultFeedLimit = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NotificationResponse is a notification plus its rendered content.
type NotificationResponse struct {
	domain.Notification
	Content string `json:"content"`
}

type FeedResult struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextCursor    *int                   `json:"nextCursor,omitempty"`
}

func (s *Service) Feed(ctx context.Context, userID int64, limit, cursor int) (*FeedResult, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if cursor < 0 {
		cursor = 0
	}

	rows, err := s.repo.ListByRecipient(ctx, userID, limit, cursor)
	if err != nil {
		return nil, err
	}

	items := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, NotificationResponse{
			Notification: row.Notification,
			Content:      Content(row.Type, row.FromUserName),
		})
	}

	result := &FeedResult{Notifications: items}
	if len(rows) == limit {
		next := cursor + limit
		result.NextCursor = &next
	}
	return result, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

// The emit helpers below are called synchronously from the write paths that
// trigger them, in the same request. Callers treat failures as best-effort:
// the primary write has already succeeded and is never rolled back.

func (s *Service) UserAttending(ctx context.Context, fromUserID, experienceID, recipientID int64) error {
	return s.emit(ctx, domain.Notification{
		Type:         domain.NotificationUserAttendingExperience,
		ExperienceID: &experienceID,
		FromUserID:   fromUserID,
		UserID:       &recipientID,
	})
}

func (s *Service) UserUnattending(ctx context.Context, fromUserID, experienceID, recipientID int64) error {
	return s.emit(ctx, domain.Notification{
		Type:         domain.NotificationUserUnattendingExperience,
		ExperienceID: &experienceID,
		FromUserID:   fromUserID,
		UserID:       &recipientID,
	})
}

func (s *Service) UserKicked(ctx context.Context, fromUserID, experienceID, kickedUserID int64) error {
	return s.emit(ctx, domain.Notification{
		Type:         domain.NotificationUserKickedExperience,
		ExperienceID: &experienceID,
		FromUserID:   fromUserID,
		UserID:       &kickedUserID,
	})
}

func (s *Service) UserCommented(ctx context.Context, fromUserID, experienceID, commentID, recipientID int64) error {
	return s.emit(ctx, domain.Notification{
		Type:         domain.NotificationUserCommentedExperience,
		CommentID:    &commentID,
		ExperienceID: &experienceID,
		FromUserID:   fromUserID,
		UserID:       &recipientID,
	})
}

func (s *Service) UserFollowed(ctx context.Context, fromUserID, recipientID int64) error {
	return s.emit(ctx, domain.Notification{
		Type:       domain.NotificationUserFollowedUser,
		FromUserID: fromUserID,
		UserID:     &recipientID,
	})
}

func (s *Service) emit(ctx context.Context, n domain.Notification) error {
	n.Read = false
	n.CreatedAt = time.Now()
	return s.repo.Create(ctx, &n)
}
