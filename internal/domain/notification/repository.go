package notification

import (
	"context"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
)

// FeedRow is a notification joined with the actor's name, which the content
// templates need at read time.
type FeedRow struct {
	domain.Notification
	FromUserName string
}

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, userID int64, limit, offset int) ([]FeedRow, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByRecipient(ctx context.Context, userID int64, limit, offset int) ([]FeedRow, error) {
	var rows []FeedRow
	err := r.db.WithContext(ctx).
		Table("notifications").
		Select("notifications.*, users.name AS from_user_name").
		Joins("JOIN users ON users.id = notifications.from_user_id").
		Where("notifications.user_id = ?", userID).
		Order("notifications.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead is scoped to the recipient; marking someone else's notification
// is a silent no-op, matching the single-update write path.
func (r *repository) MarkAsRead(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}
