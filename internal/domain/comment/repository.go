package comment

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
)

// Row is a comment joined with its author.
type Row struct {
	domain.Comment
	Author domain.User `gorm:"embedded;embeddedPrefix:author_"`
}

type Repository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	ByExperience(ctx context.Context, experienceID int64, limit, offset int) ([]Row, error)

	Like(ctx context.Context, commentID, userID int64) error
	Unlike(ctx context.Context, commentID, userID int64) error
	LikesCount(ctx context.Context, commentID int64) (int64, error)
	IsLiked(ctx context.Context, commentID, userID int64) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) Update(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Comment{}, id).Error
	})
}

func (r *gormRepository) ByExperience(ctx context.Context, experienceID int64, limit, offset int) ([]Row, error) {
	var rows []Row
	err := r.db.WithContext(ctx).
		Table("comments").
		Select(`comments.*,
			users.id AS author_id,
			users.name AS author_name,
			users.bio AS author_bio,
			users.avatar_url AS author_avatar_url,
			users.created_at AS author_created_at,
			users.updated_at AS author_updated_at`).
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.experience_id = ?", experienceID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func (r *gormRepository) Like(ctx context.Context, commentID, userID int64) error {
	row := domain.CommentLike{
		CommentID: commentID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike is an idempotent delete; removing an absent like is a no-op.
func (r *gormRepository) Unlike(ctx context.Context, commentID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&domain.CommentLike{}).Error
}

func (r *gormRepository) LikesCount(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) IsLiked(ctx context.Context, commentID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
