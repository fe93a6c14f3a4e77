package experience

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, e *domain.Experience) error
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
	Update(ctx context.Context, e *domain.Experience) error
	Delete(ctx context.Context, id int64) error

	Feed(ctx context.Context, limit, offset int) ([]domain.Experience, error)
	Search(ctx context.Context, params SearchParams, limit, offset int) ([]domain.Experience, error)
	ByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error)
	ByTag(ctx context.Context, tagID int64, limit, offset int) ([]domain.Experience, error)
	FavoritesByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error)

	Attend(ctx context.Context, experienceID, userID int64) error
	Unattend(ctx context.Context, experienceID, userID int64) error
	AttendeeExists(ctx context.Context, experienceID, userID int64) (bool, error)
	Attendees(ctx context.Context, experienceID int64, limit, offset int) ([]domain.User, error)
	AttendeesCount(ctx context.Context, experienceID int64) (int64, error)

	Favorite(ctx context.Context, experienceID, userID int64) error
	Unfavorite(ctx context.Context, experienceID, userID int64) error
	FavoriteExists(ctx context.Context, experienceID, userID int64) (bool, error)
	FavoritesCount(ctx context.Context, experienceID int64) (int64, error)

	CommentsCount(ctx context.Context, experienceID int64) (int64, error)

	Tags(ctx context.Context, experienceID int64) ([]domain.Tag, error)
	SetTags(ctx context.Context, experienceID int64, tagIDs []int64) error

	UserByID(ctx context.Context, id int64) (*domain.User, error)
	FollowersCountOf(ctx context.Context, userID int64) (int64, error)
	IsFollowedBy(ctx context.Context, followerID, followingID int64) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, e *domain.Experience) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	var e domain.Experience
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *gormRepository) Update(ctx context.Context, e *domain.Experience) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete removes the experience and its dependent rows. Join tables carry no
// FK cascade under sqlite, so they are cleared in the same transaction.
func (r *gormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experience_id = ?", id).Delete(&domain.ExperienceAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", id).Delete(&domain.ExperienceFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", id).Delete(&domain.ExperienceTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Experience{}, id).Error
	})
}

func (r *gormRepository) Feed(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
	var rows []domain.Experience
	err := r.db.WithContext(ctx).
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) Search(ctx context.Context, params SearchParams, limit, offset int) ([]domain.Experience, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Experience{})

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(experiences.title) LIKE ? OR LOWER(experiences.content) LIKE ?", pattern, pattern)
	}
	if params.TagID != nil {
		tx = tx.Joins("JOIN experience_tags ON experience_tags.experience_id = experiences.id").
			Where("experience_tags.tag_id = ?", *params.TagID)
	}
	if params.ScheduledAfter != nil {
		tx = tx.Where("experiences.scheduled_at >= ?", *params.ScheduledAfter)
	}

	var rows []domain.Experience
	err := tx.Order("experiences.scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) ByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error) {
	var rows []domain.Experience
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) ByTag(ctx context.Context, tagID int64, limit, offset int) ([]domain.Experience, error) {
	var rows []domain.Experience
	err := r.db.WithContext(ctx).
		Joins("JOIN experience_tags ON experience_tags.experience_id = experiences.id").
		Where("experience_tags.tag_id = ?", tagID).
		Order("experiences.scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FavoritesByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Experience, error) {
	var rows []domain.Experience
	err := r.db.WithContext(ctx).
		Joins("JOIN experience_favorites ON experience_favorites.experience_id = experiences.id").
		Where("experience_favorites.user_id = ?", userID).
		Order("experience_favorites.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) Attend(ctx context.Context, experienceID, userID int64) error {
	row := domain.ExperienceAttendee{
		ExperienceID: experienceID,
		UserID:       userID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyAttending
		}
		return err
	}
	return nil
}

func (r *gormRepository) Unattend(ctx context.Context, experienceID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("experience_id = ? AND user_id = ?", experienceID, userID).
		Delete(&domain.ExperienceAttendee{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotAttending
	}
	return nil
}

func (r *gormRepository) AttendeeExists(ctx context.Context, experienceID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ExperienceAttendee{}).
		Where("experience_id = ? AND user_id = ?", experienceID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Attendees(ctx context.Context, experienceID int64, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN experience_attendees ON experience_attendees.user_id = users.id").
		Where("experience_attendees.experience_id = ?", experienceID).
		Order("experience_attendees.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *gormRepository) AttendeesCount(ctx context.Context, experienceID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ExperienceAttendee{}).
		Where("experience_id = ?", experienceID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) Favorite(ctx context.Context, experienceID, userID int64) error {
	row := domain.ExperienceFavorite{
		ExperienceID: experienceID,
		UserID:       userID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

// Unfavorite is an idempotent delete; removing an absent favorite is a no-op.
func (r *gormRepository) Unfavorite(ctx context.Context, experienceID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("experience_id = ? AND user_id = ?", experienceID, userID).
		Delete(&domain.ExperienceFavorite{}).Error
}

func (r *gormRepository) FavoriteExists(ctx context.Context, experienceID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ExperienceFavorite{}).
		Where("experience_id = ? AND user_id = ?", experienceID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) FavoritesCount(ctx context.Context, experienceID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ExperienceFavorite{}).
		Where("experience_id = ?", experienceID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CommentsCount(ctx context.Context, experienceID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("experience_id = ?", experienceID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) Tags(ctx context.Context, experienceID int64) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN experience_tags ON experience_tags.tag_id = tags.id").
		Where("experience_tags.experience_id = ?", experienceID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// SetTags replaces the experience's tag set.
func (r *gormRepository) SetTags(ctx context.Context, experienceID int64, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experience_id = ?", experienceID).Delete(&domain.ExperienceTag{}).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, tagID := range tagIDs {
			row := domain.ExperienceTag{ExperienceID: experienceID, TagID: tagID, CreatedAt: now}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gormRepository) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) FollowersCountOf(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) IsFollowedBy(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
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
