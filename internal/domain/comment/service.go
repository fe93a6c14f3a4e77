package comment

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"experiencehub/internal/domain"
)

const defaultListLimit = 20

// ExperienceGetter resolves the experience a comment belongs to, mainly to
// find its host for the notification fan-out.
type ExperienceGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
}

// Notifier is the slice of the notification service the comment domain needs.
type Notifier interface {
	UserCommented(ctx context.Context, fromUserID, experienceID, commentID, recipientID int64) error
}

type Service struct {
	repo        Repository
	experiences ExperienceGetter
	notifier    Notifier
}

func NewService(repo Repository, experiences ExperienceGetter, notifier Notifier) *Service {
	return &Service{repo: repo, experiences: experiences, notifier: notifier}
}

// Add creates a comment and notifies the experience host, unless the host is
// commenting on their own experience.
func (s *Service) Add(ctx context.Context, experienceID, authorID int64, req CreateRequest) (*domain.Comment, error) {
	exp, err := s.experiences.GetByID(ctx, experienceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}

	now := time.Now()
	c := &domain.Comment{
		Content:      req.Content,
		ExperienceID: experienceID,
		UserID:       authorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if authorID != exp.UserID {
		if err := s.notifier.UserCommented(ctx, authorID, experienceID, c.ID, exp.UserID); err != nil {
			log.Printf("notify comment: experience %d, comment %d: %v", experienceID, c.ID, err)
		}
	}

	return c, nil
}

func (s *Service) Edit(ctx context.Context, id, callerID int64, req UpdateRequest) (*domain.Comment, error) {
	c, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != callerID {
		return nil, ErrNotAuthor
	}

	c.Content = req.Content
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete is allowed for the comment author and for the host of the experience
// the comment sits on.
func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	c, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}

	if c.UserID != callerID {
		exp, err := s.experiences.GetByID(ctx, c.ExperienceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAllowed
			}
			return err
		}
		if exp.UserID != callerID {
			return ErrNotAllowed
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ByExperience(ctx context.Context, experienceID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	if _, err := s.experiences.GetByID(ctx, experienceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if cursor < 0 {
		cursor = 0
	}

	rows, err := s.repo.ByExperience(ctx, experienceID, limit, cursor)
	if err != nil {
		return nil, err
	}

	comments := make([]Response, 0, len(rows))
	for _, row := range rows {
		likes, err := s.repo.LikesCount(ctx, row.ID)
		if err != nil {
			return nil, err
		}

		resp := Response{
			Comment:    row.Comment,
			Author:     row.Author.Public(),
			LikesCount: likes,
		}

		if viewerID != nil {
			liked, err := s.repo.IsLiked(ctx, row.ID, *viewerID)
			if err != nil {
				return nil, err
			}
			resp.IsLiked = &liked
		}

		comments = append(comments, resp)
	}

	result := &ListResult{Comments: comments}
	if len(rows) == limit {
		next := cursor + limit
		result.NextCursor = &next
	}
	return result, nil
}

func (s *Service) Like(ctx context.Context, commentID, userID int64) error {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return err
	}
	return s.repo.Like(ctx, commentID, userID)
}

func (s *Service) Unlike(ctx context.Context, commentID, userID int64) error {
	return s.repo.Unlike(ctx, commentID, userID)
}

func (s *Service) getComment(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
