package experience

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

const (
	defaultFeedLimit      = 20
	detailAttendeePreview = 5
)

// Notifier is the slice of the notification service the experience domain
// needs for its fan-outs.
type Notifier interface {
	UserAttending(ctx context.Context, fromUserID, experienceID, recipientID int64) error
	UserUnattending(ctx context.Context, fromUserID, experienceID, recipientID int64) error
	UserKicked(ctx context.Context, fromUserID, experienceID, kickedUserID int64) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, hostID int64, req CreateRequest, image *multipart.FileHeader) (*Response, error) {
	now := time.Now()
	exp := &domain.Experience{
		Title:       req.Title,
		Content:     req.Content,
		ScheduledAt: req.ScheduledAt,
		URL:         req.URL,
		Location:    req.Location,
		UserID:      hostID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if image != nil {
		url, err := files.Save(image)
		if err != nil {
			return nil, err
		}
		exp.ImageURL = &url
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.repo.SetTags(ctx, exp.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, exp, &hostID)
}

// Get loads the detail view: full enrichment plus the first few attendees.
func (s *Service) Get(ctx context.Context, id int64, viewerID *int64) (*Response, error) {
	exp, err := s.getExperience(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.enrich(ctx, exp, viewerID)
	if err != nil {
		return nil, err
	}

	resp.Attendees, err = s.attendeeCards(ctx, id, viewerID, detailAttendeePreview, 0)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *Service) Update(ctx context.Context, id, callerID int64, req UpdateRequest, image *multipart.FileHeader) (*Response, error) {
	exp, err := s.getExperience(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.UserID != callerID {
		return nil, ErrNotOwner
	}

	exp.Title = req.Title
	exp.Content = req.Content
	exp.ScheduledAt = req.ScheduledAt
	exp.URL = req.URL
	exp.Location = req.Location
	exp.UpdatedAt = time.Now()

	if image != nil {
		url, err := files.Save(image)
		if err != nil {
			return nil, err
		}
		exp.ImageURL = &url
	}

	if err := s.repo.Update(ctx, exp); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.repo.SetTags(ctx, id, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.enrich(ctx, exp, &callerID)
}

func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	exp, err := s.getExperience(ctx, id)
	if err != nil {
		return err
	}
	if exp.UserID != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Feed(ctx context.Context, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.listPage(ctx, viewerID, limit, cursor, func(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
		return s.repo.Feed(ctx, limit, offset)
	})
}

func (s *Service) Search(ctx context.Context, params SearchParams, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.listPage(ctx, viewerID, limit, cursor, func(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
		return s.repo.Search(ctx, params, limit, offset)
	})
}

func (s *Service) ByUser(ctx context.Context, userID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.listPage(ctx, viewerID, limit, cursor, func(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
		return s.repo.ByUser(ctx, userID, limit, offset)
	})
}

func (s *Service) ByTag(ctx context.Context, tagID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.listPage(ctx, viewerID, limit, cursor, func(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
		return s.repo.ByTag(ctx, tagID, limit, offset)
	})
}

func (s *Service) FavoritesByUser(ctx context.Context, userID int64, viewerID *int64, limit, cursor int) (*ListResult, error) {
	return s.listPage(ctx, viewerID, limit, cursor, func(ctx context.Context, limit, offset int) ([]domain.Experience, error) {
		return s.repo.FavoritesByUser(ctx, userID, limit, offset)
	})
}

// Attend joins the caller to the experience and notifies the host. The host
// attending their own experience still produces a notification to themselves;
// the suppression only exists on the comment path.
func (s *Service) Attend(ctx context.Context, experienceID, userID int64) error {
	exp, err := s.getExperience(ctx, experienceID)
	if err != nil {
		return err
	}

	already, err := s.repo.AttendeeExists(ctx, experienceID, userID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyAttending
	}

	if err := s.repo.Attend(ctx, experienceID, userID); err != nil {
		return err
	}

	if err := s.notifier.UserAttending(ctx, userID, experienceID, exp.UserID); err != nil {
		log.Printf("notify attend: experience %d, user %d: %v", experienceID, userID, err)
	}

	return nil
}

func (s *Service) Unattend(ctx context.Context, experienceID, userID int64) error {
	exp, err := s.getExperience(ctx, experienceID)
	if err != nil {
		return err
	}

	if err := s.repo.Unattend(ctx, experienceID, userID); err != nil {
		return err
	}

	if err := s.notifier.UserUnattending(ctx, userID, experienceID, exp.UserID); err != nil {
		log.Printf("notify unattend: experience %d, user %d: %v", experienceID, userID, err)
	}

	return nil
}

// Kick removes an attendee. Only the host may kick, the host cannot be
// kicked, and the kicked user is the one notified.
func (s *Service) Kick(ctx context.Context, experienceID, callerID, targetID int64) error {
	exp, err := s.getExperience(ctx, experienceID)
	if err != nil {
		return err
	}
	if exp.UserID != callerID {
		return ErrNotOwner
	}
	if targetID == exp.UserID {
		return ErrCannotKickOwner
	}

	if err := s.repo.Unattend(ctx, experienceID, targetID); err != nil {
		return err
	}

	if err := s.notifier.UserKicked(ctx, callerID, experienceID, targetID); err != nil {
		log.Printf("notify kick: experience %d, user %d: %v", experienceID, targetID, err)
	}

	return nil
}

func (s *Service) Favorite(ctx context.Context, experienceID, userID int64) error {
	if _, err := s.getExperience(ctx, experienceID); err != nil {
		return err
	}

	exists, err := s.repo.FavoriteExists(ctx, experienceID, userID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorited
	}

	return s.repo.Favorite(ctx, experienceID, userID)
}

func (s *Service) Unfavorite(ctx context.Context, experienceID, userID int64) error {
	return s.repo.Unfavorite(ctx, experienceID, userID)
}

func (s *Service) Attendees(ctx context.Context, experienceID int64, viewerID *int64, limit, cursor int) (*AttendeesResult, error) {
	if _, err := s.getExperience(ctx, experienceID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if cursor < 0 {
		cursor = 0
	}

	attendees, err := s.attendeeCards(ctx, experienceID, viewerID, limit, cursor)
	if err != nil {
		return nil, err
	}

	result := &AttendeesResult{Attendees: attendees}
	if len(attendees) == limit {
		next := cursor + limit
		result.NextCursor = &next
	}
	return result, nil
}

func (s *Service) attendeeCards(ctx context.Context, experienceID int64, viewerID *int64, limit, offset int) ([]AttendeeCard, error) {
	rows, err := s.repo.Attendees(ctx, experienceID, limit, offset)
	if err != nil {
		return nil, err
	}

	cards := make([]AttendeeCard, 0, len(rows))
	for i := range rows {
		card := AttendeeCard{PublicUser: rows[i].Public()}

		card.FollowersCount, err = s.repo.FollowersCountOf(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		if viewerID != nil && *viewerID != rows[i].ID {
			card.IsFollowing, err = s.repo.IsFollowedBy(ctx, *viewerID, rows[i].ID)
			if err != nil {
				return nil, err
			}
		}

		cards = append(cards, card)
	}
	return cards, nil
}

func (s *Service) getExperience(ctx context.Context, id int64) (*domain.Experience, error) {
	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return exp, nil
}

func (s *Service) listPage(
	ctx context.Context,
	viewerID *int64,
	limit, cursor int,
	fetch func(context.Context, int, int) ([]domain.Experience, error),
) (*ListResult, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if cursor < 0 {
		cursor = 0
	}

	rows, err := fetch(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}

	items := make([]Response, 0, len(rows))
	for i := range rows {
		enriched, err := s.enrich(ctx, &rows[i], viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, *enriched)
	}

	result := &ListResult{Experiences: items}
	if len(rows) == limit {
		next := cursor + limit
		result.NextCursor = &next
	}
	return result, nil
}

func (s *Service) enrich(ctx context.Context, exp *domain.Experience, viewerID *int64) (*Response, error) {
	owner, err := s.repo.UserByID(ctx, exp.UserID)
	if err != nil {
		return nil, err
	}

	attendees, err := s.repo.AttendeesCount(ctx, exp.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsCount(ctx, exp.ID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.repo.FavoritesCount(ctx, exp.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.Tags(ctx, exp.ID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	resp := &Response{
		Experience:     *exp,
		Owner:          owner.Public(),
		AttendeesCount: attendees,
		CommentsCount:  comments,
		FavoritesCount: favorites,
		Tags:           tags,
	}

	if viewerID != nil {
		isAttending, err := s.repo.AttendeeExists(ctx, exp.ID, *viewerID)
		if err != nil {
			return nil, err
		}
		isFavorited, err := s.repo.FavoriteExists(ctx, exp.ID, *viewerID)
		if err != nil {
			return nil, err
		}
		resp.IsAttending = &isAttending
		resp.IsFavorited = &isFavorited
	}

	return resp, nil
}
