package experience

import (
	"time"

	"experiencehub/internal/domain"
)

type CreateRequest struct {
	Title       string    `form:"title" binding:"required"`
	Content     string    `form:"content" binding:"required"`
	ScheduledAt time.Time `form:"scheduledAt" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	URL         *string   `form:"url"`
	Location    *string   `form:"location"`
	TagIDs      []int64   `form:"tagIds"`
}

type UpdateRequest struct {
	Title       string    `form:"title" binding:"required"`
	Content     string    `form:"content" binding:"required"`
	ScheduledAt time.Time `form:"scheduledAt" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	URL         *string   `form:"url"`
	Location    *string   `form:"location"`
	TagIDs      []int64   `form:"tagIds"`
}

type KickRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// SearchParams are the optional filters of the search endpoint.
type SearchParams struct {
	Query          string
	TagID          *int64
	ScheduledAfter *time.Time
}

// AttendeeCard is an attendee as the detail and attendee-list views render
// them: public profile plus follower count and the viewer's follow state.
type AttendeeCard struct {
	domain.PublicUser
	FollowersCount int64 `json:"followersCount"`
	IsFollowing    bool  `json:"isFollowing"`
}

// Response is an experience enriched with everything the detail and feed
// cards render. Viewer flags are null for anonymous requests; Attendees is
// filled (first page only) on the detail view.
type Response struct {
	domain.Experience
	Owner          domain.PublicUser `json:"owner"`
	AttendeesCount int64             `json:"attendeesCount"`
	CommentsCount  int64             `json:"commentsCount"`
	FavoritesCount int64             `json:"favoritesCount"`
	IsAttending    *bool             `json:"isAttending"`
	IsFavorited    *bool             `json:"isFavorited"`
	Tags           []domain.Tag      `json:"tags"`
	Attendees      []AttendeeCard    `json:"attendees,omitempty"`
}

type ListResult struct {
	Experiences []Response `json:"experiences"`
	NextCursor  *int       `json:"nextCursor,omitempty"`
}

type AttendeesResult struct {
	Attendees  []AttendeeCard `json:"attendees"`
	NextCursor *int           `json:"nextCursor,omitempty"`
}
