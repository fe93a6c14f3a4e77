package comment

import "experiencehub/internal/domain"

type CreateRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// Response is a comment plus its author card and like state. IsLiked is null
// for anonymous viewers.
type Response struct {
	domain.Comment
	Author     domain.PublicUser `json:"author"`
	LikesCount int64             `json:"likesCount"`
	IsLiked    *bool             `json:"isLiked"`
}

type ListResult struct {
	Comments   []Response `json:"comments"`
	NextCursor *int       `json:"nextCursor,omitempty"`
}
