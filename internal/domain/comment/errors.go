package comment

import "errors"

var (
	ErrNotFound           = errors.New("comment not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrNotAuthor          = errors.New("only the author can do this")
	ErrNotAllowed         = errors.New("not allowed to delete this comment")
	ErrAlreadyLiked       = errors.New("comment already liked")
)
