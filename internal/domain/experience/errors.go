package experience

import "errors"

var (
	ErrNotFound         = errors.New("experience not found")
	ErrNotOwner         = errors.New("only the host can do this")
	ErrAlreadyAttending = errors.New("already attending this experience")
	ErrNotAttending     = errors.New("not attending this experience")
	ErrAlreadyFavorited = errors.New("experience already in favorites")
	ErrCannotKickOwner  = errors.New("the host cannot be kicked")
)
