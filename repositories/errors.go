package repositories

import "errors"

// Sentinel errors returned by the repositories. Controllers translate these
// into HTTP status codes; anything else is a server error.
var (
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotOwner           = errors.New("user is not the idea owner")
	ErrNotCommentAuthor   = errors.New("user is not the comment author")
	ErrDuplicateUser      = errors.New("username or email already registered")
)
