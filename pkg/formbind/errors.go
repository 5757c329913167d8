package formbind

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidSchema        = errors.New("invalid form schema")
	ErrInvalidTarget        = errors.New("invalid validation target")
	ErrNoSchema             = errors.New("no form schema loaded")
)
