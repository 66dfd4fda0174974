package apperr

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrOutsideCorpus     = errors.New("path escapes corpus root")
)
