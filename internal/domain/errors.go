package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrProviderTransient   = errors.New("provider transient error")
	ErrMalformedResponse   = errors.New("malformed provider response")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	ErrMissingIdentity     = errors.New("place has no identifier")
	ErrInvalidLocation     = errors.New("invalid location")
)
