package domain

import "errors"

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrNotConfigured      = errors.New("completion service not configured")
	ErrEmptyCompletion    = errors.New("completion service returned no content")
	ErrInteractionExpired = errors.New("interaction expired")
)
