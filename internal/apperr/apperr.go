// Package apperr centralizes the sentinel errors shared across the
// gateway's components, so callers can classify a failure with errors.Is
// regardless of which component returned it.
package apperr

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("apperr: upstream unavailable")
	ErrMetadataUnavailable = errors.New("apperr: no metadata provider matched")
	ErrParseAmbiguous      = errors.New("apperr: release name did not parse cleanly")
	ErrNotFound            = errors.New("apperr: path not found in virtual tree")
	ErrForbidden           = errors.New("apperr: mutation not permitted")
	ErrIOAborted           = errors.New("apperr: stream read aborted")
)
