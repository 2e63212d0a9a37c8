package sentinel

import "errors"

// Infrastructure facts returned by stores, optionally wrapped. Services translate
// them into coded errors from pkg/domain-errors; stores never pick HTTP semantics.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
