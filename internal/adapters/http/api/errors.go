package api

import (
	"errors"

	"github.com/volleykit/drillboard/internal/adapters/platform"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, platform.ErrNotFound)
}
