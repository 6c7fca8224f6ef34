package drill

import (
	"errors"
	"fmt"
	"strings"

	"github.com/volleykit/drillboard/internal/domain/facet"
)

// ErrValidation marks a local precondition failure. Writes failing
// validation never reach the remote store.
var ErrValidation = errors.New("validation failed")

// ValidateNew checks a drill payload before insert or update: the video
// URL must carry an http(s) scheme and every tagged facet value must be
// part of its vocabulary. Fundamentals are normalized as a side effect.
func ValidateNew(d *Drill) error {
	u := strings.TrimSpace(d.URL)
	if u == "" {
		return fmt.Errorf("%w: video URL is required", ErrValidation)
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("%w: video URL must start with http:// or https://", ErrValidation)
	}
	d.URL = u
	for _, lv := range d.Levels {
		if facet.LevelLabel(lv) == "" {
			return fmt.Errorf("%w: unknown level %d", ErrValidation, lv)
		}
	}
	d.Normalize()
	for _, f := range d.Fundamentals {
		if !facet.ValidFundamental(f) {
			return fmt.Errorf("%w: unknown fundamental %q", ErrValidation, f)
		}
	}
	for _, t := range d.DrillTypes {
		if !facet.ValidDrillType(t) {
			return fmt.Errorf("%w: unknown drill type %q", ErrValidation, t)
		}
	}
	return nil
}

// ValidateComment checks a comment payload.
func ValidateComment(text, name string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: your name is required", ErrValidation)
	}
	return nil
}

// ValidateScore checks a rating score against the 1..10 scale.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinScore, MaxScore)
	}
	return nil
}
