package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/session"
	"github.com/volleykit/drillboard/pkg/logger"
	"github.com/volleykit/drillboard/pkg/metrics"
)

// CreateDrill inserts a drill after validation. Requires a session.
func (s *Service) CreateDrill(ctx context.Context, d drill.Drill) (drill.Drill, error) {
	sess, err := s.sessions.Require("add drills")
	if err != nil {
		metrics.RecordWrite("drill", "blocked")
		return drill.Drill{}, err
	}
	if err := drill.ValidateNew(&d); err != nil {
		metrics.RecordWrite("drill", "blocked")
		return drill.Drill{}, err
	}
	out, err := s.platform.CreateDrill(ctx, sess.AccessToken, d)
	s.recordWrite(ctx, "drill", err)
	return out, err
}

// UpdateDrill updates a drill after validation. Requires a session.
func (s *Service) UpdateDrill(ctx context.Context, id string, d drill.Drill) (drill.Drill, error) {
	sess, err := s.sessions.Require("edit drills")
	if err != nil {
		metrics.RecordWrite("drill", "blocked")
		return drill.Drill{}, err
	}
	if err := drill.ValidateNew(&d); err != nil {
		metrics.RecordWrite("drill", "blocked")
		return drill.Drill{}, err
	}
	out, err := s.platform.UpdateDrill(ctx, sess.AccessToken, id, d)
	s.recordWrite(ctx, "drill", err)
	return out, err
}

// DeleteDrill removes a drill. Requires a session.
func (s *Service) DeleteDrill(ctx context.Context, id string) error {
	sess, err := s.sessions.Require("delete drills")
	if err != nil {
		metrics.RecordWrite("drill", "blocked")
		return err
	}
	err = s.platform.DeleteDrill(ctx, sess.AccessToken, id)
	s.recordWrite(ctx, "drill", err)
	return err
}

// AddComment appends a comment to a drill. Requires a session.
func (s *Service) AddComment(ctx context.Context, drillID, text, name, email string) (drill.Comment, error) {
	sess, err := s.sessions.Require("add comments")
	if err != nil {
		metrics.RecordWrite("comment", "blocked")
		return drill.Comment{}, err
	}
	if name == "" {
		name = sess.User.Name
	}
	if email == "" {
		email = sess.User.Email
	}
	if err := drill.ValidateComment(text, name); err != nil {
		metrics.RecordWrite("comment", "blocked")
		return drill.Comment{}, err
	}
	out, err := s.platform.AddComment(ctx, sess.AccessToken, drill.Comment{
		DrillID:        drillID,
		Comment:        strings.TrimSpace(text),
		CreatedByName:  name,
		CreatedByEmail: email,
	})
	s.recordWrite(ctx, "comment", err)
	return out, err
}

// AddRating appends a rating to a drill. Requires a session.
func (s *Service) AddRating(ctx context.Context, drillID string, score int, name, email string) (drill.Rating, error) {
	sess, err := s.sessions.Require("add ratings")
	if err != nil {
		metrics.RecordWrite("rating", "blocked")
		return drill.Rating{}, err
	}
	if err := drill.ValidateScore(score); err != nil {
		metrics.RecordWrite("rating", "blocked")
		return drill.Rating{}, err
	}
	if name == "" {
		name = sess.User.Name
	}
	if email == "" {
		email = sess.User.Email
	}
	out, err := s.platform.AddRating(ctx, sess.AccessToken, drill.Rating{
		DrillID:        drillID,
		Score:          score,
		CreatedByName:  name,
		CreatedByEmail: email,
	})
	s.recordWrite(ctx, "rating", err)
	return out, err
}

// Feedback is the combined interaction-panel submission: an optional
// comment and, when the drill was actually tested, a rating.
type Feedback struct {
	Tested  bool   `json:"tested"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// SubmitFeedback posts the comment and the rating as two independent
// concurrent writes and joins them before reporting. A partial failure
// surfaces as a single failure notice; the succeeded write is not
// rolled back — the data source has no cross-write transaction here.
func (s *Service) SubmitFeedback(ctx context.Context, drillID string, fb Feedback) error {
	if _, err := s.sessions.Require("leave feedback"); err != nil {
		return err
	}
	hasComment := strings.TrimSpace(fb.Comment) != ""
	hasRating := fb.Score != 0
	if !hasComment && !hasRating {
		return fmt.Errorf("%w: nothing to submit", drill.ErrValidation)
	}
	if hasRating && !fb.Tested {
		return fmt.Errorf("%w: a rating requires the drill to be marked as tested", drill.ErrValidation)
	}
	if hasRating {
		if err := drill.ValidateScore(fb.Score); err != nil {
			return err
		}
	}

	var (
		wg         sync.WaitGroup
		commentErr error
		ratingErr  error
	)
	if hasComment {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, commentErr = s.AddComment(ctx, drillID, fb.Comment, fb.Name, fb.Email)
		}()
	}
	if hasRating {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ratingErr = s.AddRating(ctx, drillID, fb.Score, fb.Name, fb.Email)
		}()
	}
	wg.Wait()

	if commentErr != nil {
		return commentErr
	}
	return ratingErr
}

// DeleteComment always fails: comments are append-only. The check runs
// before any auth or remote interaction.
func (s *Service) DeleteComment(_ context.Context, _ string) error {
	metrics.RecordWrite("comment", "blocked")
	return fmt.Errorf("%w: %s", session.ErrDisabled, session.DeleteCommentDisabledMessage)
}

// DeleteRating always fails: ratings are append-only.
func (s *Service) DeleteRating(_ context.Context, _ string) error {
	metrics.RecordWrite("rating", "blocked")
	return fmt.Errorf("%w: %s", session.ErrDisabled, session.DeleteRatingDisabledMessage)
}

func (s *Service) recordWrite(ctx context.Context, entity string, err error) {
	if err != nil {
		metrics.RecordWrite(entity, "error")
		s.log.Warn(ctx, "platform write failed", logger.String("entity", entity), logger.Error(err))
		return
	}
	metrics.RecordWrite(entity, "ok")
}
