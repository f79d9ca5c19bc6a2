// Package trainer runs the training loop: serve an exercise, score the
// answer, move the user's difficulty level and rating, serve the next one.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"focusbot/internal/evaluator"
	"focusbot/internal/metrics"
	"focusbot/internal/session"
	"focusbot/internal/store"
	"focusbot/internal/taskgen"
)

// StopWord ends a training run when submitted instead of an answer.
const StopWord = "stop"

// ErrNoActiveTask is returned when an answer arrives without an exercise
// in flight.
var ErrNoActiveTask = errors.New("no active task")

// Outcome classifies a submitted answer.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeIncorrect
	OutcomeUnverified // verdict unusable, nothing changed
	OutcomeStopped
)

// Summary describes a finished training run.
type Summary struct {
	Served  int
	Correct int
	Points  int
}

// Result is the trainer's reply to one submitted answer.
type Result struct {
	Outcome  Outcome
	Feedback string

	// Points is the rating credit for a correct answer.
	Points int

	// NewLevel is the user's level after the adjustment.
	NewLevel int

	// Next is the follow-up exercise. Nil when the run stopped or the
	// generator failed; NextErr carries the failure in the latter case.
	Next    *taskgen.Task
	NextErr error

	// Summary is set when Outcome is OutcomeStopped.
	Summary *Summary
}

// Service drives training runs for all users.
type Service struct {
	gen      taskgen.Generator
	eval     evaluator.Evaluator
	users    store.UserRepo
	ratings  store.RatingRepo
	sessions *session.Manager
	metrics  metrics.Collector
	log      *zap.SugaredLogger
}

// New creates a trainer Service.
func New(
	gen taskgen.Generator,
	eval evaluator.Evaluator,
	users store.UserRepo,
	ratings store.RatingRepo,
	sessions *session.Manager,
	collector metrics.Collector,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		gen:      gen,
		eval:     eval,
		users:    users,
		ratings:  ratings,
		sessions: sessions,
		metrics:  collector,
		log:      log,
	}
}

// Start begins a training run with a fresh exercise. An empty category
// lets the model choose one.
func (s *Service) Start(ctx context.Context, userID int64, category taskgen.Category) (*taskgen.Task, error) {
	sess := s.sessions.GetOrCreate(userID)
	sess.Lock()
	defer sess.Unlock()

	// A category tap mid-run abandons the old run. Its counters and
	// served-task list must not leak into the new one.
	sess.EndTraining()

	sess.Category = category
	task, err := s.nextTask(ctx, sess, category)
	if err != nil {
		return nil, err
	}

	sess.Phase = session.PhaseAwaitingAnswer
	return task, nil
}

// Submit scores the user's answer and advances the run. Level and rating
// move only on a parsable verdict.
func (s *Service) Submit(ctx context.Context, userID int64, answer string) (*Result, error) {
	sess := s.sessions.Get(userID)
	if sess == nil {
		return nil, ErrNoActiveTask
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != session.PhaseAwaitingAnswer || sess.Task == nil {
		return nil, ErrNoActiveTask
	}

	if strings.EqualFold(strings.TrimSpace(answer), StopWord) {
		summary := &Summary{Served: sess.Served, Correct: sess.Correct, Points: sess.PointsEarned}
		sess.EndTraining()
		s.log.Infow("training run stopped",
			"user_id", userID, "served", summary.Served, "correct", summary.Correct)
		return &Result{Outcome: OutcomeStopped, Summary: summary}, nil
	}

	task := sess.Task
	verdict, err := s.eval.Evaluate(ctx, task.Text, task.Answer, answer)
	if err != nil {
		var unparsable *evaluator.ErrUnparsableVerdict
		if errors.As(err, &unparsable) {
			s.metrics.RecordVerdict("unverified")
			s.log.Warnw("verdict unparsable, keeping task",
				"user_id", userID, "session_id", sess.ID)
			return &Result{Outcome: OutcomeUnverified}, nil
		}
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	level, err := s.users.Level(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	result := &Result{Feedback: verdict.Feedback}
	if verdict.Correct {
		result.Outcome = OutcomeCorrect
		result.NewLevel = level + 1
		result.Points = task.Points

		if err := s.users.SetLevel(ctx, userID, result.NewLevel); err != nil {
			return nil, fmt.Errorf("raise level: %w", err)
		}
		if err := s.ratings.AddPoints(ctx, userID, task.Points); err != nil {
			return nil, fmt.Errorf("add rating points: %w", err)
		}

		sess.Correct++
		sess.PointsEarned += task.Points
		s.metrics.RecordVerdict("correct")
	} else {
		result.Outcome = OutcomeIncorrect
		result.NewLevel = level - 1
		if result.NewLevel < 1 {
			result.NewLevel = 1
		}
		if result.NewLevel != level {
			if err := s.users.SetLevel(ctx, userID, result.NewLevel); err != nil {
				return nil, fmt.Errorf("lower level: %w", err)
			}
		}
		s.metrics.RecordVerdict("incorrect")
	}

	s.log.Infow("answer scored",
		"user_id", userID,
		"session_id", sess.ID,
		"correct", verdict.Correct,
		"level", result.NewLevel)

	// The run continues on both verdicts; only the stop word ends it.
	next, err := s.nextTask(ctx, sess, sess.Category)
	if err != nil {
		// The answered task must not be scorable twice. Without a fresh
		// task the next submission is rejected until the user restarts.
		sess.Task = nil
		result.NextErr = err
		return result, nil
	}
	result.Next = next

	return result, nil
}

// Stop ends the user's training run, if any, and returns its summary.
func (s *Service) Stop(userID int64) *Summary {
	sess := s.sessions.Get(userID)
	if sess == nil {
		return nil
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Task == nil && sess.Served == 0 {
		return nil
	}
	summary := &Summary{Served: sess.Served, Correct: sess.Correct, Points: sess.PointsEarned}
	sess.EndTraining()
	return summary
}

func (s *Service) nextTask(ctx context.Context, sess *session.Session, category taskgen.Category) (*taskgen.Task, error) {
	level, err := s.users.Level(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	task, err := s.gen.Generate(ctx, taskgen.GenerateInput{
		Level:      level,
		Category:   category,
		PriorTasks: sess.PriorTasks,
	})
	if err != nil {
		s.metrics.RecordGenerationFailure()
		s.log.Errorw("exercise generation failed",
			"user_id", sess.UserID, "session_id", sess.ID, "error", err)
		return nil, fmt.Errorf("generate exercise: %w", err)
	}

	sess.RecordTask(task)
	s.metrics.RecordTaskGenerated(string(task.Category))
	return task, nil
}
