// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session drives the card loop that sits in front of the idea
// generator: it holds the card on display, allows one generation at a
// time, saves a card only on an explicit accept, and replaces a failed
// generation with a static error card.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-swipe/internal/ideagen"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

// SwipeThreshold is the horizontal offset a card must pass to count as a swipe.
const SwipeThreshold = 100.0

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("generation already in progress")

	// ErrNothingToSave is returned when accepting an empty or error card.
	ErrNothingToSave = errors.New("no idea to save")
)

// Saver persists an accepted idea.
type Saver interface {
	Insert(ctx context.Context, title, description string) (types.SavedIdea, error)
}

// Session is safe for concurrent use; overlapping Next calls are rejected
// with ErrBusy rather than queued.
type Session struct {
	gen    ideagen.Generator
	saver  Saver
	logger *zap.Logger
	guard  *ideagen.Guard

	mu      sync.Mutex
	current types.Idea
	failed  bool
}

// New returns a Session with no card on display. A nil logger disables logging.
func New(gen ideagen.Generator, saver Saver, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		gen:    gen,
		saver:  saver,
		logger: logger,
		guard:  ideagen.NewGuard(),
	}
}

// Current returns the card on display.
func (s *Session) Current() types.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading reports whether a generation is in flight.
func (s *Session) Loading() bool {
	return s.guard.InFlight()
}

// Next replaces the current card with a freshly generated one. On failure
// the card becomes types.ErrorIdea and the generation error is returned
// alongside it, so the caller can show the card and offer another attempt.
func (s *Session) Next(ctx context.Context) (types.Idea, error) {
	if !s.guard.TryAcquire() {
		return s.Current(), ErrBusy
	}
	defer s.guard.Release()
	return s.generate(ctx)
}

// generate runs one generation and installs the result. The caller holds the guard.
func (s *Session) generate(ctx context.Context) (types.Idea, error) {
	idea, err := s.gen.GenerateIdea(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("generating idea failed", zap.Error(err))
		s.current = types.ErrorIdea
		s.failed = true
		return s.current, err
	}
	s.logger.Debug("generated idea", zap.String("title", idea.Title))
	s.current = idea
	s.failed = false
	return idea, nil
}

// Accept saves the current card and then moves on to the next one. The
// error card and the empty card cannot be saved. When saving succeeds but
// the follow-up generation fails, the saved record is still returned.
//
// Accept holds the generation guard from the snapshot through the
// follow-up generation, so a card is saved at most once and concurrent
// Accept, Dismiss, or Next calls get ErrBusy.
func (s *Session) Accept(ctx context.Context) (types.SavedIdea, error) {
	if !s.guard.TryAcquire() {
		return types.SavedIdea{}, ErrBusy
	}
	defer s.guard.Release()

	s.mu.Lock()
	idea, failed := s.current, s.failed
	s.mu.Unlock()

	if failed || idea.IsEmpty() {
		return types.SavedIdea{}, ErrNothingToSave
	}

	saved, err := s.saver.Insert(ctx, idea.Title, idea.Description)
	if err != nil {
		return types.SavedIdea{}, fmt.Errorf("saving idea: %w", err)
	}
	s.logger.Info("saved idea", zap.String("id", saved.ID.String()), zap.String("title", saved.Title))

	if _, err := s.generate(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// Dismiss discards the current card and moves on to the next one.
func (s *Session) Dismiss(ctx context.Context) (types.Idea, error) {
	s.logger.Debug("dismissed idea", zap.String("title", s.Current().Title))
	return s.Next(ctx)
}

// SwipeResult describes what a swipe gesture did.
type SwipeResult int

const (
	// SwipeNone means the card did not travel far enough and springs back.
	SwipeNone SwipeResult = iota
	SwipeAccepted
	SwipeDismissed
)

func (r SwipeResult) String() string {
	switch r {
	case SwipeAccepted:
		return "accepted"
	case SwipeDismissed:
		return "dismissed"
	default:
		return "none"
	}
}

// Swipe applies a horizontal drag offset: past +SwipeThreshold accepts,
// past -SwipeThreshold dismisses, anything shorter does nothing.
func (s *Session) Swipe(ctx context.Context, offset float64) (SwipeResult, error) {
	if math.Abs(offset) <= SwipeThreshold {
		return SwipeNone, nil
	}
	if offset > 0 {
		_, err := s.Accept(ctx)
		return SwipeAccepted, err
	}
	_, err := s.Dismiss(ctx)
	return SwipeDismissed, err
}
