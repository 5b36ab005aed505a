// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/idea-swipe/internal/ideagen"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

// --- fakes ---

// scriptedGenerator returns its results in order, then repeats the last one.
type scriptedGenerator struct {
	mu      sync.Mutex
	results []result
	calls   int
	block   chan struct{} // when set, GenerateIdea waits for it to close
}

type result struct {
	idea types.Idea
	err  error
}

func (g *scriptedGenerator) GenerateIdea(ctx context.Context) (types.Idea, error) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	if i >= len(g.results) {
		i = len(g.results) - 1
	}
	g.calls++
	return g.results[i].idea, g.results[i].err
}

func ok(title, desc string) result {
	return result{idea: types.Idea{Title: title, Description: desc}}
}

type memorySaver struct {
	mu      sync.Mutex
	saved   []types.SavedIdea
	err     error
	entered chan struct{} // when set, signalled once Insert starts
	release chan struct{} // when set, Insert waits for it to close
}

func (m *memorySaver) Insert(_ context.Context, title, description string) (types.SavedIdea, error) {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return types.SavedIdea{}, m.err
	}
	s := types.SavedIdea{ID: uuid.New(), Title: title, Description: description, CreatedAt: time.Now()}
	m.saved = append(m.saved, s)
	return s, nil
}

var errStatus = &ideagen.GenerationError{Kind: ideagen.BadStatus, StatusCode: 500}

// --- tests ---

func TestNext(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("AMC & Frosties", "Movie then Frosties.")}}
	s := New(gen, &memorySaver{}, nil)

	assert.True(t, s.Current().IsEmpty())

	idea, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AMC & Frosties", idea.Title)
	assert.Equal(t, idea, s.Current())
	assert.False(t, s.Loading())
}

func TestNext_FailureShowsErrorCardAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gen := &scriptedGenerator{results: []result{{err: errStatus}}}
	s := New(gen, &memorySaver{}, zap.New(core))

	idea, err := s.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ideagen.ErrBadStatus)
	assert.Equal(t, types.ErrorIdea, idea)
	assert.Equal(t, types.ErrorIdea, s.Current())

	warnings := logs.FilterMessage("generating idea failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
}

func TestNext_RejectsOverlappingCalls(t *testing.T) {
	gen := &scriptedGenerator{
		results: []result{ok("Slow", "s")},
		block:   make(chan struct{}),
	}
	s := New(gen, &memorySaver{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Next(context.Background())
		done <- err
	}()

	require.Eventually(t, s.Loading, time.Second, time.Millisecond)

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(gen.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gen.calls)
	assert.False(t, s.Loading())
}

func TestAccept(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one"), ok("Second", "two")}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)

	_, err := s.Next(context.Background())
	require.NoError(t, err)

	saved, err := s.Accept(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First", saved.Title)
	assert.Equal(t, "one", saved.Description)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "Second", s.Current().Title)
}

func TestAccept_NothingToSave(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
	}{
		{
			name:  "no card yet",
			setup: func(*Session) {},
		},
		{
			name: "error card",
			setup: func(s *Session) {
				s.Next(context.Background())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &memorySaver{}
			s := New(&scriptedGenerator{results: []result{{err: errStatus}}}, saver, nil)
			tt.setup(s)

			_, err := s.Accept(context.Background())
			assert.ErrorIs(t, err, ErrNothingToSave)
			assert.Empty(t, saver.saved)
		})
	}
}

func TestAccept_ModelReturnedErrorTitleIsSaved(t *testing.T) {
	// A real idea titled "Error" is not the placeholder card.
	gen := &scriptedGenerator{results: []result{ok("Error", "Failed to generate idea. Please try again.")}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	_, err = s.Accept(context.Background())
	require.NoError(t, err)
	assert.Len(t, saver.saved, 1)
}

func TestAccept_SaveFailure(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one"), ok("Second", "two")}}
	saver := &memorySaver{err: errors.New("disk full")}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	_, err = s.Accept(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "First", s.Current().Title, "card stays when saving fails")
	assert.Equal(t, 1, gen.calls)
}

func TestAccept_SavedEvenIfNextFails(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one"), {err: errStatus}}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	saved, err := s.Accept(context.Background())
	require.Error(t, err)
	assert.Equal(t, "First", saved.Title)
	assert.Len(t, saver.saved, 1)
	assert.Equal(t, types.ErrorIdea, s.Current())
}

func TestAccept_ConcurrentCallsSaveOnce(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one"), ok("Second", "two")}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	saver.entered = make(chan struct{}, 1)
	saver.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Accept(context.Background())
		done <- err
	}()
	<-saver.entered

	_, err = s.Accept(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.Dismiss(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, "First", s.Current().Title)

	close(saver.release)
	require.NoError(t, <-done)
	assert.Len(t, saver.saved, 1)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, "Second", s.Current().Title)
	assert.False(t, s.Loading())
}

func TestAccept_BusyWhileGenerating(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one")}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	gen.block = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := s.Next(context.Background())
		done <- err
	}()
	require.Eventually(t, s.Loading, time.Second, time.Millisecond)

	_, err = s.Accept(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, saver.saved)

	close(gen.block)
	require.NoError(t, <-done)
}

func TestDismiss(t *testing.T) {
	gen := &scriptedGenerator{results: []result{ok("First", "one"), ok("Second", "two")}}
	saver := &memorySaver{}
	s := New(gen, saver, nil)
	_, err := s.Next(context.Background())
	require.NoError(t, err)

	idea, err := s.Dismiss(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Second", idea.Title)
	assert.Empty(t, saver.saved)
}

func TestDismiss_RecoversFromErrorCard(t *testing.T) {
	gen := &scriptedGenerator{results: []result{{err: errStatus}, ok("Back", "again")}}
	s := New(gen, &memorySaver{}, nil)
	_, err := s.Next(context.Background())
	require.Error(t, err)

	idea, err := s.Dismiss(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Back", idea.Title)
}

func TestSwipe(t *testing.T) {
	tests := []struct {
		offset    float64
		want      SwipeResult
		wantSaved int
		wantCalls int
	}{
		{offset: 0, want: SwipeNone, wantSaved: 0, wantCalls: 1},
		{offset: 100, want: SwipeNone, wantSaved: 0, wantCalls: 1},
		{offset: -100, want: SwipeNone, wantSaved: 0, wantCalls: 1},
		{offset: 101, want: SwipeAccepted, wantSaved: 1, wantCalls: 2},
		{offset: -250, want: SwipeDismissed, wantSaved: 0, wantCalls: 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset %v", tt.offset), func(t *testing.T) {
			gen := &scriptedGenerator{results: []result{ok("First", "one"), ok("Second", "two")}}
			saver := &memorySaver{}
			s := New(gen, saver, nil)
			_, err := s.Next(context.Background())
			require.NoError(t, err)

			got, err := s.Swipe(context.Background(), tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, saver.saved, tt.wantSaved)
			assert.Equal(t, tt.wantCalls, gen.calls)
		})
	}
}

func TestSwipeResultString(t *testing.T) {
	assert.Equal(t, "accepted", SwipeAccepted.String())
	assert.Equal(t, "dismissed", SwipeDismissed.String())
	assert.Equal(t, "none", SwipeNone.String())
}
