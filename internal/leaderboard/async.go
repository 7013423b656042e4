package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Async submits scores in the background so the frame loop never waits on
// the database. Failures are logged and dropped.
type Async struct {
	svc     Service
	timeout time.Duration
	logger  *log.Logger
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending map[string]chan struct{} // Player key -> closed when their latest submission finishes
}

// NewAsync wraps svc. A nil logger uses the charmbracelet default logger.
func NewAsync(svc Service, timeout time.Duration, logger *log.Logger) *Async {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{
		svc:     svc,
		timeout: timeout,
		logger:  logger,
		pending: make(map[string]chan struct{}),
	}
}

// playerKey matches the email normalization of the services.
func playerKey(id Identity) string {
	return strings.ToLower(strings.TrimSpace(id.Email))
}

// Submit starts a submission and returns immediately.
func (a *Async) Submit(id Identity, score int) {
	key := playerKey(id)
	done := make(chan struct{})
	a.mu.Lock()
	a.pending[key] = done
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.finish(key, done)

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.svc.SubmitScore(ctx, id.Name, id.Email, score); err != nil {
			a.logger.Error("score submission failed", "player", id.Name, "score", score, "error", err)
			return
		}
		a.logger.Info("score submitted", "player", id.Name, "score", score)
	}()
}

func (a *Async) finish(key string, done chan struct{}) {
	a.mu.Lock()
	if a.pending[key] == done {
		delete(a.pending, key)
	}
	a.mu.Unlock()
	close(done)
}

// TopScores fetches the leaderboard with the configured timeout.
func (a *Async) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.svc.TopScores(ctx, limit)
}

// Board returns the leaderboard as seen by one player: fetches first wait
// for that player's latest submission so they see their own score.
// Submissions of other players are not waited for.
func (a *Async) Board(id Identity) *PlayerBoard {
	return &PlayerBoard{async: a, key: playerKey(id)}
}

// Wait blocks until every submission started so far has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

// PlayerBoard is a per-player view of an Async leaderboard.
type PlayerBoard struct {
	async *Async
	key   string
}

// TopScores waits for the player's pending submission, then fetches.
func (b *PlayerBoard) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	a := b.async
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.mu.Lock()
	done := a.pending[b.key]
	a.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, fmt.Errorf("leaderboard: waiting for submission: %w", ctx.Err())
		}
	}
	return a.svc.TopScores(ctx, limit)
}
