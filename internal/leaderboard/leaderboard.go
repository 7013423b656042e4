// Package leaderboard submits finished rounds and reads back the top scores.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/dino-dash/internal/storage"
)

// ErrInvalidIdentity is returned when a submission lacks a usable name or email.
var ErrInvalidIdentity = errors.New("leaderboard: invalid player identity")

// Entry is one row of the leaderboard.
type Entry struct {
	PlayerName string
	Score      int
}

// Identity names the player a score belongs to.
type Identity struct {
	Name  string
	Email string
}

// Normalize trims the name, lowercases the email and checks both.
func (id Identity) Normalize() (Identity, error) {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		return Identity{}, fmt.Errorf("%w: name is required", ErrInvalidIdentity)
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(id.Email))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}

	return Identity{Name: name, Email: strings.ToLower(addr.Address)}, nil
}

// Service is the leaderboard collaborator.
type Service interface {
	// SubmitScore records score for the player keyed by email, creating the
	// player on first use.
	SubmitScore(ctx context.Context, name, email string, score int) error
	// TopScores returns at most limit entries, highest score first.
	TopScores(ctx context.Context, limit int) ([]Entry, error)
}

// StoreService is a Service backed by the SQLite store.
type StoreService struct {
	store *storage.Store
}

// NewStoreService wraps an open store.
func NewStoreService(store *storage.Store) *StoreService {
	return &StoreService{store: store}
}

func (s *StoreService) SubmitScore(ctx context.Context, name, email string, score int) error {
	id, err := Identity{Name: name, Email: email}.Normalize()
	if err != nil {
		return err
	}

	player, err := s.store.EnsurePlayer(ctx, id.Name, id.Email)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	if _, err := s.store.SaveScore(ctx, player.ID, score); err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}
	return nil
}

func (s *StoreService) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.store.TopScores(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{PlayerName: r.PlayerName, Score: r.Score})
	}
	return entries, nil
}

// Memory is an in-process Service used when no database is available.
type Memory struct {
	mu      sync.Mutex
	players map[string]string // email -> name
	scores  []memoryScore
}

type memoryScore struct {
	email string
	score int
}

// NewMemory creates an empty in-memory leaderboard.
func NewMemory() *Memory {
	return &Memory{players: make(map[string]string)}
}

func (m *Memory) SubmitScore(_ context.Context, name, email string, score int) error {
	id, err := Identity{Name: name, Email: email}.Normalize()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[id.Email]; !ok {
		m.players[id.Email] = id.Name
	}
	m.scores = append(m.scores, memoryScore{email: id.Email, score: score})
	return nil
}

func (m *Memory) TopScores(_ context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := append([]memoryScore(nil), m.scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]Entry, 0, len(sorted))
	for _, s := range sorted {
		entries = append(entries, Entry{PlayerName: m.players[s.email], Score: s.score})
	}
	return entries, nil
}

var (
	_ Service = (*StoreService)(nil)
	_ Service = (*Memory)(nil)
)
