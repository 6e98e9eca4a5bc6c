package store

import (
	"context"
	"time"

	"github.com/feral-file/token-tracker/internal/store/schema"
)

// CreateTokenInput represents the data required to record a newly observed token
type CreateTokenInput struct {
	Time    int64
	Name    string
	Mint    string
	Creator string
}

// DuplicateUpdate reports how many rows each signal of IncrementDuplicateCount touched
type DuplicateUpdate struct {
	ByName    int64
	ByCreator int64
}

// Total returns the number of row increments applied, counting a row matching both signals twice
func (u DuplicateUpdate) Total() int64 {
	return u.ByName + u.ByCreator
}

// ClassifyResult reports the outcome of a Classify call
type ClassifyResult struct {
	Mint string
	// Matched is the number of token rows carrying the mint; zero means nothing was written
	Matched int
	// ScamFlagged is the number of rows whose is_scam flag moved from false to true
	ScamFlagged int
	// RuggedFlagged is the number of rows whose is_rugged flag moved from false to true
	RuggedFlagged int
	// Tokens holds the matched rows as they are after the update
	Tokens []schema.Token
}

// Changed reports whether the call flipped at least one flag
func (r *ClassifyResult) Changed() bool {
	return r.ScamFlagged > 0 || r.RuggedFlagged > 0
}

// Options configures a store instance
type Options struct {
	Engine Engine
	// TxTimeout bounds every operation; zero disables the deadline
	TxTimeout time.Duration
	// RetryMaxElapsed bounds retries of lock contention errors; zero disables retries
	RetryMaxElapsed time.Duration
}

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for the token record store and the creator reputation ledger
type Store interface {
	// EnsureSchema creates the tokens and creator_reputation tables if they do not exist
	EnsureSchema(ctx context.Context) error

	// Insert records a token and bumps its creator's total_tokens in one transaction
	Insert(ctx context.Context, input CreateTokenInput) (*schema.Token, error)
	// FindByNameOrCreator returns every token sharing the name or the creator, ordered by id
	FindByNameOrCreator(ctx context.Context, name, creator string) ([]schema.Token, error)
	// FindByMint returns every token recorded under the mint, ordered by id
	FindByMint(ctx context.Context, mint string) ([]schema.Token, error)
	// ListAll returns every token ordered by id
	ListAll(ctx context.Context) ([]schema.Token, error)
	// FindUnclassified returns up to limit tokens with id > afterID that carry no flag yet
	FindUnclassified(ctx context.Context, afterID int64, limit int) ([]schema.Token, error)

	// IncrementDuplicateCount bumps duplicate_count of rows sharing the name and of rows sharing the creator.
	// Empty arguments are skipped; both empty is a no-op.
	IncrementDuplicateCount(ctx context.Context, name, creator string) (DuplicateUpdate, error)

	// Classify flags every token of the mint and bumps the creators' counters for each flag that changed
	Classify(ctx context.Context, mint string, isScam, isRugged bool) (*ClassifyResult, error)

	// GetReputation returns the creator's ledger row or domain.ErrCreatorNotFound
	GetReputation(ctx context.Context, creator string) (*schema.CreatorReputation, error)
}
