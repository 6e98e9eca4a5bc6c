package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCreatorNotFound is returned when a creator has no reputation row yet
	ErrCreatorNotFound = errors.New("creator not found")

	// ErrInvalidCandidate is returned when a discovered token is missing required fields
	ErrInvalidCandidate = errors.New("invalid token candidate")

	// ErrInvalidMint is returned when a mint address is not a valid base58 public key
	ErrInvalidMint = errors.New("invalid mint address")

	// ErrMintAccountNotFound is returned when the RPC node has no account for the mint
	ErrMintAccountNotFound = errors.New("mint account not found")

	// ErrNotMintAccount is returned when the account exists but is not an SPL token mint
	ErrNotMintAccount = errors.New("account is not a token mint")

	// ErrEmptyVerdict is returned when a verdict sets neither the scam nor the rugged flag
	ErrEmptyVerdict = errors.New("verdict flags nothing")

	// ErrLedgerInconsistent is returned when a token row exists without its creator reputation row
	ErrLedgerInconsistent = errors.New("creator reputation ledger is inconsistent")
)

// StorageError wraps any failure raised while running a store operation.
// The transaction, if any, has been rolled back when this error is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for op. A nil err stays nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// SchemaError is returned when the tracker tables could not be created or verified
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema unavailable: %v", e.Err)
	}
	return fmt.Sprintf("schema unavailable for table %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
