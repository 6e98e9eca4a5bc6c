package domain

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Candidate is a freshly discovered token launch handed over by the ingestion layer
type Candidate struct {
	// Time is the observation timestamp in epoch milliseconds (0 lets the tracker stamp it)
	Time int64 `json:"time"`
	// Name is the display name announced by the launch
	Name string `json:"name"`
	// Mint is the on-chain address of the token mint
	Mint string `json:"mint"`
	// Creator is the wallet address that launched the token
	Creator string `json:"creator"`
}

// Normalize trims surrounding whitespace from all text fields
func (c Candidate) Normalize() Candidate {
	c.Name = strings.TrimSpace(c.Name)
	c.Mint = strings.TrimSpace(c.Mint)
	c.Creator = strings.TrimSpace(c.Creator)
	return c
}

// Validate checks that every required field is present
func (c Candidate) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCandidate)
	}
	if c.Mint == "" {
		return fmt.Errorf("%w: mint is required", ErrInvalidCandidate)
	}
	if c.Creator == "" {
		return fmt.Errorf("%w: creator is required", ErrInvalidCandidate)
	}
	if c.Time < 0 {
		return fmt.Errorf("%w: time must not be negative", ErrInvalidCandidate)
	}
	return nil
}

// Verdict is the outcome of an external scam/rug classifier
type Verdict struct {
	Scam   bool `json:"scam"`
	Rugged bool `json:"rugged"`
}

// IsEmpty reports whether the verdict flags nothing
func (v Verdict) IsEmpty() bool {
	return !v.Scam && !v.Rugged
}

// Classification is the lifecycle state of a token record.
// Flags only move forward, so the state never returns to Unclassified.
type Classification string

const (
	ClassificationUnclassified Classification = "unclassified"
	ClassificationScamOnly     Classification = "scam"
	ClassificationRuggedOnly   Classification = "rugged"
	ClassificationBoth         Classification = "scam_and_rugged"
)

// ClassificationOf maps the pair of flags stored on a token to its state
func ClassificationOf(isScam, isRugged bool) Classification {
	switch {
	case isScam && isRugged:
		return ClassificationBoth
	case isScam:
		return ClassificationScamOnly
	case isRugged:
		return ClassificationRuggedOnly
	default:
		return ClassificationUnclassified
	}
}

// Apply returns the state reached after applying v. Flags that are already set stay set.
func (c Classification) Apply(v Verdict) Classification {
	isScam := c == ClassificationScamOnly || c == ClassificationBoth || v.Scam
	isRugged := c == ClassificationRuggedOnly || c == ClassificationBoth || v.Rugged
	return ClassificationOf(isScam, isRugged)
}

// IsValidSolanaAddress checks that address is base58 encoding of a 32 byte public key
func IsValidSolanaAddress(address string) bool {
	if address == "" {
		return false
	}
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return len(decoded) == MINT_ADDRESS_LENGTH
}
