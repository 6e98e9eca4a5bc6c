package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/authority"
	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/logger"
	"github.com/feral-file/token-tracker/internal/registry"
	"github.com/feral-file/token-tracker/internal/store"
	"github.com/feral-file/token-tracker/internal/store/schema"
)

// ErrCheckerUnavailable is returned by Assess when no authority checker is wired
var ErrCheckerUnavailable = errors.New("authority checker is not configured")

// TrackResult is the outcome of tracking one candidate
type TrackResult struct {
	Token *schema.Token `json:"token"`
	// NameCollision is true when an earlier token used the same name
	NameCollision bool `json:"name_collision"`
	// CreatorCollision is true when the creator launched a token before
	CreatorCollision bool                  `json:"creator_collision"`
	Duplicates       store.DuplicateUpdate `json:"duplicates"`
	// Denied is true when the creator is on the denylist and the token was flagged as scam
	Denied     bool                      `json:"denied"`
	Reputation *schema.CreatorReputation `json:"reputation"`
}

// AssessResult is the outcome of an authority assessment
type AssessResult struct {
	Mint   string `json:"mint"`
	Secure bool   `json:"secure"`
	// Classification is set when the token was flagged as scam
	Classification *store.ClassifyResult `json:"classification,omitempty"`
}

// Service is the ingestion facing entry point of the tracker
//
//go:generate mockgen -source=service.go -destination=../mocks/tracker_service.go -package=mocks -mock_names=Service=MockTrackerService
type Service interface {
	// Track records a newly observed token, counting name and creator repeats
	Track(ctx context.Context, candidate domain.Candidate) (*TrackResult, error)

	// Assess checks the mint authorities and flags insecure tokens as scam
	Assess(ctx context.Context, mint string) (*AssessResult, error)

	// Report applies an external classifier verdict to the mint
	Report(ctx context.Context, mint string, verdict domain.Verdict) (*store.ClassifyResult, error)

	// Reputation returns the creator's ledger row
	Reputation(ctx context.Context, creator string) (*schema.CreatorReputation, error)
}

type service struct {
	store    store.Store
	checker  authority.Checker
	denylist registry.CreatorDenylist
	clock    adapter.Clock
}

// NewService creates a tracker service. checker and denylist are optional.
func NewService(st store.Store, checker authority.Checker, denylist registry.CreatorDenylist, clock adapter.Clock) Service {
	return &service{
		store:    st,
		checker:  checker,
		denylist: denylist,
		clock:    clock,
	}
}

// Track validates the candidate, bumps duplicate counters on collisions, inserts it and
// flags it right away when its creator is denied
func (s *service) Track(ctx context.Context, candidate domain.Candidate) (*TrackResult, error) {
	candidate = candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.Time == 0 {
		candidate.Time = s.clock.Now().UnixMilli()
	}

	existing, err := s.store.FindByNameOrCreator(ctx, candidate.Name, candidate.Creator)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("mint", candidate.Mint))
		return nil, fmt.Errorf("failed to look up collisions: %w", err)
	}

	result := &TrackResult{}
	for _, token := range existing {
		if token.Name == candidate.Name {
			result.NameCollision = true
		}
		if token.Creator == candidate.Creator {
			result.CreatorCollision = true
		}
	}

	// Existing rows are bumped before the insert so the new row keeps duplicate_count 1.
	// The bump is its own transaction: a failed insert leaves it in place, the counters
	// record that the name or creator was seen again, not that a launch was stored.
	if result.NameCollision || result.CreatorCollision {
		var name, creator string
		if result.NameCollision {
			name = candidate.Name
		}
		if result.CreatorCollision {
			creator = candidate.Creator
		}

		result.Duplicates, err = s.store.IncrementDuplicateCount(ctx, name, creator)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("mint", candidate.Mint))
			return nil, fmt.Errorf("failed to increment duplicate count: %w", err)
		}

		logger.InfoCtx(ctx, "Repeat launch detected",
			zap.String("mint", candidate.Mint),
			zap.Bool("name_collision", result.NameCollision),
			zap.Bool("creator_collision", result.CreatorCollision),
			zap.Int64("rows_bumped", result.Duplicates.Total()),
		)
	}

	result.Token, err = s.store.Insert(ctx, store.CreateTokenInput{
		Time:    candidate.Time,
		Name:    candidate.Name,
		Mint:    candidate.Mint,
		Creator: candidate.Creator,
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("mint", candidate.Mint))
		return nil, fmt.Errorf("failed to insert token: %w", err)
	}

	if s.denylist != nil && s.denylist.IsDenied(candidate.Creator) {
		classified, err := s.store.Classify(ctx, candidate.Mint, true, false)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("mint", candidate.Mint))
			return nil, fmt.Errorf("failed to flag denied creator: %w", err)
		}
		result.Denied = true
		for i := range classified.Tokens {
			if classified.Tokens[i].ID == result.Token.ID {
				result.Token = &classified.Tokens[i]
				break
			}
		}

		logger.WarnCtx(ctx, "Token from denied creator flagged as scam",
			zap.String("mint", candidate.Mint),
			zap.String("creator", candidate.Creator),
		)
	}

	result.Reputation, err = s.store.GetReputation(ctx, candidate.Creator)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("creator", candidate.Creator))
		return nil, fmt.Errorf("failed to read creator reputation: %w", err)
	}

	if result.Reputation.HasHistory() {
		logger.WarnCtx(ctx, "Creator has flagged launches",
			zap.String("creator", candidate.Creator),
			zap.Float64("scam_ratio", result.Reputation.ScamRatio()),
			zap.Float64("rugged_ratio", result.Reputation.RuggedRatio()),
		)
	}

	return result, nil
}

// Assess flags the mint as scam when it fails the authority policy.
// Checker errors are returned and nothing is written.
func (s *service) Assess(ctx context.Context, mint string) (*AssessResult, error) {
	if s.checker == nil {
		return nil, ErrCheckerUnavailable
	}

	secure, err := s.checker.IsTokenSecure(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to check token authorities: %w", err)
	}

	result := &AssessResult{Mint: mint, Secure: secure}
	if secure {
		return result, nil
	}

	result.Classification, err = s.store.Classify(ctx, mint, true, false)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("mint", mint))
		return nil, fmt.Errorf("failed to classify insecure token: %w", err)
	}

	if result.Classification.Changed() {
		logger.InfoCtx(ctx, "Insecure token flagged as scam",
			zap.String("mint", mint),
			zap.Int("rows", result.Classification.ScamFlagged),
		)
	}

	return result, nil
}

// Report forwards an external verdict to the store. A verdict flagging nothing is rejected.
func (s *service) Report(ctx context.Context, mint string, verdict domain.Verdict) (*store.ClassifyResult, error) {
	if verdict.IsEmpty() {
		return nil, domain.ErrEmptyVerdict
	}

	result, err := s.store.Classify(ctx, mint, verdict.Scam, verdict.Rugged)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("mint", mint))
		return nil, fmt.Errorf("failed to apply verdict: %w", err)
	}

	if result.Matched == 0 {
		logger.WarnCtx(ctx, "Verdict for unknown mint ignored", zap.String("mint", mint))
	}

	return result, nil
}

// Reputation returns the creator's ledger row or domain.ErrCreatorNotFound
func (s *service) Reputation(ctx context.Context, creator string) (*schema.CreatorReputation, error) {
	return s.store.GetReputation(ctx, creator)
}
