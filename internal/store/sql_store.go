package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/logger"
	"github.com/feral-file/token-tracker/internal/store/schema"
)

type sqlStore struct {
	db              *gorm.DB
	engine          Engine
	txTimeout       time.Duration
	retryMaxElapsed time.Duration
}

// NewStore creates a store on top of an open database handle.
// The schema is ensured once here; no store is returned when it cannot be created.
func NewStore(ctx context.Context, db *gorm.DB, opts Options) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	if !opts.Engine.Valid() {
		return nil, fmt.Errorf("unsupported database engine: %q", opts.Engine)
	}

	s := &sqlStore{
		db:              db,
		engine:          opts.Engine,
		txTimeout:       opts.TxTimeout,
		retryMaxElapsed: opts.RetryMaxElapsed,
	}

	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// withDeadline derives the per operation context
func (s *sqlStore) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.txTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.txTimeout)
}

// transaction runs fn in its own transaction, retrying lock contention failures.
// fn may run more than once and must not leak state between attempts.
func (s *sqlStore) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err := retryTransient(ctx, op, s.retryMaxElapsed, func() error {
		return s.db.WithContext(ctx).Transaction(fn)
	})
	if err != nil {
		logger.WarnCtx(ctx, "Store operation rolled back", zap.String("op", op), zap.Error(err))
	}
	return domain.NewStorageError(op, err)
}

// query runs a read-only statement under the operation deadline
func (s *sqlStore) query(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err := retryTransient(ctx, op, s.retryMaxElapsed, func() error {
		return fn(s.db.WithContext(ctx))
	})
	return domain.NewStorageError(op, err)
}

// EnsureSchema creates the tracker tables when absent
func (s *sqlStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	return EnsureSchema(ctx, s.db, s.engine)
}

// Insert records a token and upserts its creator's reputation row
func (s *sqlStore) Insert(ctx context.Context, input CreateTokenInput) (*schema.Token, error) {
	var token schema.Token

	err := s.transaction(ctx, "insert", func(tx *gorm.DB) error {
		token = schema.Token{
			Time:           input.Time,
			Name:           input.Name,
			Mint:           input.Mint,
			Creator:        input.Creator,
			DuplicateCount: 1,
		}
		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to insert token: %w", err)
		}

		reputation := schema.CreatorReputation{
			Creator:     input.Creator,
			TotalTokens: 1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "creator"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_tokens": gorm.Expr("creator_reputation.total_tokens + ?", 1),
			}),
		}).Create(&reputation).Error; err != nil {
			return fmt.Errorf("failed to upsert creator reputation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// FindByNameOrCreator returns tokens whose name or creator matches
func (s *sqlStore) FindByNameOrCreator(ctx context.Context, name, creator string) ([]schema.Token, error) {
	var tokens []schema.Token
	err := s.query(ctx, "find_by_name_or_creator", func(db *gorm.DB) error {
		tokens = nil
		return db.Where("name = ? OR creator = ?", name, creator).
			Order("id ASC").
			Find(&tokens).Error
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// FindByMint returns tokens recorded under the mint
func (s *sqlStore) FindByMint(ctx context.Context, mint string) ([]schema.Token, error) {
	var tokens []schema.Token
	err := s.query(ctx, "find_by_mint", func(db *gorm.DB) error {
		tokens = nil
		return db.Where("mint = ?", mint).Order("id ASC").Find(&tokens).Error
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// ListAll returns every token
func (s *sqlStore) ListAll(ctx context.Context) ([]schema.Token, error) {
	var tokens []schema.Token
	err := s.query(ctx, "list_all", func(db *gorm.DB) error {
		tokens = nil
		return db.Order("id ASC").Find(&tokens).Error
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// FindUnclassified pages through tokens without any flag using keyset pagination on id
func (s *sqlStore) FindUnclassified(ctx context.Context, afterID int64, limit int) ([]schema.Token, error) {
	if limit <= 0 {
		limit = 100
	}

	var tokens []schema.Token
	err := s.query(ctx, "find_unclassified", func(db *gorm.DB) error {
		tokens = nil
		return db.Where("id > ? AND is_scam = ? AND is_rugged = ?", afterID, false, false).
			Order("id ASC").
			Limit(limit).
			Find(&tokens).Error
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// IncrementDuplicateCount bumps duplicate_count for the name and creator signals in one transaction
func (s *sqlStore) IncrementDuplicateCount(ctx context.Context, name, creator string) (DuplicateUpdate, error) {
	if name == "" && creator == "" {
		return DuplicateUpdate{}, nil
	}

	var update DuplicateUpdate
	err := s.transaction(ctx, "increment_duplicate_count", func(tx *gorm.DB) error {
		update = DuplicateUpdate{}

		if name != "" {
			result := tx.Model(&schema.Token{}).
				Where("name = ?", name).
				UpdateColumn("duplicate_count", gorm.Expr("duplicate_count + ?", 1))
			if result.Error != nil {
				return fmt.Errorf("failed to increment duplicate count by name: %w", result.Error)
			}
			update.ByName = result.RowsAffected
		}

		if creator != "" {
			result := tx.Model(&schema.Token{}).
				Where("creator = ?", creator).
				UpdateColumn("duplicate_count", gorm.Expr("duplicate_count + ?", 1))
			if result.Error != nil {
				return fmt.Errorf("failed to increment duplicate count by creator: %w", result.Error)
			}
			update.ByCreator = result.RowsAffected
		}

		return nil
	})
	if err != nil {
		return DuplicateUpdate{}, err
	}

	return update, nil
}

// Classify flags every token of the mint. A flag already set is left alone and
// its creator counter is not bumped again, so repeating a call changes nothing.
func (s *sqlStore) Classify(ctx context.Context, mint string, isScam, isRugged bool) (*ClassifyResult, error) {
	var result *ClassifyResult

	err := s.transaction(ctx, "classify", func(tx *gorm.DB) error {
		result = &ClassifyResult{Mint: mint}

		var tokens []schema.Token
		if err := tx.Where("mint = ?", mint).Order("id ASC").Find(&tokens).Error; err != nil {
			return fmt.Errorf("failed to load tokens by mint: %w", err)
		}
		result.Matched = len(tokens)
		if len(tokens) == 0 {
			return nil
		}

		verdict := domain.Verdict{Scam: isScam, Rugged: isRugged}
		for _, token := range tokens {
			if current := token.Classification(); current.Apply(verdict) == current {
				continue
			}
			if isScam && !token.IsScam {
				flipped, err := flipFlag(tx, token, "is_scam", "scam_count")
				if err != nil {
					return err
				}
				if flipped {
					result.ScamFlagged++
				}
			}
			if isRugged && !token.IsRugged {
				flipped, err := flipFlag(tx, token, "is_rugged", "rugged_count")
				if err != nil {
					return err
				}
				if flipped {
					result.RuggedFlagged++
				}
			}
		}

		if !result.Changed() {
			result.Tokens = tokens
			return nil
		}

		var updated []schema.Token
		if err := tx.Where("mint = ?", mint).Order("id ASC").Find(&updated).Error; err != nil {
			return fmt.Errorf("failed to reload tokens by mint: %w", err)
		}
		result.Tokens = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// flipFlag sets flagColumn on the token only if it is still false and, when it did,
// bumps counterColumn on the owning creator's reputation row.
func flipFlag(tx *gorm.DB, token schema.Token, flagColumn, counterColumn string) (bool, error) {
	update := tx.Model(&schema.Token{}).
		Where(fmt.Sprintf("id = ? AND %s = ?", flagColumn), token.ID, false).
		UpdateColumn(flagColumn, true)
	if update.Error != nil {
		return false, fmt.Errorf("failed to set %s on token %d: %w", flagColumn, token.ID, update.Error)
	}
	if update.RowsAffected == 0 {
		// Another writer flagged it first and already bumped the counter
		return false, nil
	}

	counter := tx.Model(&schema.CreatorReputation{}).
		Where("creator = ?", token.Creator).
		UpdateColumn(counterColumn, gorm.Expr(fmt.Sprintf("%s + ?", counterColumn), 1))
	if counter.Error != nil {
		return false, fmt.Errorf("failed to increment %s for creator %s: %w", counterColumn, token.Creator, counter.Error)
	}
	if counter.RowsAffected == 0 {
		return false, fmt.Errorf("%w: no reputation row for creator %s", domain.ErrLedgerInconsistent, token.Creator)
	}

	return true, nil
}

// GetReputation returns the ledger row of the creator
func (s *sqlStore) GetReputation(ctx context.Context, creator string) (*schema.CreatorReputation, error) {
	var reputation schema.CreatorReputation
	err := s.query(ctx, "get_reputation", func(db *gorm.DB) error {
		reputation = schema.CreatorReputation{}
		return db.Where("creator = ?", creator).First(&reputation).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, err
	}
	return &reputation, nil
}
