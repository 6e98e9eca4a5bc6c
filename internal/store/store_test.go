package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestToken creates a test token input
func buildTestToken(time int64, name, mint, creator string) CreateTokenInput {
	return CreateTokenInput{
		Time:    time,
		Name:    name,
		Mint:    mint,
		Creator: creator,
	}
}

func mustInsert(t *testing.T, store Store, input CreateTokenInput) *schema.Token {
	t.Helper()
	token, err := store.Insert(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, token)
	return token
}

func mustReputation(t *testing.T, store Store, creator string) *schema.CreatorReputation {
	t.Helper()
	reputation, err := store.GetReputation(context.Background(), creator)
	require.NoError(t, err)
	require.NotNil(t, reputation)
	return reputation
}

func testInsert(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("first token of a creator creates its reputation row", func(t *testing.T) {
		token := mustInsert(t, store, buildTestToken(1000, "FOO", "M1", "C1"))

		assert.Equal(t, int64(1), token.ID)
		assert.Equal(t, int64(1000), token.Time)
		assert.Equal(t, "FOO", token.Name)
		assert.Equal(t, "M1", token.Mint)
		assert.Equal(t, "C1", token.Creator)
		assert.Equal(t, int64(1), token.DuplicateCount)
		assert.False(t, token.IsScam)
		assert.False(t, token.IsRugged)

		reputation := mustReputation(t, store, "C1")
		assert.Equal(t, "C1", reputation.Creator)
		assert.Equal(t, int64(0), reputation.ScamCount)
		assert.Equal(t, int64(0), reputation.RuggedCount)
		assert.Equal(t, int64(1), reputation.TotalTokens)

		tokens, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, *token, tokens[0])
	})

	t.Run("tokens sharing a creator accumulate on one row", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			mustInsert(t, store, buildTestToken(int64(2000+i), fmt.Sprintf("BAR%d", i), fmt.Sprintf("MB%d", i), "C2"))
		}

		reputation := mustReputation(t, store, "C2")
		assert.Equal(t, int64(5), reputation.TotalTokens)

		tokens, err := store.FindByNameOrCreator(ctx, "", "C2")
		require.NoError(t, err)
		assert.Len(t, tokens, 5)
	})

	t.Run("insert does not touch other creators", func(t *testing.T) {
		mustInsert(t, store, buildTestToken(3000, "BAZ", "M3", "C3"))

		assert.Equal(t, int64(1), mustReputation(t, store, "C1").TotalTokens)
		assert.Equal(t, int64(5), mustReputation(t, store, "C2").TotalTokens)
		assert.Equal(t, int64(1), mustReputation(t, store, "C3").TotalTokens)
	})
}

func testInsertConcurrent(t *testing.T, store Store) {
	ctx := context.Background()
	const perCreator = 10

	var wg sync.WaitGroup
	errs := make(chan error, perCreator*2)
	for i := 0; i < perCreator; i++ {
		for _, creator := range []string{"CA", "CB"} {
			wg.Add(1)
			go func(i int, creator string) {
				defer wg.Done()
				_, err := store.Insert(ctx, buildTestToken(int64(i), "T", fmt.Sprintf("%s-%d", creator, i), creator))
				errs <- err
			}(i, creator)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(perCreator), mustReputation(t, store, "CA").TotalTokens)
	assert.Equal(t, int64(perCreator), mustReputation(t, store, "CB").TotalTokens)

	tokens, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tokens, perCreator*2)
}

func testFindQueries(t *testing.T, store Store) {
	ctx := context.Background()

	first := mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))
	second := mustInsert(t, store, buildTestToken(2, "BAR", "M1", "C2"))
	third := mustInsert(t, store, buildTestToken(3, "FOO", "M2", "C3"))
	fourth := mustInsert(t, store, buildTestToken(4, "QUX", "M3", "C1"))

	t.Run("find by name or creator matches either field", func(t *testing.T) {
		tokens, err := store.FindByNameOrCreator(ctx, "FOO", "C1")
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, first.ID, tokens[0].ID)
		assert.Equal(t, third.ID, tokens[1].ID)
		assert.Equal(t, fourth.ID, tokens[2].ID)
	})

	t.Run("find by name or creator with no match", func(t *testing.T) {
		tokens, err := store.FindByNameOrCreator(ctx, "NOPE", "NOBODY")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("find by mint returns every row of the mint", func(t *testing.T) {
		tokens, err := store.FindByMint(ctx, "M1")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, first.ID, tokens[0].ID)
		assert.Equal(t, second.ID, tokens[1].ID)
	})

	t.Run("find by unknown mint returns nothing", func(t *testing.T) {
		tokens, err := store.FindByMint(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("list all is ordered by id", func(t *testing.T) {
		tokens, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, tokens, 4)
		for i := 1; i < len(tokens); i++ {
			assert.Less(t, tokens[i-1].ID, tokens[i].ID)
		}
	})

	t.Run("find unclassified pages by id and skips flagged tokens", func(t *testing.T) {
		_, err := store.Classify(ctx, "M2", true, false)
		require.NoError(t, err)

		page, err := store.FindUnclassified(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, first.ID, page[0].ID)
		assert.Equal(t, second.ID, page[1].ID)

		page, err = store.FindUnclassified(ctx, page[1].ID, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, fourth.ID, page[0].ID)

		page, err = store.FindUnclassified(ctx, fourth.ID, 2)
		require.NoError(t, err)
		assert.Empty(t, page)
	})
}

func testIncrementDuplicateCount(t *testing.T, store Store) {
	ctx := context.Background()

	foo1 := mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))
	foo2 := mustInsert(t, store, buildTestToken(2, "FOO", "M2", "C2"))
	bar := mustInsert(t, store, buildTestToken(3, "BAR", "M3", "C1"))
	other := mustInsert(t, store, buildTestToken(4, "BAZ", "M4", "C9"))

	counts := func(t *testing.T) map[int64]int64 {
		tokens, err := store.ListAll(ctx)
		require.NoError(t, err)
		result := make(map[int64]int64, len(tokens))
		for _, token := range tokens {
			result[token.ID] = token.DuplicateCount
		}
		return result
	}

	t.Run("no arguments is a no-op", func(t *testing.T) {
		update, err := store.IncrementDuplicateCount(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, DuplicateUpdate{}, update)

		for _, count := range counts(t) {
			assert.Equal(t, int64(1), count)
		}
	})

	t.Run("name increments only rows with that name", func(t *testing.T) {
		update, err := store.IncrementDuplicateCount(ctx, "FOO", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), update.ByName)
		assert.Equal(t, int64(0), update.ByCreator)

		got := counts(t)
		assert.Equal(t, int64(2), got[foo1.ID])
		assert.Equal(t, int64(2), got[foo2.ID])
		assert.Equal(t, int64(1), got[bar.ID])
		assert.Equal(t, int64(1), got[other.ID])
	})

	t.Run("creator increments only rows of that creator", func(t *testing.T) {
		update, err := store.IncrementDuplicateCount(ctx, "", "C1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), update.ByName)
		assert.Equal(t, int64(2), update.ByCreator)

		got := counts(t)
		assert.Equal(t, int64(3), got[foo1.ID])
		assert.Equal(t, int64(2), got[foo2.ID])
		assert.Equal(t, int64(2), got[bar.ID])
		assert.Equal(t, int64(1), got[other.ID])
	})

	t.Run("row matching both signals is incremented twice", func(t *testing.T) {
		update, err := store.IncrementDuplicateCount(ctx, "FOO", "C1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), update.Total())

		got := counts(t)
		assert.Equal(t, int64(5), got[foo1.ID])
		assert.Equal(t, int64(3), got[foo2.ID])
		assert.Equal(t, int64(3), got[bar.ID])
		assert.Equal(t, int64(1), got[other.ID])
	})

	t.Run("unknown values touch nothing", func(t *testing.T) {
		update, err := store.IncrementDuplicateCount(ctx, "NOPE", "NOBODY")
		require.NoError(t, err)
		assert.Equal(t, int64(0), update.Total())
	})

	t.Run("duplicate counts do not change the ledger", func(t *testing.T) {
		assert.Equal(t, int64(2), mustReputation(t, store, "C1").TotalTokens)
	})
}

func testClassify(t *testing.T, store Store) {
	ctx := context.Background()

	mustInsert(t, store, buildTestToken(1000, "FOO", "M1", "C1"))

	t.Run("scam verdict flags the token and bumps scam_count", func(t *testing.T) {
		result, err := store.Classify(ctx, "M1", true, false)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Matched)
		assert.Equal(t, 1, result.ScamFlagged)
		assert.Equal(t, 0, result.RuggedFlagged)
		require.Len(t, result.Tokens, 1)
		assert.True(t, result.Tokens[0].IsScam)
		assert.False(t, result.Tokens[0].IsRugged)
		assert.Equal(t, domain.ClassificationScamOnly, result.Tokens[0].Classification())

		reputation := mustReputation(t, store, "C1")
		assert.Equal(t, int64(1), reputation.ScamCount)
		assert.Equal(t, int64(0), reputation.RuggedCount)
		assert.Equal(t, int64(1), reputation.TotalTokens)
	})

	t.Run("repeating the verdict changes nothing", func(t *testing.T) {
		result, err := store.Classify(ctx, "M1", true, false)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Matched)
		assert.False(t, result.Changed())

		assert.Equal(t, int64(1), mustReputation(t, store, "C1").ScamCount)
	})

	t.Run("false flags never clear a set flag", func(t *testing.T) {
		result, err := store.Classify(ctx, "M1", false, false)
		require.NoError(t, err)
		assert.False(t, result.Changed())

		tokens, err := store.FindByMint(ctx, "M1")
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.True(t, tokens[0].IsScam)
	})

	t.Run("rugged after scam reaches both", func(t *testing.T) {
		result, err := store.Classify(ctx, "M1", true, true)
		require.NoError(t, err)
		assert.Equal(t, 0, result.ScamFlagged)
		assert.Equal(t, 1, result.RuggedFlagged)
		assert.Equal(t, domain.ClassificationBoth, result.Tokens[0].Classification())

		reputation := mustReputation(t, store, "C1")
		assert.Equal(t, int64(1), reputation.ScamCount)
		assert.Equal(t, int64(1), reputation.RuggedCount)
		assert.LessOrEqual(t, reputation.ScamCount, reputation.TotalTokens)
		assert.LessOrEqual(t, reputation.RuggedCount, reputation.TotalTokens)
	})

	t.Run("unknown mint leaves every table unchanged", func(t *testing.T) {
		before, err := store.ListAll(ctx)
		require.NoError(t, err)
		reputationBefore := mustReputation(t, store, "C1")

		result, err := store.Classify(ctx, "missing", true, true)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Matched)
		assert.Empty(t, result.Tokens)

		after, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Equal(t, reputationBefore, mustReputation(t, store, "C1"))

		_, err = store.GetReputation(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
	})

	t.Run("shared mint flags every row and each owning creator", func(t *testing.T) {
		mustInsert(t, store, buildTestToken(2000, "DUP", "MS", "C2"))
		mustInsert(t, store, buildTestToken(2001, "DUP", "MS", "C3"))

		result, err := store.Classify(ctx, "MS", false, true)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Matched)
		assert.Equal(t, 2, result.RuggedFlagged)
		for _, token := range result.Tokens {
			assert.True(t, token.IsRugged)
			assert.False(t, token.IsScam)
		}

		assert.Equal(t, int64(1), mustReputation(t, store, "C2").RuggedCount)
		assert.Equal(t, int64(1), mustReputation(t, store, "C3").RuggedCount)
	})
}

func testClassifyConcurrent(t *testing.T, store Store) {
	ctx := context.Background()
	mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))

	var wg sync.WaitGroup
	flagged := make(chan int, 8)
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := store.Classify(ctx, "M1", true, false)
			if err != nil {
				errs <- err
				return
			}
			flagged <- result.ScamFlagged
		}()
	}
	wg.Wait()
	close(flagged)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	total := 0
	for n := range flagged {
		total += n
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, int64(1), mustReputation(t, store, "C1").ScamCount)
}

func testClassifyLedgerInconsistent(t *testing.T, store Store) {
	ctx := context.Background()
	mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))

	s, ok := store.(*sqlStore)
	require.True(t, ok)
	require.NoError(t, s.db.Where("creator = ?", "C1").Delete(&schema.CreatorReputation{}).Error)

	result, err := store.Classify(ctx, "M1", true, false)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistent)

	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "classify", storageErr.Op)

	tokens, err := store.FindByMint(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.False(t, tokens[0].IsScam, "flag update must be rolled back")
}

func testGetReputation(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown creator", func(t *testing.T) {
		reputation, err := store.GetReputation(ctx, "nobody")
		assert.Nil(t, reputation)
		assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
	})

	t.Run("known creator", func(t *testing.T) {
		mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))
		mustInsert(t, store, buildTestToken(2, "FOO", "M2", "C1"))
		_, err := store.Classify(ctx, "M1", true, false)
		require.NoError(t, err)

		reputation := mustReputation(t, store, "C1")
		assert.Equal(t, int64(2), reputation.TotalTokens)
		assert.InDelta(t, 0.5, reputation.ScamRatio(), 0.0001)
		assert.Equal(t, float64(0), reputation.RuggedRatio())
		assert.True(t, reputation.HasHistory())
	})
}

func testEnsureSchemaIdempotent(t *testing.T, store Store) {
	ctx := context.Background()
	mustInsert(t, store, buildTestToken(1, "FOO", "M1", "C1"))

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	tokens, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tokens, 1, "existing rows survive a second schema pass")
}

func testCanceledContext(t *testing.T, store Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Insert(ctx, buildTestToken(1, "FOO", "M1", "C1"))
	require.Error(t, err)

	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "insert", storageErr.Op)

	tokens, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = store.GetReputation(context.Background(), "C1")
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func testInsertRollback(t *testing.T, store Store) {
	ctx := context.Background()

	s, ok := store.(*sqlStore)
	require.True(t, ok)

	// Fail the creator upsert after the token row has been written
	errUpsert := errors.New("creator upsert failed")
	const callbackName = "test:fail_creator_reputation"
	require.NoError(t, s.db.Callback().Create().Before("gorm:create").Register(callbackName, func(tx *gorm.DB) {
		if tx.Statement.Table == (schema.CreatorReputation{}).TableName() {
			_ = tx.AddError(errUpsert)
		}
	}))
	defer func() {
		_ = s.db.Callback().Create().Remove(callbackName)
	}()

	token, err := store.Insert(ctx, buildTestToken(1, "FOO", "M1", "C1"))
	require.Error(t, err)
	assert.Nil(t, token)
	assert.ErrorIs(t, err, errUpsert)

	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "insert", storageErr.Op)

	tokens, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokens, "token row must be rolled back with the failed upsert")

	_, err = store.GetReputation(ctx, "C1")
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Insert", testInsert},
		{"InsertConcurrent", testInsertConcurrent},
		{"FindQueries", testFindQueries},
		{"IncrementDuplicateCount", testIncrementDuplicateCount},
		{"Classify", testClassify},
		{"ClassifyConcurrent", testClassifyConcurrent},
		{"ClassifyLedgerInconsistent", testClassifyLedgerInconsistent},
		{"GetReputation", testGetReputation},
		{"EnsureSchemaIdempotent", testEnsureSchemaIdempotent},
		{"CanceledContext", testCanceledContext},
		{"InsertRollback", testInsertRollback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
