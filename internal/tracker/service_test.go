package tracker_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/mocks"
	"github.com/feral-file/token-tracker/internal/registry"
	"github.com/feral-file/token-tracker/internal/store"
	"github.com/feral-file/token-tracker/internal/store/schema"
	"github.com/feral-file/token-tracker/internal/tracker"
)

// testServiceMocks contains all the mocks needed for testing the service
type testServiceMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	checker  *mocks.MockAuthorityChecker
	denylist *mocks.MockCreatorDenylist
	clock    *mocks.MockClock
	service  tracker.Service
}

func setupTestService(t *testing.T) *testServiceMocks {
	ctrl := gomock.NewController(t)

	tm := &testServiceMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		checker:  mocks.NewMockAuthorityChecker(ctrl),
		denylist: mocks.NewMockCreatorDenylist(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	tm.service = tracker.NewService(tm.store, tm.checker, tm.denylist, tm.clock)

	t.Cleanup(ctrl.Finish)
	return tm
}

func TestService_Track(t *testing.T) {
	ctx := context.Background()
	candidate := domain.Candidate{Time: 1000, Name: "FOO", Mint: "M2", Creator: "C1"}

	t.Run("first launch", func(t *testing.T) {
		tm := setupTestService(t)

		inserted := &schema.Token{ID: 1, Time: 1000, Name: "FOO", Mint: "M2", Creator: "C1", DuplicateCount: 1}
		reputation := &schema.CreatorReputation{Creator: "C1", TotalTokens: 1}

		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil),
			tm.store.EXPECT().Insert(ctx, store.CreateTokenInput{Time: 1000, Name: "FOO", Mint: "M2", Creator: "C1"}).Return(inserted, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(false),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(reputation, nil),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, inserted, result.Token)
		assert.False(t, result.NameCollision)
		assert.False(t, result.CreatorCollision)
		assert.False(t, result.Denied)
		assert.Equal(t, reputation, result.Reputation)
	})

	t.Run("name collision only bumps by name", func(t *testing.T) {
		tm := setupTestService(t)

		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").
				Return([]schema.Token{{ID: 1, Name: "FOO", Mint: "M1", Creator: "C9"}}, nil),
			tm.store.EXPECT().IncrementDuplicateCount(ctx, "FOO", "").
				Return(store.DuplicateUpdate{ByName: 1}, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(&schema.Token{ID: 2}, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(false),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(&schema.CreatorReputation{Creator: "C1", TotalTokens: 1}, nil),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.NoError(t, err)
		assert.True(t, result.NameCollision)
		assert.False(t, result.CreatorCollision)
		assert.Equal(t, int64(1), result.Duplicates.ByName)
	})

	t.Run("name and creator collision bumps both", func(t *testing.T) {
		tm := setupTestService(t)

		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").
				Return([]schema.Token{
					{ID: 1, Name: "FOO", Mint: "M1", Creator: "C9"},
					{ID: 2, Name: "BAR", Mint: "M3", Creator: "C1"},
				}, nil),
			tm.store.EXPECT().IncrementDuplicateCount(ctx, "FOO", "C1").
				Return(store.DuplicateUpdate{ByName: 1, ByCreator: 1}, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(&schema.Token{ID: 3}, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(false),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(&schema.CreatorReputation{Creator: "C1", TotalTokens: 2}, nil),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.NoError(t, err)
		assert.True(t, result.NameCollision)
		assert.True(t, result.CreatorCollision)
		assert.Equal(t, int64(2), result.Duplicates.Total())
	})

	t.Run("denied creator is flagged as scam", func(t *testing.T) {
		tm := setupTestService(t)

		flagged := schema.Token{ID: 1, Name: "FOO", Mint: "M2", Creator: "C1", DuplicateCount: 1, IsScam: true}
		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(&schema.Token{ID: 1, Name: "FOO", Mint: "M2", Creator: "C1", DuplicateCount: 1}, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(true),
			tm.store.EXPECT().Classify(ctx, "M2", true, false).
				Return(&store.ClassifyResult{Mint: "M2", Matched: 1, ScamFlagged: 1, Tokens: []schema.Token{flagged}}, nil),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(&schema.CreatorReputation{Creator: "C1", ScamCount: 1, TotalTokens: 1}, nil),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.NoError(t, err)
		assert.True(t, result.Denied)
		assert.True(t, result.Token.IsScam)
		assert.Equal(t, int64(1), result.Reputation.ScamCount)
	})

	t.Run("zero time is stamped from the clock", func(t *testing.T) {
		tm := setupTestService(t)
		now := time.UnixMilli(1700000000123)

		gomock.InOrder(
			tm.clock.EXPECT().Now().Return(now),
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil),
			tm.store.EXPECT().Insert(ctx, store.CreateTokenInput{Time: 1700000000123, Name: "FOO", Mint: "M2", Creator: "C1"}).
				Return(&schema.Token{ID: 1, Time: 1700000000123}, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(false),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(&schema.CreatorReputation{Creator: "C1", TotalTokens: 1}, nil),
		)

		result, err := tm.service.Track(ctx, domain.Candidate{Name: " FOO ", Mint: "M2", Creator: "C1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000123), result.Token.Time)
	})

	t.Run("invalid candidate is rejected before any write", func(t *testing.T) {
		tm := setupTestService(t)

		result, err := tm.service.Track(ctx, domain.Candidate{Name: "FOO", Mint: "", Creator: "C1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCandidate)
		assert.Nil(t, result)
	})

	t.Run("insert failure is returned", func(t *testing.T) {
		tm := setupTestService(t)

		storageErr := domain.NewStorageError("insert", assert.AnError)
		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(nil, storageErr),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.Error(t, err)
		assert.Nil(t, result)
		var se *domain.StorageError
		assert.ErrorAs(t, err, &se)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("insert failure after a collision keeps the earlier bump", func(t *testing.T) {
		tm := setupTestService(t)

		// The bump commits on its own before the insert; nothing after the failed insert runs
		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").
				Return([]schema.Token{{ID: 1, Name: "FOO", Mint: "M1", Creator: "C9"}}, nil),
			tm.store.EXPECT().IncrementDuplicateCount(ctx, "FOO", "").
				Return(store.DuplicateUpdate{ByName: 1}, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(nil, domain.NewStorageError("insert", assert.AnError)),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("creator with flagged history is still tracked", func(t *testing.T) {
		tm := setupTestService(t)

		reputation := &schema.CreatorReputation{Creator: "C1", ScamCount: 1, RuggedCount: 1, TotalTokens: 4}
		gomock.InOrder(
			tm.store.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil),
			tm.store.EXPECT().Insert(ctx, gomock.Any()).Return(&schema.Token{ID: 5}, nil),
			tm.denylist.EXPECT().IsDenied("C1").Return(false),
			tm.store.EXPECT().GetReputation(ctx, "C1").Return(reputation, nil),
		)

		result, err := tm.service.Track(ctx, candidate)
		require.NoError(t, err)
		assert.True(t, result.Reputation.HasHistory())
		assert.Equal(t, 0.25, result.Reputation.ScamRatio())
	})
}

func TestService_TrackWithoutDenylist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mocks.NewMockStore(ctrl)
	service := tracker.NewService(st, nil, nil, adapter.NewClock())

	st.EXPECT().FindByNameOrCreator(ctx, "FOO", "C1").Return(nil, nil)
	st.EXPECT().Insert(ctx, gomock.Any()).Return(&schema.Token{ID: 1}, nil)
	st.EXPECT().GetReputation(ctx, "C1").Return(&schema.CreatorReputation{Creator: "C1", TotalTokens: 1}, nil)

	result, err := service.Track(ctx, domain.Candidate{Time: 1, Name: "FOO", Mint: "M1", Creator: "C1"})
	require.NoError(t, err)
	assert.False(t, result.Denied)
}

func TestService_Assess(t *testing.T) {
	ctx := context.Background()

	t.Run("secure token is left alone", func(t *testing.T) {
		tm := setupTestService(t)
		tm.checker.EXPECT().IsTokenSecure(ctx, "M1").Return(true, nil)

		result, err := tm.service.Assess(ctx, "M1")
		require.NoError(t, err)
		assert.True(t, result.Secure)
		assert.Nil(t, result.Classification)
	})

	t.Run("insecure token is flagged as scam", func(t *testing.T) {
		tm := setupTestService(t)
		gomock.InOrder(
			tm.checker.EXPECT().IsTokenSecure(ctx, "M1").Return(false, nil),
			tm.store.EXPECT().Classify(ctx, "M1", true, false).
				Return(&store.ClassifyResult{Mint: "M1", Matched: 1, ScamFlagged: 1}, nil),
		)

		result, err := tm.service.Assess(ctx, "M1")
		require.NoError(t, err)
		assert.False(t, result.Secure)
		require.NotNil(t, result.Classification)
		assert.Equal(t, 1, result.Classification.ScamFlagged)
	})

	t.Run("checker error writes nothing", func(t *testing.T) {
		tm := setupTestService(t)
		tm.checker.EXPECT().IsTokenSecure(ctx, "M1").Return(false, domain.ErrMintAccountNotFound)

		result, err := tm.service.Assess(ctx, "M1")
		assert.ErrorIs(t, err, domain.ErrMintAccountNotFound)
		assert.Nil(t, result)
	})

	t.Run("no checker configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := tracker.NewService(mocks.NewMockStore(ctrl), nil, nil, adapter.NewClock())
		result, err := service.Assess(ctx, "M1")
		assert.ErrorIs(t, err, tracker.ErrCheckerUnavailable)
		assert.Nil(t, result)
	})
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("verdict is forwarded", func(t *testing.T) {
		tm := setupTestService(t)
		expected := &store.ClassifyResult{Mint: "M1", Matched: 1, RuggedFlagged: 1}
		tm.store.EXPECT().Classify(ctx, "M1", false, true).Return(expected, nil)

		result, err := tm.service.Report(ctx, "M1", domain.Verdict{Rugged: true})
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("empty verdict is rejected before any write", func(t *testing.T) {
		tm := setupTestService(t)

		result, err := tm.service.Report(ctx, "M1", domain.Verdict{})
		assert.ErrorIs(t, err, domain.ErrEmptyVerdict)
		assert.Nil(t, result)
	})

	t.Run("unknown mint is a no-op", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().Classify(ctx, "missing", true, true).Return(&store.ClassifyResult{Mint: "missing"}, nil)

		result, err := tm.service.Report(ctx, "missing", domain.Verdict{Scam: true, Rugged: true})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Matched)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().Classify(ctx, "M1", true, false).Return(nil, domain.NewStorageError("classify", assert.AnError))

		result, err := tm.service.Report(ctx, "M1", domain.Verdict{Scam: true})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, result)
	})
}

func TestService_Reputation(t *testing.T) {
	ctx := context.Background()
	tm := setupTestService(t)

	tm.store.EXPECT().GetReputation(ctx, "nobody").Return(nil, domain.ErrCreatorNotFound)

	reputation, err := tm.service.Reputation(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)
	assert.Nil(t, reputation)
}

// TestService_TrackAgainstSQLite runs the whole ingestion flow on a real database
func TestService_TrackAgainstSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := store.Open(store.EngineSQLite, store.SQLiteDSN(filepath.Join(t.TempDir(), "tracker.db")), nil)
	require.NoError(t, err)
	require.NoError(t, store.ConfigureConnectionPool(db, store.EngineSQLite, 0, 0, 0, 0))
	defer func() { _ = store.Close(db) }()

	st, err := store.NewStore(ctx, db, store.Options{Engine: store.EngineSQLite, TxTimeout: 5 * time.Second})
	require.NoError(t, err)

	service := tracker.NewService(st, nil, registry.NewCreatorDenylist([]string{"RUGGER"}), adapter.NewClock())

	first, err := service.Track(ctx, domain.Candidate{Time: 1000, Name: "FOO", Mint: "M1", Creator: "C1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Reputation.TotalTokens)

	second, err := service.Track(ctx, domain.Candidate{Time: 2000, Name: "FOO", Mint: "M2", Creator: "C1"})
	require.NoError(t, err)
	assert.True(t, second.NameCollision)
	assert.True(t, second.CreatorCollision)
	assert.Equal(t, int64(2), second.Reputation.TotalTokens)
	assert.Equal(t, int64(1), second.Token.DuplicateCount)

	tokens, err := st.FindByMint(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, int64(3), tokens[0].DuplicateCount, "matching both signals counts twice")

	_, err = service.Report(ctx, "M1", domain.Verdict{})
	assert.ErrorIs(t, err, domain.ErrEmptyVerdict)

	denied, err := service.Track(ctx, domain.Candidate{Time: 3000, Name: "RUG", Mint: "M3", Creator: "RUGGER"})
	require.NoError(t, err)
	assert.True(t, denied.Denied)
	assert.True(t, denied.Token.IsScam)
	assert.Equal(t, int64(1), denied.Reputation.ScamCount)

	classified, err := service.Report(ctx, "M1", domain.Verdict{Rugged: true})
	require.NoError(t, err)
	assert.Equal(t, 1, classified.RuggedFlagged)

	reputation, err := service.Reputation(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), reputation.RuggedCount)
	assert.Equal(t, int64(0), reputation.ScamCount)
	assert.Equal(t, int64(2), reputation.TotalTokens)
}
