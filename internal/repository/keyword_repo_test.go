package repository

import (
	"context"
	"testing"

	"SellerLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedKeyword(t *testing.T, db *gorm.DB, row *model.Keyword) *model.Keyword {
	t.Helper()
	row.IsActive = true
	require.NoError(t, db.Create(row).Error)
	return row
}

func catPtr(s string) *string { return &s }

func TestKeywordRepoFindCandidates(t *testing.T) {
	db := newTestDB(t)
	repo := NewKeywordRepository(db)
	ctx := context.Background()

	seedKeyword(t, db, &model.Keyword{Keyword: "Wireless Earbuds", SearchVolume: 500, UploadPeriod: "2026-07", Category: catPtr("Electronics")})
	seedKeyword(t, db, &model.Keyword{Keyword: "wireless charger", SearchVolume: 300, UploadPeriod: "2026-07", Category: catPtr("Electronics")})
	seedKeyword(t, db, &model.Keyword{Keyword: "yoga mat", SearchVolume: 800, UploadPeriod: "2026-07", Category: catPtr("Sports")})
	seedKeyword(t, db, &model.Keyword{Keyword: "wireless mouse", SearchVolume: 100, UploadPeriod: "2026-06"})
	seedKeyword(t, db, &model.Keyword{Keyword: "wireless hpk", SearchVolume: 900, UploadPeriod: "2026-07", IsHpk: true})

	t.Run("should match query case-insensitively as substring", func(t *testing.T) {
		rows, err := repo.FindCandidates(ctx, KeywordFilter{Query: "WIRELESS", UploadPeriod: "2026-07"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("should keep keyword types exclusive", func(t *testing.T) {
		rows, err := repo.FindCandidates(ctx, KeywordFilter{IsHpk: true})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "wireless hpk", rows[0].Keyword)

		rows, err = repo.FindCandidates(ctx, KeywordFilter{UploadPeriod: "2026-07"})
		require.NoError(t, err)
		for _, row := range rows {
			assert.False(t, row.IsHpk)
			assert.False(t, row.IsRk)
		}
	})

	t.Run("should filter by category", func(t *testing.T) {
		rows, err := repo.FindCandidates(ctx, KeywordFilter{Category: "Sports"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "yoga mat", rows[0].Keyword)
	})

	t.Run("should exclude soft-deleted rows", func(t *testing.T) {
		row := seedKeyword(t, db, &model.Keyword{Keyword: "gone", SearchVolume: 1, UploadPeriod: "2026-07"})
		require.NoError(t, repo.Deactivate(ctx, row.ID))

		rows, err := repo.FindCandidates(ctx, KeywordFilter{Query: "gone"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestKeywordRepoCountDistinct(t *testing.T) {
	db := newTestDB(t)
	repo := NewKeywordRepository(db)
	ctx := context.Background()

	// 同一关键词两行，去重计数只算一次
	seedKeyword(t, db, &model.Keyword{Keyword: "usb hub", SearchVolume: 100, UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "usb hub", SearchVolume: 200, UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "hdmi cable", SearchVolume: 50, UploadPeriod: "2026-07"})

	count, err := repo.CountDistinct(ctx, KeywordFilter{UploadPeriod: "2026-07"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestKeywordRepoDeactivatePartition(t *testing.T) {
	db := newTestDB(t)
	repo := NewKeywordRepository(db)
	ctx := context.Background()

	seedKeyword(t, db, &model.Keyword{Keyword: "a", UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "b", UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "c", UploadPeriod: "2026-07", IsHpk: true})
	seedKeyword(t, db, &model.Keyword{Keyword: "d", UploadPeriod: "2026-06"})

	t.Run("should only touch the matching period and type", func(t *testing.T) {
		affected, err := repo.DeactivatePartition(ctx, "2026-07", false, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)

		rows, err := repo.FindCandidates(ctx, KeywordFilter{IsHpk: true})
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		rows, err = repo.FindCandidates(ctx, KeywordFilter{UploadPeriod: "2026-06"})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		affected, err := repo.DeactivatePartition(ctx, "2026-07", false, false)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestKeywordRepoListActivePeriods(t *testing.T) {
	db := newTestDB(t)
	repo := NewKeywordRepository(db)
	ctx := context.Background()

	seedKeyword(t, db, &model.Keyword{Keyword: "a", UploadPeriod: "2026-06"})
	seedKeyword(t, db, &model.Keyword{Keyword: "a", UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "a", UploadPeriod: "2026-07"})
	seedKeyword(t, db, &model.Keyword{Keyword: "b", UploadPeriod: "2026-07"})

	periods, err := repo.ListActivePeriods(ctx, false, false)
	require.NoError(t, err)
	require.Len(t, periods, 2)

	assert.Equal(t, "2026-07", periods[0].UploadPeriod)
	assert.Equal(t, int64(2), periods[0].DistinctKeywords)
	assert.Equal(t, "2026-06", periods[1].UploadPeriod)
	assert.Equal(t, int64(1), periods[1].DistinctKeywords)
}

func TestKeywordRepoUpdateScores(t *testing.T) {
	db := newTestDB(t)
	repo := NewKeywordRepository(db)
	ctx := context.Background()

	row := seedKeyword(t, db, &model.Keyword{Keyword: "usb hub", SearchVolume: 10, UploadPeriod: "2026-07"})

	err := repo.UpdateScores(ctx, row.ID, map[string]interface{}{
		"search_volume": int64(999),
		"ctr_score":     "7.5",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(999), got.SearchVolume)
	require.NotNil(t, got.CtrScore)
	assert.Equal(t, "7.5", *got.CtrScore)
}
