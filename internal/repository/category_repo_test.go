package repository

import (
	"context"
	"testing"

	"SellerLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCategorized(t *testing.T, db *gorm.DB, keyword, cat, sub1, sub2 string) {
	t.Helper()
	row := &model.Keyword{
		Keyword:      keyword,
		UploadPeriod: "2026-07",
		IsActive:     true,
		Category:     catPtr(cat),
	}
	if sub1 != "" {
		row.SubCategory1 = catPtr(sub1)
	}
	if sub2 != "" {
		row.SubCategory2 = catPtr(sub2)
	}
	require.NoError(t, db.Create(row).Error)
}

func TestCategoryRepoCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	filter := CategoryFilter{UploadPeriod: "2026-07"}

	// "usb hub" 在 Electronics 下重复两行，各级都只计一次
	seedCategorized(t, db, "usb hub", "Electronics", "Accessories", "Cables")
	seedCategorized(t, db, "usb hub", "Electronics", "Accessories", "Cables")
	seedCategorized(t, db, "hdmi cable", "Electronics", "Accessories", "")
	seedCategorized(t, db, "laptop stand", "Electronics", "", "")
	seedCategorized(t, db, "yoga mat", "Sports", "Fitness", "Mats")

	t.Run("should count distinct keywords per top category", func(t *testing.T) {
		rows, err := repo.CountByCategory(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		counts := map[string]int64{}
		for _, row := range rows {
			counts[row.Category] = row.KeywordCount
		}
		assert.Equal(t, int64(3), counts["Electronics"])
		assert.Equal(t, int64(1), counts["Sports"])
	})

	t.Run("should group second level within its parent", func(t *testing.T) {
		rows, err := repo.CountBySubCategory1(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		for _, row := range rows {
			assert.NotEmpty(t, row.Category)
			assert.NotEmpty(t, row.SubCategory1)
		}
	})

	t.Run("should only count complete paths at third level", func(t *testing.T) {
		rows, err := repo.CountBySubCategory2(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		for _, row := range rows {
			assert.NotEmpty(t, row.Category)
			assert.NotEmpty(t, row.SubCategory1)
			assert.NotEmpty(t, row.SubCategory2)
		}
	})

	t.Run("should exclude rows without category", func(t *testing.T) {
		require.NoError(t, db.Create(&model.Keyword{
			Keyword: "uncategorized", UploadPeriod: "2026-07", IsActive: true,
		}).Error)

		rows, err := repo.CountByCategory(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestCategoryRepoGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Electronics")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.GetOrCreate(ctx, "Electronics")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
