package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"SellerLens/internal/api/dto"
	"SellerLens/internal/model"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUploadService(t *testing.T) (UploadService, KeywordService, CategoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	keywordRepo := repository.NewKeywordRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	categoryService := NewCategoryService(categoryRepo)
	uploadService := NewUploadService(
		keywordRepo,
		categoryRepo,
		repository.NewUploadFileRepository(db),
		NewLocalPartitionLocker(),
		categoryService,
	)
	return uploadService, NewKeywordService(keywordRepo), categoryService, db
}

func uploadRow(keyword string, volume int64, category string) *dto.UploadRowDTO {
	row := &dto.UploadRowDTO{Keyword: keyword, SearchVolume: volume}
	if category != "" {
		row.Category = &category
	}
	return row
}

func TestReplacePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("should insert rows and make them searchable", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		result, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				uploadRow("wireless earbuds", 500, "Electronics"),
				uploadRow("phone case", 300, "Electronics"),
			},
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
		assert.Empty(t, result.Errors)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{UploadPeriod: "2026-07", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("should replace the previous generation wholesale", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("old keyword", 100, "")},
		}, 1)
		require.NoError(t, err)

		_, err = uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("new keyword", 200, "")},
		}, 1)
		require.NoError(t, err)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{UploadPeriod: "2026-07", Page: 1})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "new keyword", page.Rows[0].Keyword)
	})

	t.Run("should not touch other types of the same period", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeHpk, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("hpk keyword", 100, "")},
		}, 1)
		require.NoError(t, err)

		_, err = uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("regular keyword", 100, "")},
		}, 1)
		require.NoError(t, err)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{
			UploadPeriod: "2026-07", Metric: consts.SearchMetricHighPotential, Page: 1,
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "hpk keyword", page.Rows[0].Keyword)
	})

	t.Run("should report row errors with source indexes and keep good rows", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		sub2 := "Cables"
		badScore := "not-a-number"
		result, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				uploadRow("good one", 100, "Electronics"),
				uploadRow("   ", 50, ""),
				{Keyword: "orphan sub2", SubCategory2: &sub2},
				{Keyword: "bad score", CtrScore: &badScore},
				uploadRow("good two", 200, ""),
			},
		}, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Inserted)
		require.Len(t, result.Errors, 3)
		indexes := []int{result.Errors[0].RowIndex, result.Errors[1].RowIndex, result.Errors[2].RowIndex}
		assert.Equal(t, []int{1, 2, 3}, indexes)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{UploadPeriod: "2026-07", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("should stamp the period observation window", func(t *testing.T) {
		uploadSvc, _, _, db := newUploadService(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("a", 1, "")},
		}, 1)
		require.NoError(t, err)

		var row model.Keyword
		require.NoError(t, db.Where("keyword = ?", "a").First(&row).Error)
		require.NotNil(t, row.StartDate)
		require.NotNil(t, row.EndDate)
		assert.Equal(t, "2026-07-01", row.StartDate.Format(time.DateOnly))
		assert.Equal(t, "2026-07-31", row.EndDate.Format(time.DateOnly))
	})

	t.Run("should reject unknown keyword types", func(t *testing.T) {
		uploadSvc, _, _, _ := newUploadService(t)
		_, err := uploadSvc.ReplacePeriod(ctx, "weird", "2026-07", &dto.ReplacePeriodDTO{}, 1)
		assert.ErrorIs(t, err, ErrUnknownKeywordType)
	})

	t.Run("should reject blank periods", func(t *testing.T) {
		uploadSvc, _, _, _ := newUploadService(t)
		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "   ", &dto.ReplacePeriodDTO{}, 1)
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("should fail fast when the partition is locked", func(t *testing.T) {
		db := newTestDB(t)
		keywordRepo := repository.NewKeywordRepository(db)
		categoryRepo := repository.NewCategoryRepository(db)
		locker := NewLocalPartitionLocker()
		uploadSvc := NewUploadService(
			keywordRepo, categoryRepo,
			repository.NewUploadFileRepository(db),
			locker, NewCategoryService(categoryRepo),
		)

		key := consts.UploadPartitionLock + consts.KeywordTypeRegular + ":2026-07"
		held, err := locker.TryLock(ctx, key, "other-upload", 5*time.Minute)
		require.NoError(t, err)
		require.True(t, held)

		_, err = uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("a", 1, "")},
		}, 1)
		assert.ErrorIs(t, err, ErrUploadInProgress)

		// 其它分区不受影响
		_, err = uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-08", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("a", 1, "")},
		}, 1)
		assert.NoError(t, err)
	})

	t.Run("should record the upload in the file log", func(t *testing.T) {
		uploadSvc, _, _, _ := newUploadService(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRk, "RK-202607", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				uploadRow("rising keyword", 100, ""),
				uploadRow("", 0, ""),
			},
		}, 7)
		require.NoError(t, err)

		files, total, err := uploadSvc.ListUploadFiles(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, files, 1)
		assert.Equal(t, "RK-202607", files[0].UploadPeriod)
		assert.Equal(t, consts.KeywordTypeRk, files[0].KeywordType)
		assert.Equal(t, 1, files[0].RowCount)
		assert.Equal(t, 1, files[0].ErrorCount)
		assert.Equal(t, uint64(7), files[0].UploadedBy)
	})

	t.Run("should handle batches larger than one chunk", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		rows := make([]*dto.UploadRowDTO, 0, consts.InsertChunkSize+25)
		for i := 0; i < consts.InsertChunkSize+25; i++ {
			rows = append(rows, uploadRow(fmt.Sprintf("kw-%03d", i), int64(i), ""))
		}
		result, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{Rows: rows}, 1)
		require.NoError(t, err)
		assert.Equal(t, consts.InsertChunkSize+25, result.Inserted)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{UploadPeriod: "2026-07", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(consts.InsertChunkSize+25), page.Total)
	})
}

func TestDeletePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("should soft delete and stay idempotent", func(t *testing.T) {
		uploadSvc, keywordSvc, _, _ := newUploadService(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{uploadRow("a", 1, ""), uploadRow("b", 2, "")},
		}, 1)
		require.NoError(t, err)

		removed, err := uploadSvc.DeletePeriod(ctx, consts.KeywordTypeRegular, "2026-07")
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		removed, err = uploadSvc.DeletePeriod(ctx, consts.KeywordTypeRegular, "2026-07")
		require.NoError(t, err)
		assert.Equal(t, int64(0), removed)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{UploadPeriod: "2026-07", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
	})

	t.Run("should reject unknown keyword types", func(t *testing.T) {
		uploadSvc, _, _, _ := newUploadService(t)
		_, err := uploadSvc.DeletePeriod(ctx, "weird", "2026-07")
		assert.ErrorIs(t, err, ErrUnknownKeywordType)
	})
}

func TestListPeriods(t *testing.T) {
	ctx := context.Background()
	uploadSvc, _, _, _ := newUploadService(t)

	_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-06", &dto.ReplacePeriodDTO{
		Rows: []*dto.UploadRowDTO{uploadRow("a", 1, "")},
	}, 1)
	require.NoError(t, err)
	_, err = uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeHpk, "2026-07", &dto.ReplacePeriodDTO{
		Rows: []*dto.UploadRowDTO{uploadRow("a", 1, ""), uploadRow("b", 2, "")},
	}, 1)
	require.NoError(t, err)

	periods, err := uploadSvc.ListPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 2)

	// 周期降序
	assert.Equal(t, "2026-07", periods[0].Period)
	assert.Equal(t, consts.KeywordTypeHpk, periods[0].Type)
	assert.Equal(t, int64(2), periods[0].DistinctKeywordCount)
	assert.Equal(t, "2026-06", periods[1].Period)
}

func TestListPeriodOptions(t *testing.T) {
	ctx := context.Background()
	uploadSvc, _, _, _ := newUploadService(t)

	_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRk, "RK-202607", &dto.ReplacePeriodDTO{
		Rows: []*dto.UploadRowDTO{uploadRow("a", 1, "")},
	}, 1)
	require.NoError(t, err)

	options, err := uploadSvc.ListPeriodOptions(ctx, consts.KeywordTypeRk)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "RK-202607", options[0].Value)
	assert.Equal(t, "Rising July 2026", options[0].Label)

	_, err = uploadSvc.ListPeriodOptions(ctx, "weird")
	assert.ErrorIs(t, err, ErrUnknownKeywordType)
}
