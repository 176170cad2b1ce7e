package service

import (
	"context"
	"testing"

	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) (CategoryService, KeywordService, UploadService) {
	t.Helper()
	db := newTestDB(t)
	keywordRepo := repository.NewKeywordRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	categoryService := NewCategoryService(categoryRepo)
	uploadService := NewUploadService(
		keywordRepo, categoryRepo,
		repository.NewUploadFileRepository(db),
		NewLocalPartitionLocker(),
		categoryService,
	)
	return categoryService, NewKeywordService(keywordRepo), uploadService
}

func treeRow(keyword, cat, sub1, sub2 string, volume int64) *dto.UploadRowDTO {
	row := &dto.UploadRowDTO{Keyword: keyword, SearchVolume: volume}
	if cat != "" {
		row.Category = &cat
	}
	if sub1 != "" {
		row.SubCategory1 = &sub1
	}
	if sub2 != "" {
		row.SubCategory2 = &sub2
	}
	return row
}

func TestGetCategoryTree(t *testing.T) {
	ctx := context.Background()

	t.Run("should build a well-formed three level tree", func(t *testing.T) {
		categorySvc, _, uploadSvc := setupTree(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				treeRow("usb hub", "Electronics", "Accessories", "Cables", 100),
				treeRow("hdmi cable", "Electronics", "Accessories", "Cables", 200),
				treeRow("laptop stand", "Electronics", "Desks", "", 50),
				treeRow("yoga mat", "Sports", "", "", 300),
			},
		}, 1)
		require.NoError(t, err)

		tree, err := categorySvc.GetCategoryTree(ctx, "2026-07", consts.SearchMetricTop)
		require.NoError(t, err)

		byID := make(map[string]*dto.CategoryNodeDTO)
		for _, node := range tree.Nodes {
			byID[node.ID] = node
		}

		// 每个非根节点的父节点必须存在
		for _, node := range tree.Nodes {
			if node.ParentID == nil {
				continue
			}
			_, ok := byID[*node.ParentID]
			assert.Truef(t, ok, "node %s has missing parent %s", node.ID, *node.ParentID)
		}

		require.Contains(t, byID, "Electronics")
		require.Contains(t, byID, "Electronics::Accessories")
		require.Contains(t, byID, "Electronics::Accessories::Cables")
		assert.Equal(t, int64(3), byID["Electronics"].KeywordCount)
		assert.Equal(t, int64(2), byID["Electronics::Accessories"].KeywordCount)
		assert.Equal(t, int64(2), byID["Electronics::Accessories::Cables"].KeywordCount)
		assert.Equal(t, int64(1), byID["Sports"].KeywordCount)
	})

	t.Run("should agree with search totals per category", func(t *testing.T) {
		categorySvc, keywordSvc, uploadSvc := setupTree(t)

		// 同一关键词重复出现，树计数和搜索总数都只算一次
		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				treeRow("usb hub", "Electronics", "", "", 100),
				treeRow("usb hub", "Electronics", "", "", 900),
				treeRow("hdmi cable", "Electronics", "", "", 200),
			},
		}, 1)
		require.NoError(t, err)

		tree, err := categorySvc.GetCategoryTree(ctx, "2026-07", consts.SearchMetricTop)
		require.NoError(t, err)
		require.NotEmpty(t, tree.Nodes)
		assert.Equal(t, int64(2), tree.Nodes[0].KeywordCount)

		page, err := keywordSvc.SearchKeywords(ctx, &dto.KeywordSearchDTO{
			Category: "Electronics", UploadPeriod: "2026-07", Page: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, tree.Nodes[0].KeywordCount, page.Total)
	})

	t.Run("should order siblings by count then path", func(t *testing.T) {
		categorySvc, _, uploadSvc := setupTree(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRegular, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{
				treeRow("a", "Small", "", "", 1),
				treeRow("b", "Big", "", "", 1),
				treeRow("c", "Big", "", "", 1),
				treeRow("d", "Also Small", "", "", 1),
			},
		}, 1)
		require.NoError(t, err)

		tree, err := categorySvc.GetCategoryTree(ctx, "2026-07", consts.SearchMetricTop)
		require.NoError(t, err)
		require.Len(t, tree.Nodes, 3)

		assert.Equal(t, "Big", tree.Nodes[0].Name)
		// 计数并列时按路径字典序
		assert.Equal(t, "Also Small", tree.Nodes[1].Name)
		assert.Equal(t, "Small", tree.Nodes[2].Name)
	})

	t.Run("should scope the tree by metric type", func(t *testing.T) {
		categorySvc, _, uploadSvc := setupTree(t)

		_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeHpk, "2026-07", &dto.ReplacePeriodDTO{
			Rows: []*dto.UploadRowDTO{treeRow("hpk kw", "HpkOnly", "", "", 1)},
		}, 1)
		require.NoError(t, err)

		tree, err := categorySvc.GetCategoryTree(ctx, "2026-07", consts.SearchMetricTop)
		require.NoError(t, err)
		assert.Empty(t, tree.Nodes)

		tree, err = categorySvc.GetCategoryTree(ctx, "2026-07", consts.SearchMetricHighPotential)
		require.NoError(t, err)
		require.Len(t, tree.Nodes, 1)
		assert.Equal(t, "HpkOnly", tree.Nodes[0].Name)
	})
}

func TestGetTypedCategories(t *testing.T) {
	ctx := context.Background()
	categorySvc, _, uploadSvc := setupTree(t)

	_, err := uploadSvc.ReplacePeriod(ctx, consts.KeywordTypeRk, "RK-202607", &dto.ReplacePeriodDTO{
		Rows: []*dto.UploadRowDTO{
			treeRow("rising one", "Gadgets", "Widgets", "", 1),
			treeRow("rising two", "Gadgets", "", "", 1),
		},
	}, 1)
	require.NoError(t, err)

	nodes, err := categorySvc.GetTypedCategories(ctx, consts.KeywordTypeRk)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Gadgets", nodes[0].Name)
	assert.Equal(t, int64(2), nodes[0].KeywordCount)
	assert.Nil(t, nodes[0].ParentID)

	_, err = categorySvc.GetTypedCategories(ctx, "weird")
	assert.ErrorIs(t, err, ErrUnknownKeywordType)
}
