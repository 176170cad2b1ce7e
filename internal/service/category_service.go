package service

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/model"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/pkg/redis"
	"SellerLens/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const categoryTreeTTL = 5 * time.Minute

type CategoryService interface {
	// GetCategoryTree 返回三级类目树，节点计数是该类目下去重关键词数
	GetCategoryTree(ctx context.Context, uploadPeriod string, metric string) (*dto.CategoryTreeDTO, error)
	// GetTypedCategories 按关键词类型返回一级类目列表
	GetTypedCategories(ctx context.Context, keywordType string) ([]*dto.CategoryNodeDTO, error)
	// BumpTreeVersion 上传或删除分区后让缓存失效
	BumpTreeVersion(ctx context.Context)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryServiceImpl) GetCategoryTree(ctx context.Context, uploadPeriod string, metric string) (*dto.CategoryTreeDTO, error) {
	cacheKey := s.treeCacheKey(ctx, uploadPeriod, metric)
	if cacheKey != "" {
		if cached, _ := redis.GetValue(ctx, cacheKey); cached != "" {
			var tree dto.CategoryTreeDTO
			if err := json.Unmarshal([]byte(cached), &tree); err == nil {
				return &tree, nil
			}
		}
	}

	isHpk, isRk := model.FlagsForMetric(metric)
	filter := repository.CategoryFilter{
		UploadPeriod: uploadPeriod,
		IsHpk:        isHpk,
		IsRk:         isRk,
	}

	tree, err := s.buildTree(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if raw, err := json.Marshal(tree); err == nil {
			if err := redis.SetWithExpiration(ctx, cacheKey, string(raw), categoryTreeTTL); err != nil {
				log.WarnContext(ctx, "cache category tree failed", "err", err)
			}
		}
	}
	return tree, nil
}

func (s *categoryServiceImpl) buildTree(ctx context.Context, filter repository.CategoryFilter) (*dto.CategoryTreeDTO, error) {
	level1, err := s.categoryRepo.CountByCategory(ctx, filter)
	if err != nil {
		return nil, err
	}
	level2, err := s.categoryRepo.CountBySubCategory1(ctx, filter)
	if err != nil {
		return nil, err
	}
	level3, err := s.categoryRepo.CountBySubCategory2(ctx, filter)
	if err != nil {
		return nil, err
	}

	nodes := make([]*dto.CategoryNodeDTO, 0, len(level1)+len(level2)+len(level3))
	sortLevel := func(rows []*repository.CategoryCount) {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].KeywordCount != rows[j].KeywordCount {
				return rows[i].KeywordCount > rows[j].KeywordCount
			}
			return pathOf(rows[i]) < pathOf(rows[j])
		})
	}

	sortLevel(level1)
	for _, row := range level1 {
		nodes = append(nodes, &dto.CategoryNodeDTO{
			ID:           row.Category,
			Name:         row.Category,
			KeywordCount: row.KeywordCount,
		})
	}

	sortLevel(level2)
	for _, row := range level2 {
		parentID := row.Category
		nodes = append(nodes, &dto.CategoryNodeDTO{
			ID:           row.Category + "::" + row.SubCategory1,
			Name:         row.SubCategory1,
			ParentID:     &parentID,
			KeywordCount: row.KeywordCount,
		})
	}

	sortLevel(level3)
	for _, row := range level3 {
		parentID := row.Category + "::" + row.SubCategory1
		nodes = append(nodes, &dto.CategoryNodeDTO{
			ID:           parentID + "::" + row.SubCategory2,
			Name:         row.SubCategory2,
			ParentID:     &parentID,
			KeywordCount: row.KeywordCount,
		})
	}

	return &dto.CategoryTreeDTO{Nodes: nodes}, nil
}

func pathOf(row *repository.CategoryCount) string {
	return row.Category + "::" + row.SubCategory1 + "::" + row.SubCategory2
}

func (s *categoryServiceImpl) GetTypedCategories(ctx context.Context, keywordType string) ([]*dto.CategoryNodeDTO, error) {
	isHpk, isRk, ok := model.FlagsForType(keywordType)
	if !ok {
		return nil, ErrUnknownKeywordType
	}
	level1, err := s.categoryRepo.CountByCategory(ctx, repository.CategoryFilter{
		IsHpk: isHpk,
		IsRk:  isRk,
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(level1, func(i, j int) bool {
		if level1[i].KeywordCount != level1[j].KeywordCount {
			return level1[i].KeywordCount > level1[j].KeywordCount
		}
		return level1[i].Category < level1[j].Category
	})
	nodes := make([]*dto.CategoryNodeDTO, 0, len(level1))
	for _, row := range level1 {
		nodes = append(nodes, &dto.CategoryNodeDTO{
			ID:           row.Category,
			Name:         row.Category,
			KeywordCount: row.KeywordCount,
		})
	}
	return nodes, nil
}

func (s *categoryServiceImpl) BumpTreeVersion(ctx context.Context) {
	if !redis.Ready() {
		return
	}
	if _, err := redis.Incr(ctx, consts.CategoryTreeVersionKey); err != nil {
		log.WarnContext(ctx, "bump category tree version failed", "err", err)
	}
}

// treeCacheKey 带版本号的缓存键，版本在写入后递增，旧键自然过期
func (s *categoryServiceImpl) treeCacheKey(ctx context.Context, uploadPeriod string, metric string) string {
	if !redis.Ready() {
		return ""
	}
	version, err := redis.GetValue(ctx, consts.CategoryTreeVersionKey)
	if err != nil {
		return ""
	}
	if version == "" {
		version = "0"
	}
	return fmt.Sprintf("%s%s:%s:%s", consts.CategoryTreeKey, version, uploadPeriod, metric)
}
