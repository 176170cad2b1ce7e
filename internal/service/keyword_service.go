package service

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/model"
	"SellerLens/internal/pkg/search"
	"SellerLens/internal/repository"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type KeywordService interface {
	// SearchKeywords 去重搜索，Total 是过滤条件下去重关键词总数
	SearchKeywords(ctx context.Context, query *dto.KeywordSearchDTO) (*dto.KeywordPageDTO, error)
	// TopKeywords 给文案优化器取某类目下头部关键词
	TopKeywords(ctx context.Context, category string, metric string, limit int) ([]*dto.KeywordDTO, error)
	UpdateScores(ctx context.Context, id uint64, scores *dto.KeywordScoresDTO) error
	DeactivateKeyword(ctx context.Context, id uint64) error
}

type keywordServiceImpl struct {
	keywordRepo repository.KeywordRepo
}

func NewKeywordService(keywordRepo repository.KeywordRepo) KeywordService {
	return &keywordServiceImpl{
		keywordRepo: keywordRepo,
	}
}

func (s *keywordServiceImpl) SearchKeywords(ctx context.Context, query *dto.KeywordSearchDTO) (*dto.KeywordPageDTO, error) {
	isHpk, isRk := model.FlagsForMetric(query.Metric)
	filter := repository.KeywordFilter{
		Query:        query.Query,
		Category:     query.Category,
		SubCategory1: query.SubCategory1,
		SubCategory2: query.SubCategory2,
		UploadPeriod: query.UploadPeriod,
		IsHpk:        isHpk,
		IsRk:         isRk,
	}

	candidates, err := s.keywordRepo.FindCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	deduped := search.Dedup(candidates)

	// 无效的排序字段被跳过，全部无效时落回指标默认排序
	keys := search.ParseSortSpec(query.Sort)
	if len(keys) == 0 {
		keys = search.DefaultSort(query.Metric)
	}
	search.Sort(deduped, keys)

	total := int64(len(deduped))
	pageRows := search.Paginate(deduped, query.Page, search.ClampPageSize(query.PageSize))

	rows := make([]*dto.KeywordDTO, 0, len(pageRows))
	for _, row := range pageRows {
		var item dto.KeywordDTO
		if err := copier.Copy(&item, row); err != nil {
			return nil, err
		}
		rows = append(rows, &item)
	}

	return &dto.KeywordPageDTO{
		Rows:  rows,
		Total: total,
	}, nil
}

func (s *keywordServiceImpl) TopKeywords(ctx context.Context, category string, metric string, limit int) ([]*dto.KeywordDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	page := &dto.KeywordSearchDTO{
		Category: category,
		Metric:   metric,
		Page:     1,
		PageSize: limit,
	}
	result, err := s.SearchKeywords(ctx, page)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

func (s *keywordServiceImpl) UpdateScores(ctx context.Context, id uint64, scores *dto.KeywordScoresDTO) error {
	if _, err := s.keywordRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeywordNotFound
		}
		return err
	}

	updates := make(map[string]interface{})
	if scores.SearchVolume != nil {
		updates["search_volume"] = *scores.SearchVolume
	}
	if scores.AvailableProducts != nil {
		updates["available_products"] = *scores.AvailableProducts
	}
	for column, value := range map[string]*string{
		"product_click_score": scores.ProductClickScore,
		"sku_sales_score":     scores.SkuSalesScore,
		"ctr_score":           scores.CtrScore,
		"ctor_score":          scores.CtorScore,
		"average_price":       scores.AveragePrice,
	} {
		if value == nil {
			continue
		}
		if !validNumericString(*value) {
			return ErrParamInvalid
		}
		updates[column] = strings.TrimSpace(*value)
	}

	if len(updates) == 0 {
		return nil
	}
	return s.keywordRepo.UpdateScores(ctx, id, updates)
}

func (s *keywordServiceImpl) DeactivateKeyword(ctx context.Context, id uint64) error {
	if _, err := s.keywordRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeywordNotFound
		}
		return err
	}
	return s.keywordRepo.Deactivate(ctx, id)
}

func validNumericString(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
