package service

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/model"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/pkg/minio"
	"SellerLens/internal/pkg/period"
	"SellerLens/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const partitionLockTTL = 5 * time.Minute

type UploadService interface {
	// ReplacePeriod 原子替换一个 (周期, 类型) 分区：旧代整体下线后分块写入新代
	ReplacePeriod(ctx context.Context, keywordType string, uploadPeriod string, req *dto.ReplacePeriodDTO, uploadedBy uint64) (*dto.UploadResultDTO, error)
	// DeletePeriod 软删一个分区，重复删除幂等，返回影响行数
	DeletePeriod(ctx context.Context, keywordType string, uploadPeriod string) (int64, error)
	// ListPeriods 三种类型的活跃周期合并清单
	ListPeriods(ctx context.Context) ([]*dto.PeriodCountDTO, error)
	// ListPeriodOptions 某类型下可选周期，带展示标签
	ListPeriodOptions(ctx context.Context, keywordType string) ([]*dto.PeriodOptionDTO, error)
	ListUploadFiles(ctx context.Context, page, pageSize int) ([]*dto.UploadFileDTO, int64, error)
}

type uploadServiceImpl struct {
	keywordRepo     repository.KeywordRepo
	categoryRepo    repository.CategoryRepo
	uploadFileRepo  repository.UploadFileRepo
	locker          PartitionLocker
	categoryService CategoryService
}

func NewUploadService(
	keywordRepo repository.KeywordRepo,
	categoryRepo repository.CategoryRepo,
	uploadFileRepo repository.UploadFileRepo,
	locker PartitionLocker,
	categoryService CategoryService,
) UploadService {
	return &uploadServiceImpl{
		keywordRepo:     keywordRepo,
		categoryRepo:    categoryRepo,
		uploadFileRepo:  uploadFileRepo,
		locker:          locker,
		categoryService: categoryService,
	}
}

func (s *uploadServiceImpl) ReplacePeriod(ctx context.Context, keywordType string, uploadPeriod string, req *dto.ReplacePeriodDTO, uploadedBy uint64) (*dto.UploadResultDTO, error) {
	isHpk, isRk, ok := model.FlagsForType(keywordType)
	if !ok {
		return nil, ErrUnknownKeywordType
	}
	uploadPeriod = strings.TrimSpace(uploadPeriod)
	if uploadPeriod == "" {
		return nil, ErrParamInvalid
	}

	lockKey := consts.UploadPartitionLock + keywordType + ":" + uploadPeriod
	token := uuid.NewString()
	locked, err := s.locker.TryLock(ctx, lockKey, token, partitionLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrUploadInProgress
	}
	defer s.locker.Unlock(ctx, lockKey, token)

	replaced, err := s.keywordRepo.DeactivatePartition(ctx, uploadPeriod, isHpk, isRk)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "partition generation replaced",
		"type", keywordType, "period", uploadPeriod, "deactivated", replaced)

	startDate, endDate := period.Key(uploadPeriod).Window()

	var (
		rowErrors  []*dto.IngestRowErrorDTO
		pending    []*model.Keyword
		pendingIdx []int
		inserted   int
		// 请求内类目名到旧版 ID 的缓存，避免每行都打一次库
		categoryIDs = make(map[string]*uint64)
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		if err := s.keywordRepo.InsertChunk(ctx, pending); err != nil {
			log.ErrorContext(ctx, "insert chunk failed",
				"type", keywordType, "period", uploadPeriod, "chunk_start", pendingIdx[0], "err", err)
			for i, row := range pending {
				rowErrors = append(rowErrors, &dto.IngestRowErrorDTO{
					RowIndex: pendingIdx[i],
					Keyword:  row.Keyword,
					Reason:   "数据库写入失败",
				})
			}
		} else {
			inserted += len(pending)
		}
		pending = pending[:0]
		pendingIdx = pendingIdx[:0]
	}

	for idx, raw := range req.Rows {
		row, reason := s.buildRow(ctx, raw, uploadPeriod, isHpk, isRk, startDate, endDate, categoryIDs)
		if reason != "" {
			rowErrors = append(rowErrors, &dto.IngestRowErrorDTO{
				RowIndex: idx,
				Keyword:  strings.TrimSpace(raw.Keyword),
				Reason:   reason,
			})
			continue
		}
		pending = append(pending, row)
		pendingIdx = append(pendingIdx, idx)
		if len(pending) >= consts.InsertChunkSize {
			flush()
		}
	}
	flush()

	objectKey := s.archiveBatch(ctx, keywordType, uploadPeriod, req)

	file := &model.UploadFile{
		UploadPeriod: uploadPeriod,
		KeywordType:  keywordType,
		ObjectKey:    objectKey,
		RowCount:     inserted,
		ErrorCount:   len(rowErrors),
		UploadedBy:   uploadedBy,
	}
	if err := s.uploadFileRepo.Create(ctx, file); err != nil {
		log.WarnContext(ctx, "record upload file failed", "err", err)
	}

	s.categoryService.BumpTreeVersion(ctx)

	return &dto.UploadResultDTO{
		Inserted: inserted,
		Errors:   rowErrors,
	}, nil
}

// buildRow 校验并组装一行，reason 非空表示该行被跳过
func (s *uploadServiceImpl) buildRow(
	ctx context.Context,
	raw *dto.UploadRowDTO,
	uploadPeriod string,
	isHpk, isRk bool,
	startDate, endDate *time.Time,
	categoryIDs map[string]*uint64,
) (*model.Keyword, string) {
	keyword := strings.TrimSpace(raw.Keyword)
	if keyword == "" {
		return nil, "关键词为空"
	}

	category := trimPtr(raw.Category)
	subCategory1 := trimPtr(raw.SubCategory1)
	subCategory2 := trimPtr(raw.SubCategory2)
	if subCategory2 != nil && subCategory1 == nil {
		return nil, "三级类目缺少二级类目"
	}
	if subCategory1 != nil && category == nil {
		return nil, "二级类目缺少一级类目"
	}

	row := &model.Keyword{
		Keyword:           keyword,
		SearchVolume:      raw.SearchVolume,
		AvailableProducts: raw.AvailableProducts,
		Rank:              raw.Rank,
		Category:          category,
		SubCategory1:      subCategory1,
		SubCategory2:      subCategory2,
		UploadPeriod:      uploadPeriod,
		IsHpk:             isHpk,
		IsRk:              isRk,
		IsActive:          true,
		StartDate:         startDate,
		EndDate:           endDate,
	}

	for name, pair := range map[string]struct {
		src *string
		dst **string
	}{
		"product_click_score": {raw.ProductClickScore, &row.ProductClickScore},
		"sku_sales_score":     {raw.SkuSalesScore, &row.SkuSalesScore},
		"ctr_score":           {raw.CtrScore, &row.CtrScore},
		"ctor_score":          {raw.CtorScore, &row.CtorScore},
		"average_price":       {raw.AveragePrice, &row.AveragePrice},
	} {
		if pair.src == nil {
			continue
		}
		value := strings.TrimSpace(*pair.src)
		if value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, "评分字段不是数值: " + name
		}
		*pair.dst = &value
	}

	if category != nil {
		row.CategoryID = s.resolveCategoryID(ctx, *category, categoryIDs)
	}
	return row, ""
}

// resolveCategoryID 旧版类目外键是尽力而为的，失败只降级不整行报错
func (s *uploadServiceImpl) resolveCategoryID(ctx context.Context, name string, cache map[string]*uint64) *uint64 {
	if id, ok := cache[name]; ok {
		return id
	}
	category, err := s.categoryRepo.GetOrCreate(ctx, name)
	if err != nil {
		log.WarnContext(ctx, "resolve legacy category failed", "name", name, "err", err)
		cache[name] = nil
		return nil
	}
	cache[name] = &category.ID
	return &category.ID
}

// archiveBatch 归档原始批次，对象存储不可用时跳过
func (s *uploadServiceImpl) archiveBatch(ctx context.Context, keywordType string, uploadPeriod string, req *dto.ReplacePeriodDTO) string {
	if !minio.Ready() {
		return ""
	}
	payload, err := json.Marshal(req.Rows)
	if err != nil {
		log.WarnContext(ctx, "marshal upload batch failed", "err", err)
		return ""
	}
	objectName := fmt.Sprintf("uploads/%s/%s-%d.json", keywordType, uploadPeriod, time.Now().Unix())
	key, err := minio.UploadJSON(ctx, objectName, payload)
	if err != nil {
		log.WarnContext(ctx, "archive upload batch failed", "object", objectName, "err", err)
		return ""
	}
	return key
}

func (s *uploadServiceImpl) DeletePeriod(ctx context.Context, keywordType string, uploadPeriod string) (int64, error) {
	isHpk, isRk, ok := model.FlagsForType(keywordType)
	if !ok {
		return 0, ErrUnknownKeywordType
	}
	uploadPeriod = strings.TrimSpace(uploadPeriod)
	if uploadPeriod == "" {
		return 0, ErrParamInvalid
	}

	removed, err := s.keywordRepo.DeactivatePartition(ctx, uploadPeriod, isHpk, isRk)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.categoryService.BumpTreeVersion(ctx)
	}
	return removed, nil
}

func (s *uploadServiceImpl) ListPeriods(ctx context.Context) ([]*dto.PeriodCountDTO, error) {
	types := []string{consts.KeywordTypeRegular, consts.KeywordTypeHpk, consts.KeywordTypeRk}

	var merged []*dto.PeriodCountDTO
	for _, keywordType := range types {
		isHpk, isRk, _ := model.FlagsForType(keywordType)
		counts, err := s.keywordRepo.ListActivePeriods(ctx, isHpk, isRk)
		if err != nil {
			return nil, err
		}
		for _, c := range counts {
			merged = append(merged, &dto.PeriodCountDTO{
				Period:               c.UploadPeriod,
				DistinctKeywordCount: c.DistinctKeywords,
				Type:                 keywordType,
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Period != merged[j].Period {
			return merged[i].Period > merged[j].Period
		}
		return merged[i].Type < merged[j].Type
	})
	return merged, nil
}

func (s *uploadServiceImpl) ListPeriodOptions(ctx context.Context, keywordType string) ([]*dto.PeriodOptionDTO, error) {
	isHpk, isRk, ok := model.FlagsForType(keywordType)
	if !ok {
		return nil, ErrUnknownKeywordType
	}
	counts, err := s.keywordRepo.ListActivePeriods(ctx, isHpk, isRk)
	if err != nil {
		return nil, err
	}
	options := make([]*dto.PeriodOptionDTO, 0, len(counts))
	for _, c := range counts {
		options = append(options, &dto.PeriodOptionDTO{
			Value: c.UploadPeriod,
			Label: period.Key(c.UploadPeriod).Label(),
		})
	}
	return options, nil
}

func (s *uploadServiceImpl) ListUploadFiles(ctx context.Context, page, pageSize int) ([]*dto.UploadFileDTO, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	files, total, err := s.uploadFileRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]*dto.UploadFileDTO, 0, len(files))
	for _, f := range files {
		rows = append(rows, &dto.UploadFileDTO{
			ID:           f.ID,
			UploadPeriod: f.UploadPeriod,
			KeywordType:  f.KeywordType,
			ObjectKey:    f.ObjectKey,
			RowCount:     f.RowCount,
			ErrorCount:   f.ErrorCount,
			UploadedBy:   f.UploadedBy,
			CreatedAt:    f.CreatedAt.Format(time.DateTime),
		})
	}
	return rows, total, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
