package llm

import (
	"SellerLens/internal/api/dto"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
)

// HandleFunction 工具处理器函数签名
type HandleFunction func(context.Context, string) (string, error)

// KeywordSource 关键词榜单数据源，由搜索服务实现
type KeywordSource interface {
	TopKeywords(ctx context.Context, category string, metric string, limit int) ([]*dto.KeywordDTO, error)
}

// ToolHandler 工具处理器
type ToolHandler struct {
	keywords KeywordSource
}

func NewToolHandler(keywords KeywordSource) *ToolHandler {
	return &ToolHandler{
		keywords: keywords,
	}
}

// GetHandleFunction 返回绑定了当前实例的工具映射表
func (s *ToolHandler) GetHandleFunction(funcName string) HandleFunction {
	return map[string]HandleFunction{
		"top_search_keywords": s.TopSearchKeywords,
	}[funcName]
}

// TopSearchKeywords 查询类目下头部关键词并整理为模型可读文本
func (s *ToolHandler) TopSearchKeywords(ctx context.Context, argsJson string) (string, error) {
	var args struct {
		Category string `json:"category"`
		Metric   string `json:"metric"`
		Limit    int    `json:"limit"`
	}
	if err := json.Unmarshal([]byte(argsJson), &args); err != nil {
		log.ErrorContext(ctx, "TopSearchKeywords", "error", err)
		return "", errors.New("参数解析失败")
	}

	if args.Limit <= 0 || args.Limit > 50 {
		args.Limit = 20
	}

	rows, err := s.keywords.TopKeywords(ctx, args.Category, args.Metric, args.Limit)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "该类目下没有找到任何关键词数据。", nil
	}

	var builder strings.Builder
	builder.WriteString("以下是该类目下的头部搜索关键词：\n\n")
	for i, row := range rows {
		builder.WriteString(fmt.Sprintf("%d. %s (搜索量: %d", i+1, row.Keyword, row.SearchVolume))
		if row.SkuSalesScore != nil {
			builder.WriteString(", 转化评分: " + *row.SkuSalesScore)
		}
		if row.CtrScore != nil {
			builder.WriteString(", 点击率评分: " + *row.CtrScore)
		}
		if row.AveragePrice != nil {
			builder.WriteString(", 均价: " + *row.AveragePrice)
		}
		builder.WriteString(")\n")
	}

	log.InfoContext(ctx, "TopSearchKeywords", "category", args.Category, "metric", args.Metric, "count", len(rows))
	return builder.String(), nil
}
