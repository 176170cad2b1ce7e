package llm

import (
	"context"
	"testing"

	"SellerLens/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeywordSource struct {
	lastCategory string
	lastMetric   string
	lastLimit    int
	rows         []*dto.KeywordDTO
}

func (s *fakeKeywordSource) TopKeywords(ctx context.Context, category string, metric string, limit int) ([]*dto.KeywordDTO, error) {
	s.lastCategory = category
	s.lastMetric = metric
	s.lastLimit = limit
	if limit < len(s.rows) {
		return s.rows[:limit], nil
	}
	return s.rows, nil
}

func strPtr(s string) *string { return &s }

func TestTopSearchKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("should render rows as a numbered list", func(t *testing.T) {
		source := &fakeKeywordSource{rows: []*dto.KeywordDTO{
			{Keyword: "wireless earbuds", SearchVolume: 5000, CtrScore: strPtr("8.2")},
			{Keyword: "phone case", SearchVolume: 3000, AveragePrice: strPtr("12.99")},
		}}
		handler := NewToolHandler(source)

		out, err := handler.TopSearchKeywords(ctx, `{"category":"Electronics","metric":"top","limit":10}`)
		require.NoError(t, err)

		assert.Equal(t, "Electronics", source.lastCategory)
		assert.Equal(t, "top", source.lastMetric)
		assert.Equal(t, 10, source.lastLimit)
		assert.Contains(t, out, "1. wireless earbuds (搜索量: 5000, 点击率评分: 8.2)")
		assert.Contains(t, out, "2. phone case (搜索量: 3000, 均价: 12.99)")
	})

	t.Run("should clamp limit to the default", func(t *testing.T) {
		source := &fakeKeywordSource{}
		handler := NewToolHandler(source)

		_, err := handler.TopSearchKeywords(ctx, `{"metric":"top","limit":999}`)
		require.NoError(t, err)
		assert.Equal(t, 20, source.lastLimit)

		_, err = handler.TopSearchKeywords(ctx, `{"metric":"top"}`)
		require.NoError(t, err)
		assert.Equal(t, 20, source.lastLimit)
	})

	t.Run("should describe empty result sets", func(t *testing.T) {
		handler := NewToolHandler(&fakeKeywordSource{})

		out, err := handler.TopSearchKeywords(ctx, `{"metric":"rising"}`)
		require.NoError(t, err)
		assert.Contains(t, out, "没有找到")
	})

	t.Run("should reject malformed arguments", func(t *testing.T) {
		handler := NewToolHandler(&fakeKeywordSource{})

		_, err := handler.TopSearchKeywords(ctx, `{not json`)
		assert.Error(t, err)
	})
}

func TestGetHandleFunction(t *testing.T) {
	handler := NewToolHandler(&fakeKeywordSource{})
	assert.NotNil(t, handler.GetHandleFunction("top_search_keywords"))
	assert.Nil(t, handler.GetHandleFunction("unknown_tool"))
}
