package search

import (
	"sort"
	"strconv"
	"strings"

	"SellerLens/internal/model"
	"SellerLens/internal/pkg/consts"
)

// Field 可排序字段
type Field string

const (
	FieldKeyword           Field = "keyword"
	FieldRank              Field = "rank"
	FieldSearchVolume      Field = "searchVolume"
	FieldProductClickScore Field = "productClickScore"
	FieldSkuSalesScore     Field = "skuSalesScore"
	FieldAvailableProducts Field = "availableProducts"
	FieldAveragePrice      Field = "averagePrice"
	FieldCtrScore          Field = "ctrScore"
	FieldCtorScore         Field = "ctorScore"
)

var validFields = map[Field]bool{
	FieldKeyword:           true,
	FieldRank:              true,
	FieldSearchVolume:      true,
	FieldProductClickScore: true,
	FieldSkuSalesScore:     true,
	FieldAvailableProducts: true,
	FieldAveragePrice:      true,
	FieldCtrScore:          true,
	FieldCtorScore:         true,
}

// SortKey 单个排序条件
type SortKey struct {
	Field Field
	Desc  bool
}

// ParseSortSpec 解析 "field:dir,field:dir" 形式的排序参数
//
// 无法识别的字段按安全默认处理直接跳过，全部无效时返回空切片，
// 由调用方落回指标默认排序，排序参数永远不会导致请求失败。
func ParseSortSpec(raw string) []SortKey {
	if raw == "" {
		return nil
	}

	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		f := Field(strings.TrimSpace(field))
		if !validFields[f] {
			continue
		}
		keys = append(keys, SortKey{
			Field: f,
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	return keys
}

// DefaultSort 指标相关的默认排序：每种关键词类型关注的信号不同
func DefaultSort(metric string) []SortKey {
	switch metric {
	case consts.SearchMetricHighPotential:
		return []SortKey{{Field: FieldSkuSalesScore, Desc: true}}
	case consts.SearchMetricRising:
		return []SortKey{{Field: FieldCtrScore, Desc: true}}
	default:
		return []SortKey{{Field: FieldSearchVolume, Desc: true}}
	}
}

// Sort 按排序条件稳定排序，文本存储的数值按数值比较，空值无论方向都排最后
//
// 所有条件相等时退回 keyword 升序加行 ID 升序，保证同一过滤条件下
// 相邻两页之间不会出现行的随机换位。
func Sort(rows []*model.Keyword, keys []SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		for _, key := range keys {
			aNull, bNull := isNull(a, key.Field), isNull(b, key.Field)
			if aNull != bNull {
				// 空值不参与方向翻转，升降序都排在最后
				return bNull
			}
			if aNull {
				continue
			}
			cmp := compareByField(a, b, key.Field)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		if a.Keyword != b.Keyword {
			return a.Keyword < b.Keyword
		}
		return a.ID < b.ID
	})
}

// isNull 判断该字段在排序语义下是否为空，无法解析的文本数值同样算空
func isNull(row *model.Keyword, field Field) bool {
	switch field {
	case FieldRank:
		return row.Rank == nil
	case FieldProductClickScore:
		_, ok := parseNumeric(row.ProductClickScore)
		return !ok
	case FieldSkuSalesScore:
		_, ok := parseNumeric(row.SkuSalesScore)
		return !ok
	case FieldAveragePrice:
		_, ok := parseNumeric(row.AveragePrice)
		return !ok
	case FieldCtrScore:
		_, ok := parseNumeric(row.CtrScore)
		return !ok
	case FieldCtorScore:
		_, ok := parseNumeric(row.CtorScore)
		return !ok
	}
	return false
}

// compareByField 返回 -1/0/1，调用前已排除空值
func compareByField(a, b *model.Keyword, field Field) int {
	switch field {
	case FieldKeyword:
		return strings.Compare(a.Keyword, b.Keyword)
	case FieldSearchVolume:
		return compareInt64(a.SearchVolume, b.SearchVolume)
	case FieldAvailableProducts:
		return compareInt64(a.AvailableProducts, b.AvailableProducts)
	case FieldRank:
		return compareNullableInt(a.Rank, b.Rank)
	case FieldProductClickScore:
		return compareNumericString(a.ProductClickScore, b.ProductClickScore)
	case FieldSkuSalesScore:
		return compareNumericString(a.SkuSalesScore, b.SkuSalesScore)
	case FieldAveragePrice:
		return compareNumericString(a.AveragePrice, b.AveragePrice)
	case FieldCtrScore:
		return compareNumericString(a.CtrScore, b.CtrScore)
	case FieldCtorScore:
		return compareNumericString(a.CtorScore, b.CtorScore)
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareNullableInt(a, b *int) int {
	return compareInt64(int64(*a), int64(*b))
}

// compareNumericString 文本数值比较，不走字典序
func compareNumericString(a, b *string) int {
	av, _ := parseNumeric(a)
	bv, _ := parseNumeric(b)
	if av < bv {
		return -1
	}
	if av > bv {
		return 1
	}
	return 0
}

func parseNumeric(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
