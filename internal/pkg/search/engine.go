// Package search 实现关键词读路径的去重、排序与分页
//
// 入参是存储层给出的候选行切片，整个包没有任何副作用，
// 去重、排序、计数共用同一套规则，保证分页总数与类目计数永远一致。
package search

import (
	"sort"

	"SellerLens/internal/model"
)

// Dedup 按 keyword 文本去重，保留 search_volume 最高的一行
//
// 并列时先比 keyword 再比行 ID，保证任意输入顺序下结果确定。
// 返回的切片按 keyword 升序，后续排序在此基础上进行。
func Dedup(rows []*model.Keyword) []*model.Keyword {
	if len(rows) == 0 {
		return []*model.Keyword{}
	}

	best := make(map[string]*model.Keyword, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		cur, ok := best[row.Keyword]
		if !ok {
			best[row.Keyword] = row
			order = append(order, row.Keyword)
			continue
		}
		if row.SearchVolume > cur.SearchVolume ||
			(row.SearchVolume == cur.SearchVolume && row.ID < cur.ID) {
			best[row.Keyword] = row
		}
	}

	sort.Strings(order)

	result := make([]*model.Keyword, 0, len(order))
	for _, kw := range order {
		result = append(result, best[kw])
	}
	return result
}

// Paginate 在去重排序后的结果上做 1 基页码的偏移分页
func Paginate(rows []*model.Keyword, page, pageSize int) []*model.Keyword {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	offset := (page - 1) * pageSize
	if offset >= len(rows) {
		return []*model.Keyword{}
	}
	end := offset + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// ClampPageSize 页大小兜底
func ClampPageSize(pageSize int) int {
	if pageSize < 1 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}
