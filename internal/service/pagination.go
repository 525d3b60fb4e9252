package service

import (
	"context"

	"pulse-go/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest 规范化后的分页参数
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest page<1 取 1，limit<1 取默认值，超过上限截断
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset 当前页之前的条数
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page 分页结果
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int64 `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewPage 根据总数计算页信息
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := (total + int64(req.Limit) - 1) / int64(req.Limit)
	return &Page[T]{
		Items:       items,
		Total:       total,
		Page:        req.Page,
		Limit:       req.Limit,
		TotalPages:  totalPages,
		HasNextPage: int64(req.Page) < totalPages,
		HasPrevPage: req.Page > 1,
	}
}

// WithTieBreak 排序键末尾补上实体 ID，方向跟随最后一个键
func WithTieBreak(keys []repository.SortKey, idColumn string) []repository.SortKey {
	if len(keys) > 0 && keys[len(keys)-1].Column == idColumn {
		return keys
	}
	desc := len(keys) > 0 && keys[len(keys)-1].Desc
	out := make([]repository.SortKey, 0, len(keys)+1)
	out = append(out, keys...)
	return append(out, repository.SortKey{Column: idColumn, Desc: desc})
}

// Paginate 统计总数后按稳定排序取出一页，并逐行转换
func Paginate[R any, T any](ctx context.Context, p *repository.Pipeline, sort []repository.SortKey, idColumn string, req PageRequest, convert func(*R) T) (*Page[T], error) {
	total, err := p.Count(ctx)
	if err != nil {
		return nil, err
	}

	var rows []R
	if total > int64(req.Offset()) {
		sorted := p.Then(repository.Sort(WithTieBreak(sort, idColumn)...))
		if err := sorted.Page(ctx, req.Offset(), req.Limit, &rows); err != nil {
			return nil, err
		}
	}

	items := make([]T, 0, len(rows))
	for i := range rows {
		items = append(items, convert(&rows[i]))
	}
	return NewPage(items, total, req), nil
}
