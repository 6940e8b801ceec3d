package model

// PageRequest is a 1-based page number and a page size.
type PageRequest struct {
	Page  int32
	Limit int32
}

// Offset is computed in int64 so large page numbers cannot wrap.
func (p PageRequest) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	var pages int64
	if req.Limit > 0 {
		pages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: pages,
	}
}
