package service

import (
	"fmt"

	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/model"
)

const (
	maxNameLength = 255
	maxPage       = 1_000_000
)

// normalizePage fills unset (zero) fields with defaults and caps the limit.
func normalizePage(req model.PageRequest, cfg config.PagingConfig) (model.PageRequest, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}
	if req.Page < 1 {
		return req, fmt.Errorf("%w: page must be at least 1", ErrValidation)
	}
	if req.Page > maxPage {
		return req, fmt.Errorf("%w: page must be at most %d", ErrValidation, maxPage)
	}
	if req.Limit < 1 {
		return req, fmt.Errorf("%w: limit must be at least 1", ErrValidation)
	}
	if req.Limit > cfg.MaxLimit {
		req.Limit = cfg.MaxLimit
	}
	return req, nil
}
