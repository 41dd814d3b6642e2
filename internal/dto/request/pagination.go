package request

import "cinema-api/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func NewPaginatedRequest(page, perPage string) PaginatedRequest {
	return PaginatedRequest{
		Page:    utils.ParseInt(page, utils.DefaultPage),
		PerPage: utils.ClampPerPage(utils.ParseInt(perPage, utils.DefaultPerPage)),
	}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage)
}
