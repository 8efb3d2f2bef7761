package models

// Pagination mirrors the paging fields the backend sends next to list data.
type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	PageSize      int `json:"pageSize"`
	From          int `json:"from"`
	To            int `json:"to"`
}

func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

func (p Pagination) HasNext() bool { return p.CurrentPage < p.TotalPages }
