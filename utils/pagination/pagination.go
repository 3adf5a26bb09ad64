package pagination

type Params struct {
	Page     int
	PageSize int
	Offset   int
}

type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func New(page, pageSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return Params{Page: page, PageSize: pageSize, Offset: (page - 1) * pageSize}
}

func BuildMeta(page, pageSize int, total int64) Meta {
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return Meta{Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}
