package utils

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// ClampPerPage keeps per_page within [1, MaxPerPage].
func ClampPerPage(perPage int) int {
	switch {
	case perPage < 1:
		return DefaultPerPage
	case perPage > MaxPerPage:
		return MaxPerPage
	}
	return perPage
}
