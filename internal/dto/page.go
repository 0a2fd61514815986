package dto

// Page is the list envelope. Total counts every match, not just Data.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

// TotalPages is ceil(total/size); a non-positive size yields 0.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
