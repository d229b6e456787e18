package utils

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ValidatePage rejects page numbers below 1 and page sizes outside 1..MaxPageSize.
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}
