package filter

import (
	"github.com/siahsang/blog-orms/internal/validator"
	"github.com/siahsang/blog-orms/models"
)

// Filter is the page window requested by an article listing.
type Filter struct {
	Page  int
	Limit int
}

func NewFilter(page, limit int) Filter {
	return Filter{
		Page:  page,
		Limit: limit,
	}
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Page > 0, "page", "must be greater than 0")
	v.Check(filters.Page <= 10_000_000, "page", "must be a maximum of 10_000_000")
	v.Check(filters.Limit > 0, "limit", "must be greater than 0")
}

// Apply copies the window into listing options.
func (f Filter) Apply(options *models.FetchArticlesOptions) {
	options.Page = f.Page
	options.Limit = f.Limit
}
