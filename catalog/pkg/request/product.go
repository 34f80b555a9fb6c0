package request

// FindProducts narrows the marketplace listing. Zero values mean "no filter".
type FindProducts struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	SortBy   string `validate:"omitempty,oneof=latest price_asc price_desc rating" json:"sort_by"`
}
