package dto

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// CategoryFilter narrows a category listing. Type filtering keeps
// "both" and legacy untyped categories in the result.
type CategoryFilter struct {
	ActiveOnly bool
	Type       string
}
