package category

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=income expense"`
}

// UpdateCategoryRequest carries the optional fields of a category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}
