package dto

type CategoryFilters struct {
	IsActive *bool
	Page     int
	PageSize int
}

type CreateCategoryInput struct {
	Slug        string // derived from Name when empty
	Name        string
	Description string
	SortOrder   int
}

type UpdateCategoryInput struct {
	Slug        string
	Name        string
	Description string
	SortOrder   int
	IsActive    bool
}
