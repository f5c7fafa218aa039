package models

// Category defines the struct for the 'categories' collection
type Category struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// URL is the canonical detail-page path of the category.
func (c *Category) URL() string {
	return "/categories/" + c.ID
}

// CategoryInput holds the raw form values of a category submission.
type CategoryInput struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}
