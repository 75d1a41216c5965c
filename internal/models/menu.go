package models

// Category is a menu category row. Inactive categories are hidden from the
// public menu but still visible to the admin console.
type Category struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Emoji     string `json:"emoji,omitempty" db:"emoji"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
	IsActive  bool   `json:"is_active" db:"is_active"`
}

// Product is a catalog item belonging to a category.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	CategoryID  int64   `json:"category_id" db:"category_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description,omitempty" db:"description"`
	Price       float64 `json:"price" db:"price"`
	OldPrice    float64 `json:"old_price,omitempty" db:"old_price"`
	ImageURL    string  `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool    `json:"is_active" db:"is_active"`
	SortOrder   int     `json:"sort_order" db:"sort_order"`
}

// MenuCategory is a category with its products, as served by GET /menu.
type MenuCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji,omitempty"`
	SortOrder int       `json:"sort_order"`
	Products  []Product `json:"products"`
}

// MenuResponse is the GET /menu payload.
type MenuResponse struct {
	Categories []MenuCategory `json:"categories"`
}

// CategoryRequest is the admin body for creating or updating a category.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Emoji     string `json:"emoji,omitempty"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// ProductRequest is the admin body for creating or updating a product.
type ProductRequest struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	OldPrice    float64 `json:"old_price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive    bool    `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
}
