package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups dishes on the menu.
type Category struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Dish represents a menu item.
type Dish struct {
	ID           int64            `json:"id" db:"id"`
	CategoryID   int64            `json:"categoryId" db:"category_id"`
	Category     *Category        `json:"category,omitempty"`
	Name         string           `json:"name" db:"name"`
	Description  string           `json:"description" db:"description"`
	Price        decimal.Decimal  `json:"price" db:"price"`
	Available    bool             `json:"available" db:"available"`
	Featured     bool             `json:"featured" db:"featured"`
	Vegetarian   bool             `json:"vegetarian" db:"vegetarian"`
	Vegan        bool             `json:"vegan" db:"vegan"`
	Spicy        bool             `json:"spicy" db:"spicy"`
	GlutenFree   bool             `json:"glutenFree" db:"gluten_free"`
	PrepMinutes  *int             `json:"prepMinutes,omitempty" db:"prep_minutes"`
	Calories     *int             `json:"calories,omitempty" db:"calories"`
	Rating       *decimal.Decimal `json:"rating,omitempty" db:"rating"`
	RatingCount  int              `json:"ratingCount" db:"rating_count"`
	Views        int              `json:"views" db:"views"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	Active       *bool  `json:"active,omitempty"`
}

// DishRequest is the payload for creating or updating a dish.
type DishRequest struct {
	CategoryID  int64            `json:"categoryId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Available   *bool            `json:"available,omitempty"`
	Featured    bool             `json:"featured"`
	Vegetarian  bool             `json:"vegetarian"`
	Vegan       bool             `json:"vegan"`
	Spicy       bool             `json:"spicy"`
	GlutenFree  bool             `json:"glutenFree"`
	PrepMinutes *int             `json:"prepMinutes,omitempty"`
	Calories    *int             `json:"calories,omitempty"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	RatingCount int              `json:"ratingCount"`
}

// DishFilter narrows a dish listing.
type DishFilter struct {
	CategoryID    *int64
	AvailableOnly bool
}
