package service

import (
	"context"
	"strings"

	"restaurante/internal/model"
	"restaurante/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var maxRating = decimal.NewFromInt(5)

// menuService implements MenuService.
type menuService struct {
	categoryRepo repository.CategoryRepository
	dishRepo     repository.DishRepository
	logger       zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(
	categoryRepo repository.CategoryRepository,
	dishRepo repository.DishRepository,
	logger zerolog.Logger,
) MenuService {
	return &menuService{
		categoryRepo: categoryRepo,
		dishRepo:     dishRepo,
		logger:       logger.With().Str("service", "menu").Logger(),
	}
}

// ListCategories retrieves all categories in display order.
func (s *menuService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, wrapErr(err, "failed to list categories")
	}
	return categories, nil
}

// GetCategory retrieves a single category.
func (s *menuService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category")
		return nil, wrapErr(err, "failed to get category")
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// CreateCategory validates and stores a new category.
func (s *menuService) CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.categoryFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Warn().Err(err).Str("name", category.Name).Msg("failed to create category")
		return nil, wrapErr(err, "failed to create category")
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	return category, nil
}

// UpdateCategory overwrites a category's fields.
func (s *menuService) UpdateCategory(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.categoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	category.ID = id

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, wrapErr(err, "failed to update category")
	}

	return category, nil
}

// DeleteCategory deactivates a category.
func (s *menuService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Deactivate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to deactivate category")
		return wrapErr(err, "failed to deactivate category")
	}

	s.logger.Info().Int64("category_id", id).Msg("category deactivated")
	return nil
}

func (s *menuService) categoryFromRequest(req *model.CategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, model.ValidationError("Request body is required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ValidationError("Category name is required")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &model.Category{
		Name:         name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		Active:       active,
	}, nil
}

// ListDishes retrieves dishes matching the filter.
func (s *menuService) ListDishes(ctx context.Context, filter model.DishFilter) ([]model.Dish, error) {
	dishes, err := s.dishRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list dishes")
		return nil, wrapErr(err, "failed to list dishes")
	}

	s.logger.Debug().Int("count", len(dishes)).Msg("retrieved dishes")
	return dishes, nil
}

// GetDish retrieves a single dish with its category.
func (s *menuService) GetDish(ctx context.Context, id int64) (*model.Dish, error) {
	dish, err := s.dishRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to get dish")
		return nil, wrapErr(err, "failed to get dish")
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}
	return dish, nil
}

// CreateDish validates and stores a new dish.
func (s *menuService) CreateDish(ctx context.Context, req *model.DishRequest) (*model.Dish, error) {
	dish, err := s.dishFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.dishRepo.Create(ctx, dish); err != nil {
		s.logger.Warn().Err(err).Str("name", dish.Name).Msg("failed to create dish")
		return nil, wrapErr(err, "failed to create dish")
	}

	s.logger.Info().
		Int64("dish_id", dish.ID).
		Str("name", dish.Name).
		Str("price", dish.Price.StringFixed(2)).
		Msg("dish created")

	return dish, nil
}

// UpdateDish overwrites a dish's fields. Line items keep the price they captured.
func (s *menuService) UpdateDish(ctx context.Context, id int64, req *model.DishRequest) (*model.Dish, error) {
	dish, err := s.dishFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	dish.ID = id

	if err := s.dishRepo.Update(ctx, dish); err != nil {
		s.logger.Warn().Err(err).Int64("dish_id", id).Msg("failed to update dish")
		return nil, wrapErr(err, "failed to update dish")
	}

	return dish, nil
}

// DeleteDish removes an unreferenced dish.
func (s *menuService) DeleteDish(ctx context.Context, id int64) error {
	if err := s.dishRepo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("dish_id", id).Msg("failed to delete dish")
		return wrapErr(err, "failed to delete dish")
	}

	s.logger.Info().Int64("dish_id", id).Msg("dish deleted")
	return nil
}

// dishFromRequest validates the payload and resolves the category.
func (s *menuService) dishFromRequest(ctx context.Context, req *model.DishRequest) (*model.Dish, error) {
	if req == nil {
		return nil, model.ValidationError("Request body is required")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ValidationError("Dish name is required")
	}

	if req.Price.IsNegative() {
		s.logger.Warn().Str("price", req.Price.String()).Msg("negative dish price")
		return nil, model.ErrInvalidPrice
	}

	if req.Rating != nil && (req.Rating.IsNegative() || req.Rating.GreaterThan(maxRating)) {
		return nil, model.ValidationError("Rating must be between 0 and 5")
	}

	if req.PrepMinutes != nil && *req.PrepMinutes < 0 {
		return nil, model.ValidationError("Preparation time cannot be negative")
	}

	if req.Calories != nil && *req.Calories < 0 {
		return nil, model.ValidationError("Calories cannot be negative")
	}

	category, err := s.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return &model.Dish{
		CategoryID:  category.ID,
		Category:    category,
		Name:        name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Available:   available,
		Featured:    req.Featured,
		Vegetarian:  req.Vegetarian,
		Vegan:       req.Vegan,
		Spicy:       req.Spicy,
		GlutenFree:  req.GlutenFree,
		PrepMinutes: req.PrepMinutes,
		Calories:    req.Calories,
		Rating:      req.Rating,
		RatingCount: req.RatingCount,
	}, nil
}
