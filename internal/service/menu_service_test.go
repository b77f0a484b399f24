package service

import (
	"context"
	"errors"
	"testing"

	"restaurante/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	inactive := false

	tests := []struct {
		name           string
		req            *model.CategoryRequest
		setupMocks     func(m *MockCategoryRepository)
		expectedErr    error
		expectedActive bool
	}{
		{
			name: "Defaults to active",
			req:  &model.CategoryRequest{Name: "  Sopas  ", DisplayOrder: 2},
			setupMocks: func(m *MockCategoryRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(c *model.Category) bool {
					return c.Name == "Sopas" && c.Active
				})).Return(nil)
			},
			expectedActive: true,
		},
		{
			name: "Explicitly inactive",
			req:  &model.CategoryRequest{Name: "Temporada", Active: &inactive},
			setupMocks: func(m *MockCategoryRepository) {
				m.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedActive: false,
		},
		{
			name:        "Missing name",
			req:         &model.CategoryRequest{Name: "   "},
			setupMocks:  func(m *MockCategoryRepository) {},
			expectedErr: model.ValidationError("Category name is required"),
		},
		{
			name: "Duplicate name",
			req:  &model.CategoryRequest{Name: "Sopas"},
			setupMocks: func(m *MockCategoryRepository) {
				m.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(model.ErrCategoryNameTaken)
			},
			expectedErr: model.ErrCategoryNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryRepository)
			tt.setupMocks(categories)
			service := NewMenuService(categories, new(MockDishRepository), zerolog.Nop())

			category, err := service.CreateCategory(ctx, tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, category)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedActive, category.Active)
			}
			categories.AssertExpectations(t)
		})
	}
}

func TestMenuService_GetCategory(t *testing.T) {
	ctx := context.Background()
	categories := new(MockCategoryRepository)
	service := NewMenuService(categories, new(MockDishRepository), zerolog.Nop())

	categories.On("GetByID", ctx, int64(1)).Return(&model.Category{ID: 1, Name: "Bebidas"}, nil)
	categories.On("GetByID", ctx, int64(2)).Return(nil, nil)
	categories.On("GetByID", ctx, int64(3)).Return(nil, errors.New("timeout"))

	found, err := service.GetCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", found.Name)

	_, err = service.GetCategory(ctx, 2)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)

	_, err = service.GetCategory(ctx, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get category")
}

func TestMenuService_DeleteCategoryDeactivates(t *testing.T) {
	ctx := context.Background()
	categories := new(MockCategoryRepository)
	service := NewMenuService(categories, new(MockDishRepository), zerolog.Nop())

	categories.On("Deactivate", ctx, int64(4)).Return(nil)

	require.NoError(t, service.DeleteCategory(ctx, 4))
	categories.AssertExpectations(t)
}

func TestMenuService_CreateDish(t *testing.T) {
	ctx := context.Background()
	badRating := decimal.RequireFromString("5.5")
	negative := -1

	tests := []struct {
		name        string
		req         *model.DishRequest
		setupMocks  func(c *MockCategoryRepository, d *MockDishRepository)
		expectedErr error
	}{
		{
			name: "Valid dish",
			req:  &model.DishRequest{CategoryID: 1, Name: "Tacos al pastor", Price: decimal.RequireFromString("85.5")},
			setupMocks: func(c *MockCategoryRepository, d *MockDishRepository) {
				c.On("GetByID", ctx, int64(1)).Return(&model.Category{ID: 1, Name: "Tacos"}, nil)
				d.On("Create", ctx, mock.MatchedBy(func(dish *model.Dish) bool {
					return dish.Available && dish.Price.StringFixed(2) == "85.50" && dish.Category.Name == "Tacos"
				})).Return(nil)
			},
		},
		{
			name: "Free dish is allowed",
			req:  &model.DishRequest{CategoryID: 1, Name: "Agua", Price: decimal.Zero},
			setupMocks: func(c *MockCategoryRepository, d *MockDishRepository) {
				c.On("GetByID", ctx, int64(1)).Return(&model.Category{ID: 1}, nil)
				d.On("Create", ctx, mock.AnythingOfType("*model.Dish")).Return(nil)
			},
		},
		{
			name:        "Negative price",
			req:         &model.DishRequest{CategoryID: 1, Name: "Error", Price: decimal.RequireFromString("-0.01")},
			setupMocks:  func(c *MockCategoryRepository, d *MockDishRepository) {},
			expectedErr: model.ErrInvalidPrice,
		},
		{
			name:        "Missing name",
			req:         &model.DishRequest{CategoryID: 1, Price: decimal.NewFromInt(1)},
			setupMocks:  func(c *MockCategoryRepository, d *MockDishRepository) {},
			expectedErr: model.ValidationError("Dish name is required"),
		},
		{
			name:        "Rating out of range",
			req:         &model.DishRequest{CategoryID: 1, Name: "x", Price: decimal.NewFromInt(1), Rating: &badRating},
			setupMocks:  func(c *MockCategoryRepository, d *MockDishRepository) {},
			expectedErr: model.ValidationError("Rating must be between 0 and 5"),
		},
		{
			name:        "Negative calories",
			req:         &model.DishRequest{CategoryID: 1, Name: "x", Price: decimal.NewFromInt(1), Calories: &negative},
			setupMocks:  func(c *MockCategoryRepository, d *MockDishRepository) {},
			expectedErr: model.ValidationError("Calories cannot be negative"),
		},
		{
			name: "Unknown category",
			req:  &model.DishRequest{CategoryID: 9, Name: "x", Price: decimal.NewFromInt(1)},
			setupMocks: func(c *MockCategoryRepository, d *MockDishRepository) {
				c.On("GetByID", ctx, int64(9)).Return(nil, nil)
			},
			expectedErr: model.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryRepository)
			dishes := new(MockDishRepository)
			tt.setupMocks(categories, dishes)
			service := NewMenuService(categories, dishes, zerolog.Nop())

			dish, err := service.CreateDish(ctx, tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, dish)
				dishes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, dish)
			}
			categories.AssertExpectations(t)
			dishes.AssertExpectations(t)
		})
	}
}

func TestMenuService_UpdateDish(t *testing.T) {
	ctx := context.Background()
	categories := new(MockCategoryRepository)
	dishes := new(MockDishRepository)
	service := NewMenuService(categories, dishes, zerolog.Nop())

	unavailable := false
	categories.On("GetByID", ctx, int64(1)).Return(&model.Category{ID: 1}, nil)
	dishes.On("Update", ctx, mock.MatchedBy(func(d *model.Dish) bool {
		return d.ID == 7 && !d.Available
	})).Return(nil)

	dish, err := service.UpdateDish(ctx, 7, &model.DishRequest{CategoryID: 1, Name: "Flan", Price: decimal.NewFromInt(40), Available: &unavailable})

	require.NoError(t, err)
	assert.Equal(t, int64(7), dish.ID)
	assert.False(t, dish.Available)
	dishes.AssertExpectations(t)
}

func TestMenuService_DeleteDish(t *testing.T) {
	ctx := context.Background()
	dishes := new(MockDishRepository)
	service := NewMenuService(new(MockCategoryRepository), dishes, zerolog.Nop())

	dishes.On("Delete", ctx, int64(1)).Return(nil)
	dishes.On("Delete", ctx, int64(2)).Return(model.ErrDishInUse)

	assert.NoError(t, service.DeleteDish(ctx, 1))

	err := service.DeleteDish(ctx, 2)
	assert.ErrorIs(t, err, model.ErrDishInUse)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindValidation, de.Kind)
}

func TestMenuService_ListDishes(t *testing.T) {
	ctx := context.Background()
	dishes := new(MockDishRepository)
	service := NewMenuService(new(MockCategoryRepository), dishes, zerolog.Nop())

	categoryID := int64(3)
	filter := model.DishFilter{CategoryID: &categoryID, AvailableOnly: true}
	dishes.On("List", ctx, filter).Return([]model.Dish{{ID: 1}, {ID: 2}}, nil)

	result, err := service.ListDishes(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	dishes.AssertExpectations(t)
}
