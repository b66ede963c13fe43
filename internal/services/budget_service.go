package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneymind/internal/errors"
	"moneymind/internal/models"
	"moneymind/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db      *gorm.DB
	catalog Catalog
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, catalog Catalog) BudgetServicer {
	return &budgetService{db: db, catalog: catalog}
}

func (s *budgetService) validateInput(input BudgetInput) error {
	if err := s.catalog.ValidateCategory(input.Category); err != nil {
		return err
	}
	if input.BudgetLimit <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must be greater than zero")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end dates are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}
	return nil
}

// CreateBudget creates a spending budget for a category. A user can hold at
// most one budget per category.
func (s *budgetService) CreateBudget(userID string, input BudgetInput) (*models.Budget, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Budget{}).Where("user_id = ? AND category = ?", userID, input.Category).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:      userID,
		Category:    input.Category,
		BudgetLimit: input.BudgetLimit,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets retrieves a paginated list of a user's budgets.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Normalize()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page, totalItems)
	return &result, nil
}

// GetAllUserBudgets retrieves every budget for a user.
func (s *budgetService) GetAllUserBudgets(userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget replaces the writable fields of a budget.
func (s *budgetService) UpdateBudget(userID, budgetID string, input BudgetInput) (*models.Budget, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	// Changing category must not collide with another budget.
	if input.Category != budget.Category {
		var count int64
		s.db.Model(&models.Budget{}).Where("user_id = ? AND category = ?", userID, input.Category).Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}
	}

	budget.Category = input.Category
	budget.BudgetLimit = input.BudgetLimit
	budget.StartDate = input.StartDate
	budget.EndDate = input.EndDate

	if err := s.db.Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
