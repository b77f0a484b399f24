package service

import (
	"context"
	"fmt"
	"strings"

	"restaurante/internal/model"
	"restaurante/internal/repository"

	"github.com/rs/zerolog"
)

const minPasswordLength = 6

// employeeService implements EmployeeService.
type employeeService struct {
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger zerolog.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("service", "employee").Logger(),
	}
}

// List retrieves all employees.
func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list employees")
		return nil, wrapErr(err, "failed to list employees")
	}
	return employees, nil
}

// Get retrieves a single employee.
func (s *employeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to get employee")
		return nil, wrapErr(err, "failed to get employee")
	}
	if employee == nil {
		return nil, model.ErrEmployeeNotFound
	}
	return employee, nil
}

// Create validates the payload, hashes the password and stores the account.
func (s *employeeService) Create(ctx context.Context, req *model.EmployeeRequest) (*model.Employee, error) {
	if req == nil {
		return nil, model.ValidationError("Request body is required")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, model.ValidationError("Username is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.ValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	employee := &model.Employee{
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Active:    true,
	}
	if err := employee.SetPassword(req.Password); err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to create employee")
		return nil, wrapErr(err, "failed to create employee")
	}

	s.logger.Info().
		Int64("employee_id", employee.ID).
		Str("username", username).
		Msg("employee created")

	return employee, nil
}

// SetActive enables or disables an account.
func (s *employeeService) SetActive(ctx context.Context, id int64, active bool) (*model.Employee, error) {
	if err := s.employeeRepo.SetActive(ctx, id, active); err != nil {
		s.logger.Warn().Err(err).Int64("employee_id", id).Msg("failed to update employee")
		return nil, wrapErr(err, "failed to update employee")
	}

	s.logger.Info().
		Int64("employee_id", id).
		Bool("active", active).
		Msg("employee activation changed")

	return s.Get(ctx, id)
}

// Authenticate verifies a username and password pair.
func (s *employeeService) Authenticate(ctx context.Context, username, password string) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to look up employee")
		return nil, wrapErr(err, "failed to authenticate")
	}

	if employee == nil || !employee.CheckPassword(password) {
		s.logger.Warn().Str("username", username).Msg("invalid credentials")
		return nil, model.ErrUnauthorised
	}

	if !employee.Active {
		s.logger.Warn().Str("username", username).Msg("inactive employee")
		return nil, model.ErrForbidden
	}

	return employee, nil
}
