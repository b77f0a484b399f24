package service

import (
	"context"

	"restaurante/internal/model"
	"restaurante/internal/repository"

	"github.com/rs/zerolog"
)

// tableService implements TableService.
type tableService struct {
	tableRepo repository.TableRepository
	logger    zerolog.Logger
}

// NewTableService creates a new table service.
func NewTableService(tableRepo repository.TableRepository, logger zerolog.Logger) TableService {
	return &tableService{
		tableRepo: tableRepo,
		logger:    logger.With().Str("service", "table").Logger(),
	}
}

// List retrieves all tables ordered by number.
func (s *tableService) List(ctx context.Context) ([]model.Table, error) {
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tables")
		return nil, wrapErr(err, "failed to list tables")
	}
	return tables, nil
}

// Get retrieves a single table.
func (s *tableService) Get(ctx context.Context, id int64) (*model.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("table_id", id).Msg("failed to get table")
		return nil, wrapErr(err, "failed to get table")
	}
	if table == nil {
		return nil, model.ErrTableNotFound
	}
	return table, nil
}

// Create validates and stores a new table. State defaults to available.
func (s *tableService) Create(ctx context.Context, req *model.TableRequest) (*model.Table, error) {
	table, err := tableFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		s.logger.Warn().Err(err).Int("number", table.Number).Msg("failed to create table")
		return nil, wrapErr(err, "failed to create table")
	}

	s.logger.Info().
		Int64("table_id", table.ID).
		Int("number", table.Number).
		Msg("table created")

	return table, nil
}

// Update overwrites a table's number, capacity and state.
func (s *tableService) Update(ctx context.Context, id int64, req *model.TableRequest) (*model.Table, error) {
	table, err := tableFromRequest(req)
	if err != nil {
		return nil, err
	}
	table.ID = id

	if err := s.tableRepo.Update(ctx, table); err != nil {
		s.logger.Warn().Err(err).Int64("table_id", id).Msg("failed to update table")
		return nil, wrapErr(err, "failed to update table")
	}

	return table, nil
}

// SetState changes a table's occupancy state. Every state is reachable from every other.
func (s *tableService) SetState(ctx context.Context, id int64, state string) (*model.Table, error) {
	next, err := model.ParseTableState(state)
	if err != nil {
		s.logger.Warn().Str("state", state).Msg("invalid table state")
		return nil, err
	}

	if err := s.tableRepo.UpdateState(ctx, id, next); err != nil {
		s.logger.Warn().Err(err).Int64("table_id", id).Msg("failed to set table state")
		return nil, wrapErr(err, "failed to set table state")
	}

	s.logger.Info().
		Int64("table_id", id).
		Str("state", string(next)).
		Msg("table state changed")

	return s.Get(ctx, id)
}

// Delete removes a table.
func (s *tableService) Delete(ctx context.Context, id int64) error {
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("table_id", id).Msg("failed to delete table")
		return wrapErr(err, "failed to delete table")
	}
	return nil
}

// Board partitions all tables into the four occupancy buckets.
func (s *tableService) Board(ctx context.Context) (*model.TableBoard, error) {
	tables, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	board := model.NewTableBoard(tables)
	return &board, nil
}

func tableFromRequest(req *model.TableRequest) (*model.Table, error) {
	if req == nil {
		return nil, model.ValidationError("Request body is required")
	}
	if req.Number <= 0 {
		return nil, model.ErrInvalidTableNumber
	}
	if req.Capacity <= 0 {
		return nil, model.ErrInvalidCapacity
	}

	state := model.TableAvailable
	if req.State != "" {
		parsed, err := model.ParseTableState(req.State)
		if err != nil {
			return nil, err
		}
		state = parsed
	}

	return &model.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		State:    state,
	}, nil
}
