package staff

import (
	"context"
	"errors"
	"strings"

	stafferrors "go-gym/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, gymID string, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, gymID string) ([]StaffResponse, error)
	GetByID(ctx context.Context, gymID, id string) (StaffResponse, error)
	Update(ctx context.Context, gymID, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, gymID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, gymID string, req CreateStaffRequest) (StaffResponse, error) {
	gID, err := uuid.Parse(gymID)
	if err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}

	row := &Staff{
		ID:       uuid.New(),
		GymID:    gID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    strPtr(req.Phone),
		Position: strPtr(req.Position),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create staff success", zap.String("staff_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, gymID string) ([]StaffResponse, error) {
	rows, err := s.repo.FindAllByGym(ctx, gymID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := make([]StaffResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, gymID, id string) (StaffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}
	row, err := s.repo.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, gymID, id string, req UpdateStaffRequest) (StaffResponse, error) {
	row, err := s.repo.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		row.Name = req.Name
	}
	if req.Email != "" {
		row.Email = req.Email
	}
	if req.Phone != "" {
		row.Phone = &req.Phone
	}
	if req.Position != "" {
		row.Position = &req.Position
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, gymID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return stafferrors.ErrInvalidStaffID
	}
	if err := s.repo.Delete(ctx, gymID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return stafferrors.ErrStaffAlreadyExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return stafferrors.ErrStaffAlreadyExists
	}

	return err
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapToResponse(s Staff) StaffResponse {
	resp := StaffResponse{
		ID:    s.ID.String(),
		GymID: s.GymID.String(),
		Name:  s.Name,
		Email: s.Email,
	}
	if s.Phone != nil {
		resp.Phone = *s.Phone
	}
	if s.Position != nil {
		resp.Position = *s.Position
	}
	return resp
}
