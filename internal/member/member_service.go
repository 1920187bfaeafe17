package member

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	membererrors "go-gym/internal/member/errors"
	"go-gym/internal/shared/contextutil"
	"go-gym/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const memberOptionsKeyPrefix = "members:options:"

func GetMemberOptionsKey(gymID string) string {
	return memberOptionsKeyPrefix + gymID
}

type Service interface {
	Create(ctx context.Context, gymID string, req CreateMemberRequest) (MemberResponse, error)
	GetAll(ctx context.Context, gymID string) ([]MemberResponse, error)
	GetOptions(ctx context.Context, gymID string) ([]MemberResponse, error)
	GetByID(ctx context.Context, gymID, id string) (MemberResponse, error)
	Search(ctx context.Context, gymID, query string) ([]MemberResponse, error)
	Update(ctx context.Context, gymID, id string, req UpdateMemberRequest) (MemberResponse, error)
	Delete(ctx context.Context, gymID, id string) error
}

type service struct {
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("member.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("member.service")
	}
	return &service{
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, gymID string, req CreateMemberRequest) (MemberResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create member requested",
		zap.String("request_id", rid),
		zap.String("gym_id", gymID),
		zap.String("email", req.Email),
	)

	gID, err := uuid.Parse(gymID)
	if err != nil {
		return MemberResponse{}, membererrors.ErrInvalidGymID
	}

	if req.MembershipNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, gymID, "membership_number")
		if err != nil {
			s.logger.Error("create member generate number failed", zap.Error(err))
			return MemberResponse{}, err
		}
		req.MembershipNumber = fmt.Sprintf("MBR-%06d", nextVal)
	}

	m := &Member{
		ID:               uuid.New(),
		GymID:            gID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            strPtr(req.Phone),
		Address:          strPtr(req.Address),
		MembershipNumber: req.MembershipNumber,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("create member persist failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, gymID)

	s.logger.Info("create member success",
		zap.String("request_id", rid),
		zap.String("member_id", m.ID.String()),
	)

	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, gymID string) ([]MemberResponse, error) {
	members, err := s.repo.FindAllByGym(ctx, gymID)
	if err != nil {
		s.logger.Error("get all members failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(members), nil
}

// GetOptions is the hot read behind the staff manual check-in screen, so it
// goes through redis with singleflight on cache misses.
func (s *service) GetOptions(ctx context.Context, gymID string) ([]MemberResponse, error) {
	cacheKey := GetMemberOptionsKey(gymID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []MemberResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		members, err := s.repo.FindAllByGym(ctx, gymID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(members)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]MemberResponse), nil
}

func (s *service) GetByID(ctx context.Context, gymID, id string) (MemberResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return MemberResponse{}, membererrors.ErrInvalidMemberID
	}
	m, err := s.repo.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*m), nil
}

func (s *service) Search(ctx context.Context, gymID, query string) ([]MemberResponse, error) {
	members, err := s.repo.SearchByGym(ctx, gymID, query)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(members), nil
}

func (s *service) Update(ctx context.Context, gymID, id string, req UpdateMemberRequest) (MemberResponse, error) {
	m, err := s.repo.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Email != "" {
		m.Email = req.Email
	}
	if req.Phone != "" {
		m.Phone = &req.Phone
	}
	if req.Address != "" {
		m.Address = &req.Address
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, gymID)

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, gymID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return membererrors.ErrInvalidMemberID
	}
	if err := s.repo.Delete(ctx, gymID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, gymID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, gymID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetMemberOptionsKey(gymID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate member options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapToResponse(m Member) MemberResponse {
	resp := MemberResponse{
		ID:               m.ID.String(),
		GymID:            m.GymID.String(),
		Name:             m.Name,
		Email:            m.Email,
		MembershipNumber: m.MembershipNumber,
		CreatedAt:        m.CreatedAt.Format(time.RFC3339),
	}
	if m.Phone != nil {
		resp.Phone = *m.Phone
	}
	if m.Address != nil {
		resp.Address = *m.Address
	}
	return resp
}

func mapToListResponse(members []Member) []MemberResponse {
	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		resp[i] = mapToResponse(m)
	}
	return resp
}
