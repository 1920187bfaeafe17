package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	subscriptionerrors "go-gym/internal/subscription/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, gymID string, req CreateSubscriptionRequest) (SubscriptionResponse, error)
	Renew(ctx context.Context, gymID, id string, req RenewSubscriptionRequest) (SubscriptionResponse, error)
	GetAll(ctx context.Context, gymID string) ([]SubscriptionResponse, error)
	GetByID(ctx context.Context, gymID, id string) (SubscriptionResponse, error)
	GetByMember(ctx context.Context, gymID, memberID string) ([]SubscriptionResponse, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("subscription.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subscription.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, gymID string, req CreateSubscriptionRequest) (SubscriptionResponse, error) {
	if _, err := uuid.Parse(req.MemberID); err != nil {
		return SubscriptionResponse{}, subscriptionerrors.ErrInvalidMemberID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create subscription begin tx failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindActiveByMember(ctx, gymID, req.MemberID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("active subscription lookup failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}
	if err == nil && existing != nil && existing.EndDate.After(time.Now().UTC()) {
		return SubscriptionResponse{}, subscriptionerrors.ErrActiveSubscriptionExists
	}

	now := time.Now().UTC()
	start := now.Truncate(24 * time.Hour)
	end := start.AddDate(0, req.Months, 0)

	method := req.Method
	if method == "" {
		method = "cash"
	}

	sub := &Subscription{
		ID:        uuid.New(),
		GymID:     uuid.MustParse(gymID),
		MemberID:  uuid.MustParse(req.MemberID),
		PlanName:  req.PlanName,
		PlanPrice: req.PlanPrice,
		StartDate: start,
		EndDate:   end,
		Status:    StatusActive,
	}
	if err := qtx.Create(ctx, sub); err != nil {
		s.logger.Error("create subscription persist failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	payment := &Payment{
		ID:             uuid.New(),
		GymID:          sub.GymID,
		SubscriptionID: sub.ID,
		Amount:         req.PlanPrice,
		Method:         method,
		PaidOn:         start,
		MonthsAdded:    req.Months,
	}
	if err := qtx.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("create initial payment failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("member_id", req.MemberID),
		zap.String("plan", req.PlanName),
	)

	sub.Payments = []Payment{*payment}
	return mapToResponse(*sub), nil
}

func (s *service) Renew(ctx context.Context, gymID, id string, req RenewSubscriptionRequest) (SubscriptionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubscriptionResponse{}, subscriptionerrors.ErrInvalidSubscriptionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("renew subscription begin tx failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sub, err := qtx.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return SubscriptionResponse{}, mapRepositoryError(err)
	}

	// Renewal extends from the current end date when still active, from
	// today when it already lapsed.
	now := time.Now().UTC().Truncate(24 * time.Hour)
	base := sub.EndDate
	if base.Before(now) {
		base = now
	}
	sub.EndDate = base.AddDate(0, req.Months, 0)
	sub.Status = StatusActive

	if err := qtx.Update(ctx, sub); err != nil {
		s.logger.Error("renew subscription persist failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	method := req.Method
	if method == "" {
		method = "cash"
	}
	payment := &Payment{
		ID:             uuid.New(),
		GymID:          sub.GymID,
		SubscriptionID: sub.ID,
		Amount:         req.Amount,
		Method:         method,
		PaidOn:         now,
		MonthsAdded:    req.Months,
	}
	if err := qtx.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("renew payment persist failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.Error(err))
		return SubscriptionResponse{}, err
	}

	s.logger.Info("subscription renewed",
		zap.String("subscription_id", sub.ID.String()),
		zap.Int("months", req.Months),
	)

	sub.Payments = append(sub.Payments, *payment)
	return mapToResponse(*sub), nil
}

func (s *service) GetAll(ctx context.Context, gymID string) ([]SubscriptionResponse, error) {
	rows, err := s.repo.FindAllByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, gymID, id string) (SubscriptionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubscriptionResponse{}, subscriptionerrors.ErrInvalidSubscriptionID
	}
	row, err := s.repo.FindByIDAndGym(ctx, gymID, id)
	if err != nil {
		return SubscriptionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByMember(ctx context.Context, gymID, memberID string) ([]SubscriptionResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return nil, subscriptionerrors.ErrInvalidMemberID
	}
	rows, err := s.repo.FindAllByMember(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("expire overdue subscriptions failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("subscriptions expired", zap.Int64("count", n))
	}
	return n, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return subscriptionerrors.ErrSubscriptionNotFound
	}
	return err
}

func mapToResponse(s Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:        s.ID.String(),
		GymID:     s.GymID.String(),
		MemberID:  s.MemberID.String(),
		PlanName:  s.PlanName,
		PlanPrice: s.PlanPrice,
		StartDate: s.StartDate.Format("2006-01-02"),
		EndDate:   s.EndDate.Format("2006-01-02"),
		Status:    s.Status,
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:          p.ID.String(),
			Amount:      p.Amount,
			Method:      p.Method,
			PaidOn:      p.PaidOn.Format("2006-01-02"),
			MonthsAdded: p.MonthsAdded,
		})
	}
	return resp
}

func mapToListResponse(rows []Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
