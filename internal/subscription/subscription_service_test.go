package subscription

import (
	"context"
	"database/sql"
	"testing"
	"time"

	subscriptionerrors "go-gym/internal/subscription/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, s *Subscription) error
	createPaymentFn func(ctx context.Context, p *Payment) error
	findAllFn       func(ctx context.Context, gymID string) ([]Subscription, error)
	findByIDFn      func(ctx context.Context, gymID, id string) (*Subscription, error)
	findActiveFn    func(ctx context.Context, gymID, memberID string) (*Subscription, error)
	findByMemberFn  func(ctx context.Context, gymID, memberID string) ([]Subscription, error)
	updateFn        func(ctx context.Context, s *Subscription) error
	expireFn        func(ctx context.Context) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, s *Subscription) error { return f.createFn(ctx, s) }
func (f *fakeRepo) CreatePayment(ctx context.Context, p *Payment) error {
	return f.createPaymentFn(ctx, p)
}
func (f *fakeRepo) FindAllByGym(ctx context.Context, gymID string) ([]Subscription, error) {
	return f.findAllFn(ctx, gymID)
}
func (f *fakeRepo) FindByIDAndGym(ctx context.Context, gymID, id string) (*Subscription, error) {
	return f.findByIDFn(ctx, gymID, id)
}
func (f *fakeRepo) FindActiveByMember(ctx context.Context, gymID, memberID string) (*Subscription, error) {
	return f.findActiveFn(ctx, gymID, memberID)
}
func (f *fakeRepo) FindAllByMember(ctx context.Context, gymID, memberID string) ([]Subscription, error) {
	return f.findByMemberFn(ctx, gymID, memberID)
}
func (f *fakeRepo) Update(ctx context.Context, s *Subscription) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) ExpireOverdue(ctx context.Context) (int64, error)  { return f.expireFn(ctx) }

func TestService_Create_WithInitialPayment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	gymID := uuid.New().String()
	memberID := uuid.New().String()

	var savedSub Subscription
	var savedPayment Payment
	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context, g, m string) (*Subscription, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn:        func(ctx context.Context, s *Subscription) error { savedSub = *s; return nil },
		createPaymentFn: func(ctx context.Context, p *Payment) error { savedPayment = *p; return nil },
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), gymID, CreateSubscriptionRequest{
		MemberID:  memberID,
		PlanName:  "Monthly",
		PlanPrice: 250,
		Months:    3,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, savedSub.ID, savedPayment.SubscriptionID)
	assert.Equal(t, 250.0, savedPayment.Amount)
	assert.Equal(t, 3, savedPayment.MonthsAdded)
	assert.Equal(t, "cash", savedPayment.Method)
	assert.Equal(t, savedSub.StartDate.AddDate(0, 3, 0), savedSub.EndDate)
	assert.Len(t, resp.Payments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ActiveExists(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context, g, m string) (*Subscription, error) {
			return &Subscription{
				ID:      uuid.New(),
				EndDate: time.Now().UTC().AddDate(0, 1, 0),
				Status:  StatusActive,
			}, nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateSubscriptionRequest{
		MemberID:  uuid.New().String(),
		PlanName:  "Monthly",
		PlanPrice: 250,
		Months:    1,
	})
	assert.ErrorIs(t, err, subscriptionerrors.ErrActiveSubscriptionExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Renew_ExtendsFromEndDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	end := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 10)
	sub := Subscription{
		ID:       uuid.New(),
		GymID:    uuid.New(),
		MemberID: uuid.New(),
		PlanName: "Monthly",
		EndDate:  end,
		Status:   StatusActive,
	}

	var updated Subscription
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, g, id string) (*Subscription, error) {
			cp := sub
			return &cp, nil
		},
		updateFn:        func(ctx context.Context, s *Subscription) error { updated = *s; return nil },
		createPaymentFn: func(ctx context.Context, p *Payment) error { return nil },
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Renew(context.Background(), sub.GymID.String(), sub.ID.String(), RenewSubscriptionRequest{
		Months: 2,
		Amount: 500,
	})
	assert.NoError(t, err)
	assert.Equal(t, end.AddDate(0, 2, 0), updated.EndDate)
	assert.Equal(t, StatusActive, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Renew_LapsedRestartsFromToday(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	sub := Subscription{
		ID:      uuid.New(),
		GymID:   uuid.New(),
		EndDate: today.AddDate(0, -2, 0),
		Status:  StatusExpired,
	}

	var updated Subscription
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, g, id string) (*Subscription, error) {
			cp := sub
			return &cp, nil
		},
		updateFn:        func(ctx context.Context, s *Subscription) error { updated = *s; return nil },
		createPaymentFn: func(ctx context.Context, p *Payment) error { return nil },
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Renew(context.Background(), sub.GymID.String(), sub.ID.String(), RenewSubscriptionRequest{
		Months: 1,
		Amount: 250,
	})
	assert.NoError(t, err)
	assert.Equal(t, today.AddDate(0, 1, 0), updated.EndDate)
	assert.Equal(t, StatusActive, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, g, id string) (*Subscription, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, subscriptionerrors.ErrSubscriptionNotFound)
}

func TestService_ExpireOverdue(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		expireFn: func(ctx context.Context) (int64, error) { return 4, nil },
	}

	svc := NewService(db, repo)

	n, err := svc.ExpireOverdue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
