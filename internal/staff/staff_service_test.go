package staff

import (
	"context"
	"testing"

	stafferrors "go-gym/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn  func(ctx context.Context, s *Staff) error
	findAllFn func(ctx context.Context, gymID string) ([]Staff, error)
	findFn    func(ctx context.Context, gymID, id string) (*Staff, error)
	updateFn  func(ctx context.Context, s *Staff) error
	deleteFn  func(ctx context.Context, gymID, id string) error
}

func (f *fakeRepo) Create(ctx context.Context, s *Staff) error { return f.createFn(ctx, s) }
func (f *fakeRepo) FindAllByGym(ctx context.Context, gymID string) ([]Staff, error) {
	return f.findAllFn(ctx, gymID)
}
func (f *fakeRepo) FindByIDAndGym(ctx context.Context, gymID string, id string) (*Staff, error) {
	return f.findFn(ctx, gymID, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Staff) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, gymID string, id string) error {
	return f.deleteFn(ctx, gymID, id)
}

func TestService_Create(t *testing.T) {
	gymID := uuid.New().String()

	var saved Staff
	repo := &fakeRepo{
		createFn: func(ctx context.Context, s *Staff) error { saved = *s; return nil },
	}

	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), gymID, CreateStaffRequest{
		Name:     "Rani Kusuma",
		Email:    "rani@gym.test",
		Position: "front desk",
	})
	assert.NoError(t, err)
	assert.Equal(t, gymID, resp.GymID)
	assert.Equal(t, "Rani Kusuma", saved.Name)
	assert.NotNil(t, saved.Position)
	assert.Equal(t, "front desk", *saved.Position)
	assert.Nil(t, saved.Phone)
}

func TestService_Create_InvalidGymID(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), "not-a-uuid", CreateStaffRequest{
		Name:  "Rani",
		Email: "rani@gym.test",
	})
	assert.ErrorIs(t, err, stafferrors.ErrInvalidStaffID)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, s *Staff) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateStaffRequest{
		Name:  "Rani",
		Email: "rani@gym.test",
	})
	assert.ErrorIs(t, err, stafferrors.ErrStaffAlreadyExists)
}

func TestService_GetByID_ScopedToGym(t *testing.T) {
	gymID := uuid.New().String()
	staffID := uuid.New()

	repo := &fakeRepo{
		findFn: func(ctx context.Context, g, id string) (*Staff, error) {
			assert.Equal(t, gymID, g)
			// Rows belonging to another gym never come back from the repo.
			if id != staffID.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return &Staff{ID: staffID, GymID: uuid.MustParse(gymID), Name: "Rani", Email: "rani@gym.test"}, nil
		},
	}

	svc := NewService(repo)

	resp, err := svc.GetByID(context.Background(), gymID, staffID.String())
	assert.NoError(t, err)
	assert.Equal(t, staffID.String(), resp.ID)

	_, err = svc.GetByID(context.Background(), gymID, uuid.New().String())
	assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
}

func TestService_Update_PartialFields(t *testing.T) {
	gymID := uuid.New()
	phone := "0811111111"
	existing := &Staff{
		ID:    uuid.New(),
		GymID: gymID,
		Name:  "Rani",
		Email: "rani@gym.test",
		Phone: &phone,
	}

	repo := &fakeRepo{
		findFn:   func(ctx context.Context, g, id string) (*Staff, error) { return existing, nil },
		updateFn: func(ctx context.Context, s *Staff) error { return nil },
	}

	svc := NewService(repo)

	resp, err := svc.Update(context.Background(), gymID.String(), existing.ID.String(), UpdateStaffRequest{
		Position: "shift lead",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Rani", resp.Name)
	assert.Equal(t, "0811111111", resp.Phone)
	assert.Equal(t, "shift lead", resp.Position)
}

func TestService_Delete_InvalidID(t *testing.T) {
	svc := NewService(&fakeRepo{})

	err := svc.Delete(context.Background(), uuid.New().String(), "bogus")
	assert.ErrorIs(t, err, stafferrors.ErrInvalidStaffID)
}
