package gym

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	gymerrors "go-gym/internal/gym/errors"
	"go-gym/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	credentialKeyPrefix = "gym:credential:"
	credentialCacheTTL  = 5 * time.Minute
)

func GetCredentialCacheKey(gymID string) string {
	return credentialKeyPrefix + gymID
}

type Service interface {
	GetByID(ctx context.Context, gymID string) (GymResponse, error)
	GetCredential(ctx context.Context, gymID string) (CredentialResponse, error)
	RotateCredential(ctx context.Context, gymID string) (CredentialResponse, error)

	// VerifyCredential reports whether the presented token matches the gym's
	// current QR credential. A false result with nil error is a mismatch; an
	// error means the answer could not be determined.
	VerifyCredential(ctx context.Context, gymID, presented string) (bool, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("gym.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gym.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, gymID string) (GymResponse, error) {
	if _, err := uuid.Parse(gymID); err != nil {
		return GymResponse{}, gymerrors.ErrInvalidGymID
	}

	g, err := s.repo.FindByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GymResponse{}, gymerrors.ErrGymNotFound
		}
		return GymResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Data store is temporarily unavailable, please retry", 503)
	}

	resp := GymResponse{ID: g.ID.String(), Name: g.Name}
	if g.Address != nil {
		resp.Address = *g.Address
	}
	return resp, nil
}

// GetCredential returns the current QR token for a gym. Scans hit this on
// every toggle, so it is cached in redis and deduplicated with singleflight.
func (s *service) GetCredential(ctx context.Context, gymID string) (CredentialResponse, error) {
	cacheKey := GetCredentialCacheKey(gymID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return CredentialResponse{GymID: gymID, QRValue: cached}, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		cred, err := s.repo.FindCurrentCredential(ctx, gymID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gymerrors.ErrNoCredential
			}
			return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Data store is temporarily unavailable, please retry", 503)
		}

		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, cred.QRValue, credentialCacheTTL)
		}

		return CredentialResponse{
			GymID:    cred.GymID.String(),
			QRValue:  cred.QRValue,
			IssuedAt: cred.CreatedAt.Format(time.RFC3339),
		}, nil
	})
	if err != nil {
		return CredentialResponse{}, err
	}

	return v.(CredentialResponse), nil
}

func (s *service) RotateCredential(ctx context.Context, gymID string) (CredentialResponse, error) {
	gID, err := uuid.Parse(gymID)
	if err != nil {
		return CredentialResponse{}, gymerrors.ErrInvalidGymID
	}

	cred := &QRCredential{
		ID:        uuid.New(),
		GymID:     gID,
		QRValue:   newToken(gymID),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.ReplaceCredential(ctx, cred); err != nil {
		s.logger.Error("rotate credential failed", zap.String("gym_id", gymID), zap.Error(err))
		return CredentialResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Data store is temporarily unavailable, please retry", 503)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, GetCredentialCacheKey(gymID)).Err(); err != nil {
			s.logger.Error("failed to invalidate credential cache",
				zap.String("gym_id", gymID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("credential rotated", zap.String("gym_id", gymID))

	return CredentialResponse{
		GymID:    gymID,
		QRValue:  cred.QRValue,
		IssuedAt: cred.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) VerifyCredential(ctx context.Context, gymID, presented string) (bool, error) {
	current, err := s.GetCredential(ctx, gymID)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(current.QRValue), []byte(presented)) == 1, nil
}

func newToken(gymID string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("GYM_%s_%d_%s", gymID, time.Now().Unix(), hex.EncodeToString(buf))
}
