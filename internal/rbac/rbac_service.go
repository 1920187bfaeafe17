package rbac

import (
	"sync"

	"go-gym/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadGymPolicy(gymID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
	loaded   map[string]bool
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		enforcer: enforcer,
		logger:   l,
		loaded:   map[string]bool{},
	}
}

// LoadGymPolicy seeds the enforcer with the static capability sets for one
// gym domain. Policies come from the Role enum, not from the database, so
// every role that exists in code is covered.
func (s *service) LoadGymPolicy(gymID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadGymPolicyUnlocked(gymID)
}

func (s *service) loadGymPolicyUnlocked(gymID string) error {
	if s.loaded[gymID] {
		return nil
	}

	for _, role := range []Role{RoleOwner, RoleStaff, RoleMember} {
		for _, perm := range Capabilities(role) {
			if _, err := s.enforcer.AddPolicy(string(role), gymID, perm.Resource, perm.Action); err != nil {
				return err
			}
		}
	}

	s.loaded[gymID] = true
	s.logger.Debug("rbac policy loaded", zap.String("gym_id", gymID))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role, err := ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("rbac enforce rejected unknown role",
			zap.String("role", req.Role),
			zap.String("gym_id", req.GymID),
		)
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGymPolicyUnlocked(req.GymID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(string(role), req.GymID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", string(role)),
			zap.String("gym_id", req.GymID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", string(role)),
		zap.String("gym_id", req.GymID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
