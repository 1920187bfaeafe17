package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-gym/internal/auth/errors"
	"go-gym/internal/member"
	"go-gym/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	RegisterMember(ctx context.Context, req RegisterMemberRequest) (AuthResponse, error)
}

type service struct {
	repo      Repository
	rbac      rbac.Service
	memberSvc member.Service
}

func NewService(repo Repository, rbacService rbac.Service, memberService member.Service) Service {
	return &service{repo: repo, rbac: rbacService, memberSvc: memberService}
}

func (s *service) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Seed the casbin policy for this gym so enforcement works right away.
	if err := s.rbac.LoadGymPolicy(user.GymID.String()); err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, err = s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err = s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(u)
	return &resp, nil
}

// RegisterMember creates the member record and its login profile. Member row
// first because the profile references it; the member row is removed again if
// the profile insert fails.
func (s *service) RegisterMember(ctx context.Context, req RegisterMemberRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	memberResp, err := s.memberSvc.Create(ctx, req.GymID, member.CreateMemberRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	memberID, err := uuid.Parse(memberResp.ID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user := &User{
		ID:       uuid.New(),
		GymID:    uuid.MustParse(req.GymID),
		MemberID: &memberID,
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     string(rbac.RoleMember),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		_ = s.memberSvc.Delete(ctx, req.GymID, memberResp.ID)
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	if err := s.rbac.LoadGymPolicy(req.GymID); err != nil {
		return AuthResponse{}, err
	}

	return mapToAuthResponse(user), nil
}

// reusable token generator
func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"gym_id":  user.GymID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(expiry).Unix(),
	}
	if user.MemberID != nil {
		claims["member_id"] = user.MemberID.String()
	}
	if user.StaffID != nil {
		claims["staff_id"] = user.StaffID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u *User) AuthResponse {
	resp := AuthResponse{
		ID:    u.ID.String(),
		GymID: u.GymID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.MemberID != nil {
		resp.MemberID = u.MemberID.String()
	}
	if u.StaffID != nil {
		resp.StaffID = u.StaffID.String()
	}
	return resp
}
