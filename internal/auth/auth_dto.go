package auth

type RegisterMemberRequest struct {
	GymID    string `json:"gym_id" binding:"required,uuid"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID       string `json:"id"`
	GymID    string `json:"gym_id"`
	MemberID string `json:"member_id,omitempty"`
	StaffID  string `json:"staff_id,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
