package staff

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type UpdateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type StaffResponse struct {
	ID       string `json:"id"`
	GymID    string `json:"gym_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
}
