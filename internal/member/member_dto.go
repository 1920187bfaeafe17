package member

type CreateMemberRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	MembershipNumber string `json:"membership_number"`
}

type UpdateMemberRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type MemberResponse struct {
	ID               string `json:"id"`
	GymID            string `json:"gym_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	MembershipNumber string `json:"membership_number"`
	CreatedAt        string `json:"created_at"`
}
