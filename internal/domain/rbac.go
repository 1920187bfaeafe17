package domain

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	GymID    string `json:"gym_id" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
