package gym

type GymResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type CredentialResponse struct {
	GymID    string `json:"gym_id"`
	QRValue  string `json:"qr_value"`
	IssuedAt string `json:"issued_at"`
}

type VerifyCredentialRequest struct {
	QRToken string `json:"qr_token" binding:"required"`
}
