package subscription

type CreateSubscriptionRequest struct {
	MemberID  string  `json:"member_id" binding:"required,uuid"`
	PlanName  string  `json:"plan_name" binding:"required"`
	PlanPrice float64 `json:"plan_price" binding:"required,gt=0"`
	Months    int     `json:"months" binding:"required,min=1,max=36"`
	Method    string  `json:"method"`
}

type RenewSubscriptionRequest struct {
	Months int     `json:"months" binding:"required,min=1,max=36"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
}

type SubscriptionResponse struct {
	ID        string            `json:"id"`
	GymID     string            `json:"gym_id"`
	MemberID  string            `json:"member_id"`
	PlanName  string            `json:"plan_name"`
	PlanPrice float64           `json:"plan_price"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Status    string            `json:"status"`
	Payments  []PaymentResponse `json:"payments,omitempty"`
}

type PaymentResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PaidOn      string  `json:"paid_on"`
	MonthsAdded int     `json:"months_added"`
}
