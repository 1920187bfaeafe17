package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

type Subscription struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GymID     uuid.UUID      `gorm:"column:gym_id;type:uuid;not null;index"`
	MemberID  uuid.UUID      `gorm:"column:member_id;type:uuid;not null;index"`
	PlanName  string         `gorm:"column:plan_name;type:varchar(100);not null"`
	PlanPrice float64        `gorm:"column:plan_price;type:numeric(12,2);not null"`
	StartDate time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time      `gorm:"column:end_date;type:date;not null"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Payments  []Payment      `gorm:"foreignKey:SubscriptionID;references:ID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type Payment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GymID          uuid.UUID `gorm:"column:gym_id;type:uuid;not null;index"`
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;not null;index"`
	Amount         float64   `gorm:"column:amount;type:numeric(12,2);not null"`
	Method         string    `gorm:"column:method;type:varchar(30);not null;default:cash"`
	PaidOn         time.Time `gorm:"column:paid_on;type:date;not null"`
	MonthsAdded    int       `gorm:"column:months_added;not null;default:1"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
