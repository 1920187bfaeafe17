package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	GymID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex"`
	Phone            *string   `gorm:"type:varchar(50)"`
	Address          *string   `gorm:"type:text"`
	MembershipNumber string    `gorm:"type:varchar(30);uniqueIndex:uq_membership_number"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Member) TableName() string {
	return "members"
}
