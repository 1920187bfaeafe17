package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex"`
	Phone     *string   `gorm:"type:varchar(50)"`
	Position  *string   `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Staff) TableName() string {
	return "staff"
}
