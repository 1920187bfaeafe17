package gym

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gym struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   *string   `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Gym) TableName() string {
	return "gyms"
}

// QRCredential is the rotating shared secret members scan at the door. The
// newest row per gym is the only valid one.
type QRCredential struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;index"`
	QRValue   string    `gorm:"column:qr_value;type:varchar(255);not null"`
	CreatedAt time.Time
}

func (QRCredential) TableName() string {
	return "universal_qr"
}
