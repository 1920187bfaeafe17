package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceQRScan = "QR_SCAN"
	SourceManual = "MANUAL"
)

type Session struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GymID      uuid.UUID  `gorm:"column:gym_id;type:uuid;not null;index"`
	MemberID   uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index"`
	CheckIn    time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut   *time.Time `gorm:"column:check_out;type:timestamptz"`
	Source     string     `gorm:"column:source;type:varchar(30);not null;default:QR_SCAN"`
	RecordedBy *uuid.UUID `gorm:"column:recorded_by;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
	Member     *MemberRef `gorm:"foreignKey:MemberID;references:ID"`
}

func (Session) TableName() string {
	return "checkins"
}

type MemberRef struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GymID uuid.UUID `gorm:"column:gym_id;type:uuid"`
	Name  string    `gorm:"column:name"`
}

func (MemberRef) TableName() string {
	return "members"
}
