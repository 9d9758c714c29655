// internal/domain/waitlist/entity.go
package waitlist

import (
	"time"
)

// Entry represents a waitlist signup collected before launch access is
// granted.
type Entry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:150" json:"name"`
	Email         string    `gorm:"not null;size:150;index" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	PreferredSize string    `gorm:"size:20" json:"preferred_size"`
	AccessGranted bool      `gorm:"default:false" json:"access_granted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "waitlist_entries"
}
