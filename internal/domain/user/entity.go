// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null;size:150" json:"email"`
	Password  string         `gorm:"not null;size:255" json:"-"`
	FirstName string         `gorm:"not null;size:100" json:"first_name"`
	LastName  string         `gorm:"not null;size:100" json:"last_name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return u.FirstName + " " + u.LastName
}
