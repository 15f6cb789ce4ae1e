package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"size:150;not null" json:"first_name"`
	LastName     string    `gorm:"size:150;not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:'user'" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
