package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"admin"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialised
	Role      RoleType  `json:"role" db:"role" example:"admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
