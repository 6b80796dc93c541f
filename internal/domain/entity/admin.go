package entity

import "time"

// Admin is a dashboard operator. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
