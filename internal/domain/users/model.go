package users

import "time"

type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 8
	MaxPasswordLength = 72 // límite de bcrypt
)
