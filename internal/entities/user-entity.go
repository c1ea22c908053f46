package entities

import "time"

type User struct {
	ID             uint64
	Username       string
	Email          string
	FullName       string
	Role           string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
