package db

import "time"

// Token is one issued session token. The newest row is the current one.
type Token struct {
	ID        uint   `gorm:"primaryKey"`
	Value     string `gorm:"size:8192"`
	CreatedAt time.Time
}
