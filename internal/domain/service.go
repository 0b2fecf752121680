package domain

import "time"

// Service услуга студии из каталога
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
