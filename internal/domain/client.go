package domain

import (
	"strings"
	"time"
)

// Client клиент студии
type Client struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	CreatedAt time.Time
}

// FullName имя и фамилия через пробел
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
