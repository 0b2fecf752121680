package models

import (
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
)

// RegisterClientRequest данные клиента из формы записи
type RegisterClientRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName,omitempty"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	return &ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
