package user

import (
	"time"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

// DTO is the flat transfer shape for the API boundary. The password hash
// never leaves the domain.
type DTO struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	FullName  string   `json:"full_name"`
	Phone     string   `json:"phone,omitempty"`
	Roles     []string `json:"roles"`
	Active    bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func FromEntity(u *entity.User) *DTO {
	return &DTO{
		ID:        u.ID,
		Email:     u.Email.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Roles:     u.Roles(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
