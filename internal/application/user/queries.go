package user

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type GetByIDQuery struct {
	UserID string
}

type GetByIDHandler struct {
	Users repository.UserRepository
}

func NewGetByIDHandler(users repository.UserRepository) *GetByIDHandler {
	return &GetByIDHandler{Users: users}
}

func (h *GetByIDHandler) Handle(ctx context.Context, q GetByIDQuery) (*DTO, error) {
	u, err := h.Users.FindByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return FromEntity(u), nil
}

type ListQuery struct {
	Page  int
	Limit int
}

type ListHandler struct {
	Users repository.UserRepository
}

func NewListHandler(users repository.UserRepository) *ListHandler {
	return &ListHandler{Users: users}
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) ([]*DTO, error) {
	us, err := h.Users.FindAll(ctx, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*DTO, 0, len(us))
	for _, u := range us {
		out = append(out, FromEntity(u))
	}
	return out, nil
}

// AuthenticateQuery verifies credentials for the HTTP login flow. It returns
// the entity (not a DTO) because the boundary needs roles and the active flag
// to build session state.
type AuthenticateQuery struct {
	Email    string
	Password string
}

type AuthenticateHandler struct {
	Users  repository.UserRepository
	Hasher PasswordHasher
}

func NewAuthenticateHandler(users repository.UserRepository, hasher PasswordHasher) *AuthenticateHandler {
	return &AuthenticateHandler{Users: users, Hasher: hasher}
}

func (h *AuthenticateHandler) Handle(ctx context.Context, q AuthenticateQuery) (*entity.User, error) {
	email, err := valueobject.NewEmail(q.Email)
	if err != nil {
		return nil, domain.NewValidationError("invalid credentials")
	}
	u, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewValidationError("invalid credentials")
	}
	if !u.Active {
		return nil, domain.NewValidationError("account is deactivated")
	}
	if !h.Hasher.Compare(u.PasswordHash, q.Password) {
		return nil, domain.NewValidationError("invalid credentials")
	}
	return u, nil
}
