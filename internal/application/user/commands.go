package user

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// PasswordHasher is the external hashing collaborator. It receives plaintext
// only; the entity never sees an unhashed password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

type RegisterUserCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Roles     []string
}

// RegisterUserHandler creates a user after checking email uniqueness.
type RegisterUserHandler struct {
	Users  repository.UserRepository
	Hasher PasswordHasher
}

func NewRegisterUserHandler(users repository.UserRepository, hasher PasswordHasher) *RegisterUserHandler {
	return &RegisterUserHandler{Users: users, Hasher: hasher}
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (string, error) {
	email, err := valueobject.NewEmail(cmd.Email)
	if err != nil {
		return "", err
	}

	exists, err := h.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.NewConflictError("user with email %s already exists", email)
	}

	hash, err := h.Hasher.Hash(cmd.Password)
	if err != nil {
		return "", err
	}

	u := entity.NewUser(email, hash, cmd.FirstName, cmd.LastName, cmd.Phone)
	for _, role := range cmd.Roles {
		u.AddRole(role)
	}

	if err := h.Users.Save(ctx, u); err != nil {
		return "", err
	}
	return u.ID, nil
}

type UpdateProfileCommand struct {
	UserID    string
	FirstName string
	LastName  string
	Phone     string
}

type UpdateProfileHandler struct {
	Users repository.UserRepository
}

func NewUpdateProfileHandler(users repository.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{Users: users}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*DTO, error) {
	u, err := h.Users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	u.UpdateProfile(cmd.FirstName, cmd.LastName, cmd.Phone)
	if err := h.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return FromEntity(u), nil
}

type SetActiveCommand struct {
	UserID string
	Active bool
}

type SetActiveHandler struct {
	Users repository.UserRepository
}

func NewSetActiveHandler(users repository.UserRepository) *SetActiveHandler {
	return &SetActiveHandler{Users: users}
}

func (h *SetActiveHandler) Handle(ctx context.Context, cmd SetActiveCommand) error {
	u, err := h.Users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if cmd.Active {
		u.Activate()
	} else {
		u.Deactivate()
	}
	return h.Users.Save(ctx, u)
}

type ChangeRolesCommand struct {
	UserID string
	Add    []string
	Remove []string
}

type ChangeRolesHandler struct {
	Users repository.UserRepository
}

func NewChangeRolesHandler(users repository.UserRepository) *ChangeRolesHandler {
	return &ChangeRolesHandler{Users: users}
}

func (h *ChangeRolesHandler) Handle(ctx context.Context, cmd ChangeRolesCommand) (*DTO, error) {
	u, err := h.Users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	for _, r := range cmd.Add {
		u.AddRole(r)
	}
	for _, r := range cmd.Remove {
		u.RemoveRole(r)
	}
	if err := h.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return FromEntity(u), nil
}

type DeleteUserCommand struct {
	UserID string
}

type DeleteUserHandler struct {
	Users repository.UserRepository
}

func NewDeleteUserHandler(users repository.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{Users: users}
}

func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if _, err := h.Users.FindByID(ctx, cmd.UserID); err != nil {
		return err
	}
	return h.Users.Delete(ctx, cmd.UserID)
}
