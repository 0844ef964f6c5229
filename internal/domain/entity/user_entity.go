package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// RoleUser is the base role every user holds. Roles() always unions it in,
// so it is a derived view rather than stored state.
const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// User is the aggregate root for the user domain.
// PasswordHash is opaque here; hashing lives behind the PasswordHasher
// collaborator in the application layer.
type User struct {
	ID           string
	Email        valueobject.Email
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser generates the identity and applies defaults (active, base role).
func NewUser(email valueobject.Email, passwordHash, firstName, lastName, phone string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		roles:        []string{RoleUser},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RestoreUser reconstitutes a user from storage without touching timestamps.
func RestoreUser(id string, email valueobject.Email, passwordHash, firstName, lastName, phone string, roles []string, active bool, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		roles:        roles,
		Active:       active,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

func (u *User) Activate() {
	u.Active = true
	u.touch()
}

func (u *User) Deactivate() {
	u.Active = false
	u.touch()
}

// AddRole is idempotent: adding an already-held role is a no-op.
func (u *User) AddRole(role string) {
	for _, r := range u.roles {
		if r == role {
			return
		}
	}
	u.roles = append(u.roles, role)
	u.touch()
}

// RemoveRole is a no-op when the role is absent.
func (u *User) RemoveRole(role string) {
	kept := u.roles[:0]
	for _, r := range u.roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	u.roles = kept
	u.touch()
}

// Roles returns the stored roles unioned with the base role, deduplicated.
func (u *User) Roles() []string {
	out := make([]string, 0, len(u.roles)+1)
	seen := make(map[string]bool, len(u.roles)+1)
	for _, r := range u.roles {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	if !seen[RoleUser] {
		out = append(out, RoleUser)
	}
	return out
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// UpdateProfile replaces the name and phone fields atomically.
func (u *User) UpdateProfile(firstName, lastName, phone string) {
	u.FirstName = firstName
	u.LastName = lastName
	u.Phone = phone
	u.touch()
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}
