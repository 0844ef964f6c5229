package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/application/user"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type memoryUserRepo struct {
	users map[string]*entity.User
	saves int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*entity.User{}}
}

func (r *memoryUserRepo) Save(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	r.saves++
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email.Equals(email) {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user not found")
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context, page, limit int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) FindByRole(_ context.Context, role string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		if u.Active && u.HasRole(role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// fakeHasher keeps tests fast; bcrypt is covered by the helpers package.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Compare(hash, plain string) bool   { return hash == "hashed:"+plain }

func TestRegisterUser_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	h := user.NewRegisterUserHandler(repo, fakeHasher{})

	_, err := h.Handle(ctx, user.RegisterUserCommand{Email: "tech@plant.io", Password: "s3cret", FirstName: "Ada", LastName: "Byron"})
	require.NoError(t, err)

	// Email normalization makes the uppercase variant a duplicate.
	_, err = h.Handle(ctx, user.RegisterUserCommand{Email: "TECH@PLANT.IO", Password: "other", FirstName: "B", LastName: "C"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Len(t, repo.users, 1)
}

func TestRegisterUser_HashesBeforeStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	h := user.NewRegisterUserHandler(repo, fakeHasher{})

	id, err := h.Handle(ctx, user.RegisterUserCommand{Email: "ops@plant.io", Password: "hunter2", FirstName: "Ops", LastName: "Lead", Roles: []string{entity.RoleManager}})
	require.NoError(t, err)

	u, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hashed:hunter2", u.PasswordHash)
	assert.True(t, u.HasRole(entity.RoleManager))
	assert.True(t, u.HasRole(entity.RoleUser), "base role always present")
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	reg := user.NewRegisterUserHandler(repo, fakeHasher{})
	auth := user.NewAuthenticateHandler(repo, fakeHasher{})

	id, err := reg.Handle(ctx, user.RegisterUserCommand{Email: "m@plant.io", Password: "correct", FirstName: "M", LastName: "W"})
	require.NoError(t, err)

	u, err := auth.Handle(ctx, user.AuthenticateQuery{Email: "m@plant.io", Password: "correct"})
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = auth.Handle(ctx, user.AuthenticateQuery{Email: "m@plant.io", Password: "wrong"})
	assert.True(t, domain.IsValidation(err))

	// Unknown email reports the same generic error as a bad password.
	_, err = auth.Handle(ctx, user.AuthenticateQuery{Email: "ghost@plant.io", Password: "correct"})
	assert.True(t, domain.IsValidation(err))

	require.NoError(t, user.NewSetActiveHandler(repo).Handle(ctx, user.SetActiveCommand{UserID: id, Active: false}))
	_, err = auth.Handle(ctx, user.AuthenticateQuery{Email: "m@plant.io", Password: "correct"})
	assert.True(t, domain.IsValidation(err))
}

func TestChangeRoles(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	reg := user.NewRegisterUserHandler(repo, fakeHasher{})
	change := user.NewChangeRolesHandler(repo)

	id, err := reg.Handle(ctx, user.RegisterUserCommand{Email: "t@plant.io", Password: "x", FirstName: "T", LastName: "A"})
	require.NoError(t, err)

	dto, err := change.Handle(ctx, user.ChangeRolesCommand{UserID: id, Add: []string{entity.RoleTechnician, entity.RoleTechnician}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleUser, entity.RoleTechnician}, dto.Roles)

	dto, err = change.Handle(ctx, user.ChangeRolesCommand{UserID: id, Remove: []string{entity.RoleTechnician}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleUser}, dto.Roles)
}
