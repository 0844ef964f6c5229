package workorder_test

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

type memoryAssetRepo struct {
	assets map[string]*entity.Asset
}

func newMemoryAssetRepo() *memoryAssetRepo {
	return &memoryAssetRepo{assets: map[string]*entity.Asset{}}
}

func (r *memoryAssetRepo) Save(_ context.Context, a *entity.Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *memoryAssetRepo) FindByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, domain.NewNotFoundError("asset not found")
	}
	return a, nil
}

func (r *memoryAssetRepo) FindByCode(_ context.Context, code valueobject.AssetCode) (*entity.Asset, error) {
	for _, a := range r.assets {
		if a.Code.Equals(code) {
			return a, nil
		}
	}
	return nil, domain.NewNotFoundError("asset not found")
}

func (r *memoryAssetRepo) ExistsByCode(ctx context.Context, code valueobject.AssetCode) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryAssetRepo) FindAll(_ context.Context, page, limit int) ([]*entity.Asset, error) {
	out := make([]*entity.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryAssetRepo) Delete(_ context.Context, id string) error {
	delete(r.assets, id)
	return nil
}

func (r *memoryAssetRepo) AddDocument(_ context.Context, _ *entity.AssetDocument) error { return nil }

func (r *memoryAssetRepo) FindDocuments(_ context.Context, _ string) ([]*entity.AssetDocument, error) {
	return nil, nil
}

type memoryUserRepo struct {
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*entity.User{}}
}

func (r *memoryUserRepo) Save(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
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

func (r *memoryUserRepo) FindByRole(_ context.Context, role string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		if u.Active && u.HasRole(role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context, page, limit int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}
