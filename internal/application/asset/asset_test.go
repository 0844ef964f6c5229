package asset_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zagroshq/cmms-api/internal/application/asset"
	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// memoryAssetRepo is an in-memory AssetRepository for handler tests.
type memoryAssetRepo struct {
	assets map[string]*entity.Asset
	docs   map[string][]*entity.AssetDocument
	saves  int
}

func newMemoryAssetRepo() *memoryAssetRepo {
	return &memoryAssetRepo{assets: map[string]*entity.Asset{}, docs: map[string][]*entity.AssetDocument{}}
}

func (r *memoryAssetRepo) Save(_ context.Context, a *entity.Asset) error {
	cp := *a
	r.assets[a.ID] = &cp
	r.saves++
	return nil
}

func (r *memoryAssetRepo) FindByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, domain.NewNotFoundError("asset not found")
	}
	cp := *a
	return &cp, nil
}

func (r *memoryAssetRepo) FindByCode(_ context.Context, code valueobject.AssetCode) (*entity.Asset, error) {
	for _, a := range r.assets {
		if a.Code.Equals(code) {
			cp := *a
			return &cp, nil
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
	all := make([]*entity.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*entity.Asset{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memoryAssetRepo) Delete(_ context.Context, id string) error {
	delete(r.assets, id)
	return nil
}

func (r *memoryAssetRepo) AddDocument(_ context.Context, doc *entity.AssetDocument) error {
	r.docs[doc.AssetID] = append(r.docs[doc.AssetID], doc)
	return nil
}

func (r *memoryAssetRepo) FindDocuments(_ context.Context, assetID string) ([]*entity.AssetDocument, error) {
	return r.docs[assetID], nil
}

func TestCreateAsset_DuplicateCodeConflictsWithoutWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAssetRepo()
	h := asset.NewCreateAssetHandler(repo, nil, nil)

	_, err := h.Handle(ctx, asset.CreateAssetCommand{Code: "PUMP-001", Name: "Feed pump", CategoryID: "c1", LocationID: "l1"})
	require.NoError(t, err)
	savesBefore := repo.saves

	// Same code, different case: normalization makes it a duplicate.
	_, err = h.Handle(ctx, asset.CreateAssetCommand{Code: "pump-001", Name: "Another", CategoryID: "c1", LocationID: "l1"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, savesBefore, repo.saves, "conflict must not write")
	assert.Len(t, repo.assets, 1)
}

func TestCreateAsset_ThenGetByIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAssetRepo()
	create := asset.NewCreateAssetHandler(repo, nil, nil)
	get := asset.NewGetByIDHandler(repo)

	id, err := create.Handle(ctx, asset.CreateAssetCommand{Code: "hvac-12", Name: "Roof HVAC", CategoryID: "c1", LocationID: "l1"})
	require.NoError(t, err)

	dto, err := get.Handle(ctx, asset.GetByIDQuery{AssetID: id})
	require.NoError(t, err)
	assert.Equal(t, "HVAC-12", dto.Code)
	assert.Equal(t, "operational", dto.Status)
	assert.Equal(t, valueobject.CriticalityMedium.Int(), dto.Criticality)
}

func TestCreateAsset_InvalidCodeIsValidationError(t *testing.T) {
	repo := newMemoryAssetRepo()
	h := asset.NewCreateAssetHandler(repo, nil, nil)
	_, err := h.Handle(context.Background(), asset.CreateAssetCommand{Code: "  ", Name: "x"})
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, repo.saves)
}

func TestGetAssetByID_Missing(t *testing.T) {
	h := asset.NewGetByIDHandler(newMemoryAssetRepo())
	_, err := h.Handle(context.Background(), asset.GetByIDQuery{AssetID: "nope"})
	assert.True(t, domain.IsNotFound(err))
}

func TestChangeStatus_AnyTransitionAllowed(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAssetRepo()
	create := asset.NewCreateAssetHandler(repo, nil, nil)
	change := asset.NewChangeStatusHandler(repo, nil, nil)

	id, err := create.Handle(ctx, asset.CreateAssetCommand{Code: "GEN-7", Name: "Generator", CategoryID: "c1", LocationID: "l1"})
	require.NoError(t, err)

	dto, err := change.Handle(ctx, asset.ChangeStatusCommand{AssetID: id, Status: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", dto.Status)

	// Maintenance straight back to operational: intentionally permissive.
	dto, err = change.Handle(ctx, asset.ChangeStatusCommand{AssetID: id, Status: "operational"})
	require.NoError(t, err)
	assert.Equal(t, "operational", dto.Status)

	_, err = change.Handle(ctx, asset.ChangeStatusCommand{AssetID: id, Status: "melted"})
	assert.True(t, domain.IsValidation(err))
}

func TestListAssets_PaginationReturnsSecondPageNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAssetRepo()

	// Seed 25 assets with strictly increasing creation times.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		code, err := valueobject.NewAssetCode(fmt.Sprintf("A-%03d", i))
		require.NoError(t, err)
		a := entity.NewAsset(code, fmt.Sprintf("asset %d", i), "c1", "l1")
		a.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Save(ctx, a))
	}

	list := asset.NewListHandler(repo)
	page2, err := list.Handle(ctx, asset.ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page2, 10)

	// Newest first: page 2 holds the 11th..20th most recent, i.e. A-014..A-005.
	assert.Equal(t, "A-014", page2[0].Code)
	assert.Equal(t, "A-005", page2[9].Code)
}

func TestUpdateCriticality(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryAssetRepo()
	create := asset.NewCreateAssetHandler(repo, nil, nil)
	update := asset.NewUpdateCriticalityHandler(repo)

	id, err := create.Handle(ctx, asset.CreateAssetCommand{Code: "CPR-1", Name: "Compressor", CategoryID: "c1", LocationID: "l1"})
	require.NoError(t, err)

	dto, err := update.Handle(ctx, asset.UpdateCriticalityCommand{AssetID: id, Level: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Criticality)

	_, err = update.Handle(ctx, asset.UpdateCriticalityCommand{AssetID: id, Level: 2})
	assert.True(t, domain.IsValidation(err))
}
