package reference

import (
	"context"
	"time"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
)

// Reference data (categories, locations) is simple enough that commands and
// queries share one file.

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func categoryFromEntity(c *entity.AssetCategory) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		ParentID:    c.ParentID,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

type LocationDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ParentID  string `json:"parent_id,omitempty"`
	Address   string `json:"address,omitempty"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at"`
}

func locationFromEntity(l *entity.Location) *LocationDTO {
	return &LocationDTO{
		ID:        l.ID,
		Name:      l.Name,
		ParentID:  l.ParentID,
		Address:   l.Address,
		Type:      l.Type,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

type CreateCategoryCommand struct {
	Name        string
	ParentID    string
	Description string
	Icon        string
}

type CreateLocationCommand struct {
	Name     string
	ParentID string
	Address  string
	Type     string
}

// Service bundles the reference-data use cases behind one dependency set.
type Service struct {
	Categories repository.AssetCategoryRepository
	Locations  repository.LocationRepository
}

func NewService(categories repository.AssetCategoryRepository, locations repository.LocationRepository) *Service {
	return &Service{Categories: categories, Locations: locations}
}

func (s *Service) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (string, error) {
	if cmd.Name == "" {
		return "", domain.NewValidationError("category name cannot be empty")
	}
	c := entity.NewAssetCategory(cmd.Name, cmd.ParentID, cmd.Description, cmd.Icon)
	if err := s.Categories.Save(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *Service) ListCategories(ctx context.Context, page, limit int) ([]*CategoryDTO, error) {
	rows, err := s.Categories.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*CategoryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, categoryFromEntity(c))
	}
	return out, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.Categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Categories.Delete(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, cmd CreateLocationCommand) (string, error) {
	if cmd.Name == "" {
		return "", domain.NewValidationError("location name cannot be empty")
	}
	l := entity.NewLocation(cmd.Name, cmd.ParentID, cmd.Address, cmd.Type)
	if err := s.Locations.Save(ctx, l); err != nil {
		return "", err
	}
	return l.ID, nil
}

func (s *Service) ListLocations(ctx context.Context, page, limit int) ([]*LocationDTO, error) {
	rows, err := s.Locations.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*LocationDTO, 0, len(rows))
	for _, l := range rows {
		out = append(out, locationFromEntity(l))
	}
	return out, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	if _, err := s.Locations.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Locations.Delete(ctx, id)
}
