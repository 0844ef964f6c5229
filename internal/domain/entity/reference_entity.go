package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssetCategory and Location are flat reference data. They support an
// optional parent id for hierarchies but the tree is not walked in this layer.

type AssetCategory struct {
	ID          string
	Name        string
	ParentID    string
	Description string
	Icon        string
	CreatedAt   time.Time
}

func NewAssetCategory(name, parentID, description, icon string) *AssetCategory {
	return &AssetCategory{
		ID:          uuid.NewString(),
		Name:        name,
		ParentID:    parentID,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now().UTC(),
	}
}

type Location struct {
	ID        string
	Name      string
	ParentID  string
	Address   string
	Type      string
	CreatedAt time.Time
}

func NewLocation(name, parentID, address, locType string) *Location {
	return &Location{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		Address:   address,
		Type:      locType,
		CreatedAt: time.Now().UTC(),
	}
}

// AssetDocument is a file attached to an asset (manuals, photos). The file
// itself lives in object storage; FileURL points at it.
type AssetDocument struct {
	ID         string
	AssetID    string
	Title      string
	FileURL    string
	FileType   string
	UploadedBy string
	UploadedAt time.Time
}

func NewAssetDocument(assetID, title, fileURL, fileType, uploadedBy string) *AssetDocument {
	return &AssetDocument{
		ID:         uuid.NewString(),
		AssetID:    assetID,
		Title:      title,
		FileURL:    fileURL,
		FileType:   fileType,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}
}
