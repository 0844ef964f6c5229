package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/internal/application/asset"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// AssetIndex mirrors asset documents into Elasticsearch for full-text search.
// Postgres stays the source of truth; the index trails writes.
type AssetIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewAssetIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *AssetIndex {
	return &AssetIndex{es: es, index: index, logger: logger}
}

func (i *AssetIndex) Index(ctx context.Context, a *entity.Asset) error {
	if i.es == nil || i.index == "" {
		return nil
	}
	doc := map[string]any{
		"id":           a.ID,
		"code":         a.Code.String(),
		"name":         a.Name,
		"manufacturer": a.Manufacturer,
		"model":        a.Model,
		"serial":       a.SerialNumber,
		"status":       a.Status.String(),
		"criticality":  a.Criticality.Int(),
		"created_at":   a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: i.index, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && i.logger != nil {
		i.logger.WithField("status", res.Status()).WithField("asset_id", a.ID).Warn("es index response error")
	}
	return nil
}

func (i *AssetIndex) Remove(ctx context.Context, id string) error {
	if i.es == nil || i.index == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// Search runs a multi_match over code, name, manufacturer and model, with the
// code boosted. Hits come back as partial DTOs built from the index document.
func (i *AssetIndex) Search(ctx context.Context, query string, size int) ([]*asset.DTO, error) {
	if i.es == nil || i.index == "" {
		return []*asset.DTO{}, nil
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"code^2", "name", "manufacturer", "model", "serial"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string `json:"_id"`
				Source struct {
					ID           string `json:"id"`
					Code         string `json:"code"`
					Name         string `json:"name"`
					Manufacturer string `json:"manufacturer"`
					Model        string `json:"model"`
					Serial       string `json:"serial"`
					Status       string `json:"status"`
					Criticality  int    `json:"criticality"`
					CreatedAt    string `json:"created_at"`
					UpdatedAt    string `json:"updated_at"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*asset.DTO, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		src := h.Source
		out = append(out, &asset.DTO{
			ID:           src.ID,
			Code:         src.Code,
			Name:         src.Name,
			Manufacturer: src.Manufacturer,
			Model:        src.Model,
			SerialNumber: src.Serial,
			Status:       src.Status,
			Criticality:  src.Criticality,
			CreatedAt:    src.CreatedAt,
			UpdatedAt:    src.UpdatedAt,
		})
	}
	return out, nil
}

var _ asset.Index = (*AssetIndex)(nil)
