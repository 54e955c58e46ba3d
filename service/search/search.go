package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	"warehouse.GO/config"
	entity "warehouse.GO/model/entity/warehouse"
	repo "warehouse.GO/model/repository/warehouse"
)

// Service searches items in Elasticsearch when ELASTICSEARCH_HOST is set and
// falls back to SQL LIKE matching otherwise, or when the cluster errors.
type Service struct {
	db     *gorm.DB
	client *elasticsearch.Client
	index  string
}

type Result struct {
	Items   []entity.Item `json:"items"`
	Total   int           `json:"total"`
	Backend string        `json:"backend"`
}

func NewFromEnv(db *gorm.DB) *Service {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &Service{db: db}
	}
	prefix := config.GetEnv("ELASTICSEARCH_INDEX_PREFIX", "warehouse")
	svc, err := New(db, host, prefix+"_items")
	if err != nil {
		config.LogError(config.GetLogger(), "search", "NewFromEnv", host, nil, err)
		return &Service{db: db}
	}
	return svc
}

func New(db *gorm.DB, host, index string) (*Service, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return nil, err
	}
	return &Service{db: db, client: client, index: index}, nil
}

// Enabled reports whether Elasticsearch is configured.
func (s *Service) Enabled() bool { return s.client != nil }

type itemDoc struct {
	ID          uint   `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	SizeText    string `json:"size_text"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Active      bool   `json:"active"`
}

// IndexItems writes the items to the index, one document per item id.
func (s *Service) IndexItems(ctx context.Context, items []entity.Item) error {
	if s.client == nil {
		return nil
	}
	for _, it := range items {
		doc := itemDoc{ID: it.ID, SKU: it.SKUCode, Name: it.Name, SizeText: it.SizeText, Description: it.Description, Active: it.Active}
		if it.Category != nil {
			doc.Category = it.Category.Name
		}
		body, _ := json.Marshal(doc)
		res, err := s.client.Index(s.index, bytes.NewReader(body),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithDocumentID(strconv.FormatUint(uint64(it.ID), 10)),
		)
		if err != nil {
			return fmt.Errorf("index item %s: %w", it.SKUCode, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index item %s: %s", it.SKUCode, res.String())
		}
	}
	return nil
}

// Reindex pushes every item in the database to the index.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	items, err := repo.NewItemRepository(s.db.WithContext(ctx)).List(repo.ItemFilter{})
	if err != nil {
		return 0, err
	}
	return len(items), s.IndexItems(ctx, items)
}

// Items finds items by keyword, ranking name over SKU over description.
func (s *Service) Items(ctx context.Context, keyword string, size int) (*Result, error) {
	if size <= 0 {
		size = 20
	}
	if s.client != nil && keyword != "" {
		res, err := s.searchES(ctx, keyword, size)
		if err == nil {
			return res, nil
		}
		config.LogError(config.GetLogger(), "search", "Items", keyword, nil, err)
	}
	items, err := repo.NewItemRepository(s.db.WithContext(ctx)).List(repo.ItemFilter{Keyword: keyword, Limit: size})
	if err != nil {
		return nil, err
	}
	return &Result{Items: items, Total: len(items), Backend: "sql"}, nil
}

func (s *Service) searchES(ctx context.Context, keyword string, size int) (*Result, error) {
	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  keyword,
				"fields": []string{"name^3", "sku^2", "size_text", "description", "category"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source itemDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	byID, err := repo.NewItemRepository(s.db.WithContext(ctx)).FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	items := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return &Result{Items: items, Total: esResp.Hits.Total.Value, Backend: "elasticsearch"}, nil
}
