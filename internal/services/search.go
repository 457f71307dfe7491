package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"shop_backoffice/internal/models"
)

const (
	IndexProducts   = "products"
	IndexCategories = "categories"
	IndexUsers      = "user_infos"

	indexTimeout = 10 * time.Second
)

// ErrSearchDisabled is returned when no Elasticsearch client is configured.
// Callers fall back to filtering the repository listing.
var ErrSearchDisabled = errors.New("elasticsearch is not configured")

// Search indexes catalog entities and runs name searches against them.
type Search struct {
	es *elasticsearch.Client
}

// NewSearch accepts a nil client; every call then reports ErrSearchDisabled
// or does nothing.
func NewSearch(es *elasticsearch.Client) *Search {
	return &Search{es: es}
}

func (s *Search) Enabled() bool {
	return s != nil && s.es != nil
}

//
// --- INDEXING ---
//

// indexAsync writes doc in the background. The request context is not reused
// since it ends with the response.
func (s *Search) indexAsync(index, id string, doc any) {
	if !s.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.indexDoc(ctx, index, id, doc, "true"); err != nil {
			log.Printf("❌ %v", err)
		}
	}()
}

func (s *Search) indexDoc(ctx context.Context, index, id string, doc any, refresh string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s for indexing: %w", index, id, err)
	}
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
		Refresh:    refresh,
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("elasticsearch index %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch rejected %s/%s: %s", index, id, res.String())
	}
	return nil
}

// Source lists everything Reindex copies into the search indexes.
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.ProductInfo, error)
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
}

// Reindex writes every stored category, product and user, so records that
// were created outside the API (seed files, an existing cluster) are
// searchable. It returns the number of documents written.
func (s *Search) Reindex(ctx context.Context, src Source) (int, error) {
	if !s.Enabled() {
		return 0, ErrSearchDisabled
	}

	categories, err := src.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	products, err := src.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	users, err := src.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	n := 0
	for _, c := range categories {
		if err := s.indexDoc(ctx, IndexCategories, c.ID, c, ""); err != nil {
			return n, err
		}
		n++
	}
	for _, p := range products {
		if err := s.indexDoc(ctx, IndexProducts, p.ID, p, ""); err != nil {
			return n, err
		}
		n++
	}
	for _, u := range users {
		u.UserPassword = ""
		if err := s.indexDoc(ctx, IndexUsers, u.ID, u, ""); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Search) deleteAsync(index, id string) {
	if !s.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()

		res, err := esapi.DeleteRequest{Index: index, DocumentID: id, Refresh: "true"}.Do(ctx, s.es)
		if err != nil {
			log.Printf("❌ elasticsearch delete %s/%s: %v", index, id, err)
			return
		}
		defer res.Body.Close()
		if res.IsError() && res.StatusCode != 404 {
			log.Printf("⚠️ elasticsearch delete %s/%s: %s", index, id, res.String())
		}
	}()
}

func (s *Search) IndexProduct(p models.ProductInfo) {
	s.indexAsync(IndexProducts, p.ID, p)
}

func (s *Search) IndexCategory(c models.Category) {
	s.indexAsync(IndexCategories, c.ID, c)
}

func (s *Search) DeleteProduct(id string) {
	s.deleteAsync(IndexProducts, id)
}

func (s *Search) DeleteCategory(id string) {
	s.deleteAsync(IndexCategories, id)
}

func (s *Search) DeleteUser(id string) {
	s.deleteAsync(IndexUsers, id)
}

// IndexUser never indexes the password hash.
func (s *Search) IndexUser(u models.UserInfo) {
	u.UserPassword = ""
	s.indexAsync(IndexUsers, u.ID, u)
}

//
// --- SEARCH ---
//

func (s *Search) SearchProducts(ctx context.Context, query string) ([]models.ProductInfo, error) {
	return search[models.ProductInfo](ctx, s, IndexProducts, query, "name", "description", "id")
}

func (s *Search) SearchCategories(ctx context.Context, query string) ([]models.Category, error) {
	return search[models.Category](ctx, s, IndexCategories, query, "categoryName")
}

func (s *Search) SearchUsers(ctx context.Context, query string) ([]models.UserInfo, error) {
	return search[models.UserInfo](ctx, s, IndexUsers, query, "userName", "userFullName")
}

type searchResponse[T any] struct {
	Hits struct {
		Hits []struct {
			Source T `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func search[T any](ctx context.Context, s *Search, index, query string, fields ...string) ([]T, error) {
	if !s.Enabled() {
		return nil, ErrSearchDisabled
	}

	var buf bytes.Buffer
	q := map[string]any{
		"size": 1000,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"type":   "phrase_prefix",
				"fields": fields,
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := esapi.SearchRequest{Index: []string{index}, Body: &buf}.Do(ctx, s.es)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search %s: %s", index, res.Status())
	}

	var r searchResponse[T]
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search %s: %w", index, err)
	}

	out := make([]T, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
