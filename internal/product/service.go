package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/singleflight"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

type Service struct {
	repo  Repository
	cache Cache // optional
	log   *slog.Logger
	sfg   singleflight.Group
}

// NewService builds the catalog service. cache may be nil.
func NewService(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// List returns the full catalog, served from the cache when one is configured.
// Concurrent misses share a single database read.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	v, err, _ := s.sfg.Do(catalogKey, func() (interface{}, error) {
		if s.cache != nil {
			products, err := s.cache.Get(ctx)
			if err == nil {
				return products, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				s.log.Warn("catalog cache read failed", "error", err)
			}
		}

		products, err := s.repo.List(ctx)
		if err != nil {
			return nil, apperr.Storage(err)
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, products); err != nil {
				s.log.Warn("catalog cache write failed", "error", err)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing a flight must not alias one slice
	products := v.([]Product)
	out := make([]Product, len(products))
	copy(out, products)
	return out, nil
}

// GetByIDs reads authoritative product rows, bypassing the cache.
func (s *Service) GetByIDs(ctx context.Context, ids []int64) (map[int64]Product, error) {
	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return products, nil
}

// Seed inserts the products listed in the JSON file at path when the catalog
// is empty. A missing file is not an error. It returns the number of rows
// inserted.
func (s *Service) Seed(ctx context.Context, path string) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("seed file not found, catalog left empty", "path", path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}
	for i, p := range products {
		if p.Name == "" || p.Price < 0 {
			return 0, fmt.Errorf("seed product %d: name is required and price must be >= 0", i)
		}
	}

	inserted := 0
	for _, p := range products {
		p.ID = 0
		if _, err := s.repo.Create(ctx, p); err != nil {
			return inserted, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		inserted++
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("catalog cache invalidation failed", "error", err)
		}
	}
	s.log.Info("database seeded with products", "path", path, "count", inserted)
	return inserted, nil
}
