package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
)

// PortfolioService builds the public read-only aggregate for one user.
type PortfolioService struct {
	Store store.Store
	Cache cache.Portfolio
}

// GetEncoded returns the JSON aggregate for username, served from the cache
// when possible.
func (s *PortfolioService) GetEncoded(ctx context.Context, username string) (json.RawMessage, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, domain.NormalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	return s.Cache.Fetch(ctx, u.ID, func(ctx context.Context) ([]byte, error) {
		p, err := s.Build(ctx, u)
		if err != nil {
			return nil, err
		}
		return json.Marshal(p)
	})
}

// Build reads every collection of u concurrently and composes the
// aggregate. Missing collections stay empty. Projects are limited to the
// featured ones.
func (s *PortfolioService) Build(ctx context.Context, u domain.User) (domain.Portfolio, error) {
	p := domain.NewPortfolio(u.Public())

	var intro []domain.Document
	slots := map[string]*[]domain.Document{
		domain.Introductions.AggregateKey:  &intro,
		domain.Educations.AggregateKey:     &p.Educations,
		domain.Experiences.AggregateKey:    &p.Experiences,
		domain.Skills.AggregateKey:         &p.Skills,
		domain.Projects.AggregateKey:       &p.Projects,
		domain.Certifications.AggregateKey: &p.Certifications,
		domain.SocialLinks.AggregateKey:    &p.SocialLinks,
		domain.Testimonials.AggregateKey:   &p.Testimonials,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, schema := range domain.Collections {
		slot, ok := slots[schema.AggregateKey]
		if !ok {
			continue
		}

		q := store.ListQuery{SortField: schema.SortBy, Desc: true}
		if schema.Collection == domain.Projects.Collection {
			q.Where = []store.Match{{Field: "featured", Value: true}}
		}

		g.Go(func() error {
			docs, err := s.Store.Documents().ListByOwner(gctx, schema.Collection, u.ID, q)
			if err != nil {
				return fmt.Errorf("load %s: %w", schema.Collection, err)
			}
			if docs != nil {
				*slot = docs
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Portfolio{}, err
	}

	if len(intro) > 0 {
		p.Introduction = intro[0]
	}
	return p, nil
}
