// Package resources serves educational security resources.
package resources

import (
	"context"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
)

type Service struct {
	repo ports.ResourceRepository
}

func New(repo ports.ResourceRepository) *Service { return &Service{repo: repo} }

// Add stores a new resource.
func (s *Service) Add(ctx context.Context, title, content, category string) (domain.Resource, error) {
	if title == "" || category == "" {
		return domain.Resource{}, &domain.ValidationError{Msg: "title and category are required"}
	}
	return s.repo.InsertResource(ctx, domain.Resource{Title: title, Content: content, Category: category})
}

// List returns resources, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]domain.Resource, error) {
	return s.repo.ListResources(ctx, category)
}
