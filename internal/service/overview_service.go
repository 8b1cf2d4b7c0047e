package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/listing"
	"github.com/alexanderramin/clientdesk/internal/repository"
)

type overviewService struct {
	overview repository.OverviewRepo
}

func NewOverviewService(overview repository.OverviewRepo) OverviewService {
	return &overviewService{overview: overview}
}

// List returns every client with its project aggregates, newest first.
func (s *overviewService) List(ctx context.Context) ([]*domain.ClientOverview, error) {
	rows, err := s.overview.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	return rows, nil
}

func (s *overviewService) Summary(ctx context.Context) (listing.Summary, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return listing.Summary{}, err
	}
	return listing.Summarize(rows), nil
}
