package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports"
)

// StatsService summarizes the installed assets per category
type StatsService struct {
	assetRepo ports.AssetRepository
}

func NewStatsService(assetRepo ports.AssetRepository) *StatsService {
	return &StatsService{
		assetRepo: assetRepo,
	}
}

// CategoryStats holds the totals of one category
type CategoryStats struct {
	Category domain.Category
	Count    int
	SizeKB   float64
	Largest  *domain.Asset
}

// StatsResponse lists every scannable category in scan order,
// including the empty ones
type StatsResponse struct {
	Categories []CategoryStats
	Total      int
	TotalKB    float64
}

func (s *StatsService) Execute(ctx context.Context) (*StatsResponse, error) {
	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	categories := domain.Categories()
	stats := make([]CategoryStats, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		stats[i] = CategoryStats{Category: c}
		index[c.Key()] = i
	}

	resp := &StatsResponse{}
	for _, a := range assets {
		i, ok := index[a.Category.Key()]
		if !ok {
			continue
		}
		st := &stats[i]
		st.Count++
		st.SizeKB += a.SizeKB
		if st.Largest == nil || a.SizeKB > st.Largest.SizeKB {
			largest := a
			st.Largest = &largest
		}
		resp.Total++
		resp.TotalKB += a.SizeKB
	}
	resp.Categories = stats

	return resp, nil
}
