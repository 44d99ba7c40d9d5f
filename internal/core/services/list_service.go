package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports"
)

// Sort orders accepted by ListRequest.SortBy
const (
	SortNone = "none"
	SortName = "name"
	SortSize = "size"
	SortType = "type"
)

// SortKeys lists the valid sort orders
func SortKeys() []string {
	return []string{SortNone, SortName, SortSize, SortType}
}

// ValidSort reports whether s is an accepted sort order
func ValidSort(s string) bool {
	return s == "" || slices.Contains(SortKeys(), s)
}

// ListService handles listing and filtering assets
type ListService struct {
	assetRepo ports.AssetRepository
}

// NewListService creates a new list service
func NewListService(assetRepo ports.AssetRepository) *ListService {
	return &ListService{
		assetRepo: assetRepo,
	}
}

// ListRequest represents a request to list assets
type ListRequest struct {
	Tab     domain.Tab // Category group to show (default: all)
	Query   string     // Case-insensitive name substring (optional)
	SortBy  string     // "none", "name", "size", "type" (default: none, scan order)
	Reverse bool       // Reverse sort order
}

// ListResponse represents the response from listing assets
type ListResponse struct {
	Assets  []domain.Asset
	Total   int
	TotalKB float64
}

// Execute scans the asset tree and applies the tab, query and sort
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if !ValidSort(req.SortBy) {
		return nil, fmt.Errorf("invalid sort %q (expected one of: %s)", req.SortBy, strings.Join(SortKeys(), ", "))
	}

	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assets = req.Tab.Filter(assets)

	if q := strings.TrimSpace(req.Query); q != "" {
		assets = filterByName(assets, q)
	}

	assets = sortAssets(assets, req.SortBy, req.Reverse)

	var totalKB float64
	for _, a := range assets {
		totalKB += a.SizeKB
	}

	return &ListResponse{
		Assets:  assets,
		Total:   len(assets),
		TotalKB: totalKB,
	}, nil
}

func filterByName(assets []domain.Asset, query string) []domain.Asset {
	query = strings.ToLower(query)
	filtered := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if strings.Contains(strings.ToLower(a.Name), query) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// sortAssets sorts a copy of assets. Ties keep scan order.
func sortAssets(assets []domain.Asset, sortBy string, reverse bool) []domain.Asset {
	sorted := slices.Clone(assets)
	if sortBy == "" || sortBy == SortNone {
		if reverse {
			slices.Reverse(sorted)
		}
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if reverse {
			a, b = b, a
		}
		switch sortBy {
		case SortName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortSize:
			return a.SizeKB < b.SizeKB
		default: // "type"
			return categoryRank(a.Category) < categoryRank(b.Category)
		}
	})
	return sorted
}

// categoryRank is the position of c in scan order
func categoryRank(c domain.Category) int {
	for i, candidate := range domain.Categories() {
		if candidate == c {
			return i
		}
	}
	return len(domain.Categories())
}

// FindRequest looks up assets by name
type FindRequest struct {
	Query string
	Tab   domain.Tab
}

// FindResponse holds the matching assets, best match first.
// Exact is set when the query names exactly one asset.
type FindResponse struct {
	Assets []domain.Asset
	Exact  *domain.Asset
}

// Find resolves a user-typed name to assets.
// Case-insensitive exact names win; otherwise matches are ranked fuzzily.
func (s *ListService) Find(ctx context.Context, req FindRequest) (*FindResponse, error) {
	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	assets = req.Tab.Filter(assets)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return &FindResponse{Assets: assets}, nil
	}

	var exact []domain.Asset
	for _, a := range assets {
		if strings.EqualFold(a.Name, query) {
			exact = append(exact, a)
		}
	}
	if len(exact) > 0 {
		resp := &FindResponse{Assets: exact}
		if len(exact) == 1 {
			resp.Exact = &exact[0]
		}
		return resp, nil
	}

	return &FindResponse{Assets: fuzzySearch(assets, query)}, nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	asset domain.Asset
	score int
}

func fuzzySearch(assets []domain.Asset, query string) []domain.Asset {
	var matches []fuzzyMatch
	for _, a := range assets {
		if score := fuzzyMatchScore(a.Name, query); score > 0 {
			matches = append(matches, fuzzyMatch{asset: a, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.Asset, len(matches))
	for i, m := range matches {
		result[i] = m.asset
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if text == query {
		return 10000
	}

	if textLower == queryLower {
		return 9000
	}

	if strings.Contains(textLower, queryLower) {
		score := 5000
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Fuzzy character-by-character matching
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutiveMatches := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}
		score += 100

		if textIdx == lastMatchIdx+1 {
			consecutiveMatches++
			score += consecutiveMatches * 50
		} else {
			consecutiveMatches = 0
		}

		// word boundary: asset names use spaces, underscores and dashes
		if textIdx == 0 || unicode.IsSpace(textRunes[textIdx-1]) || textRunes[textIdx-1] == '-' || textRunes[textIdx-1] == '_' {
			score += 200
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	if lastMatchIdx >= 0 {
		matchSpan := lastMatchIdx + 1
		score -= (matchSpan - len(queryRunes)) * 10
	}
	if score <= 0 {
		score = 1
	}

	return score
}
