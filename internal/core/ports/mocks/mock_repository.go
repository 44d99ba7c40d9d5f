package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
)

// InstallCall records one call to MockAssetRepository.Install
type InstallCall struct {
	Category domain.Category
	Source   domain.Source
	Name     string
}

// MockAssetRepository is an in-memory AssetRepository for service tests
type MockAssetRepository struct {
	mu        sync.RWMutex
	assets    []domain.Asset
	installs  []InstallCall
	deletes   []domain.Asset
	listCalls int
	errs      map[string]error

	// InstallSizeKB is the size given to assets created by Install
	InstallSizeKB float64
}

// NewMockAssetRepository creates a mock holding the given assets in scan order
func NewMockAssetRepository(assets ...domain.Asset) *MockAssetRepository {
	return &MockAssetRepository{
		assets:        append([]domain.Asset(nil), assets...),
		errs:          make(map[string]error),
		InstallSizeKB: 1,
	}
}

// SetError makes the named operation ("list", "install", "delete", "path") fail
func (m *MockAssetRepository) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = err
}

func (m *MockAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if err := m.errs["list"]; err != nil {
		return nil, err
	}
	return append([]domain.Asset(nil), m.assets...), nil
}

func (m *MockAssetRepository) Install(ctx context.Context, c domain.Category, src domain.Source, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.installs = append(m.installs, InstallCall{Category: c, Source: src, Name: name})
	if err := m.errs["install"]; err != nil {
		return "", err
	}

	rule, err := domain.RuleFor(c)
	if err != nil {
		return "", &domain.InstallError{Category: c, Name: name, Kind: domain.ErrUnsupportedTarget}
	}

	installed := domain.Asset{Name: rule.DisplayName(rule.FileName(name)), Category: c, SizeKB: m.InstallSizeKB}
	for i, a := range m.assets {
		if a.Key() == installed.Key() {
			m.assets[i] = installed
			return m.path(installed), nil
		}
	}
	m.assets = append(m.assets, installed)
	return m.path(installed), nil
}

func (m *MockAssetRepository) Delete(ctx context.Context, a domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, a)
	if err := m.errs["delete"]; err != nil {
		return err
	}

	kept := m.assets[:0]
	for _, existing := range m.assets {
		if existing.Key() != a.Key() {
			kept = append(kept, existing)
		}
	}
	m.assets = kept
	return nil
}

func (m *MockAssetRepository) Path(a domain.Asset) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errs["path"]; err != nil {
		return "", err
	}
	return m.path(a), nil
}

func (m *MockAssetRepository) path(a domain.Asset) string {
	return fmt.Sprintf("/fake/%s/%s", a.Category.Key(), a.Name)
}

// Installs returns every recorded Install call
func (m *MockAssetRepository) Installs() []InstallCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]InstallCall(nil), m.installs...)
}

// Deletes returns every asset passed to Delete
func (m *MockAssetRepository) Deletes() []domain.Asset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Asset(nil), m.deletes...)
}

// ListCalls returns how many times List was called
func (m *MockAssetRepository) ListCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCalls
}
