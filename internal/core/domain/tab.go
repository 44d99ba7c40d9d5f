package domain

import (
	"fmt"
	"strings"
)

// Tab groups categories the way the asset browser shows them
type Tab int

const (
	TabAll Tab = iota
	TabBlueprints
	TabMods
	TabWorlds
	TabCustomSolarSystems
	TabCustomTranslations
)

// Tabs returns all tabs in display order
func Tabs() []Tab {
	return []Tab{TabAll, TabBlueprints, TabMods, TabWorlds, TabCustomSolarSystems, TabCustomTranslations}
}

func (t Tab) Key() string {
	switch t {
	case TabAll:
		return "all"
	case TabBlueprints:
		return "blueprints"
	case TabMods:
		return "mods"
	case TabWorlds:
		return "worlds"
	case TabCustomSolarSystems:
		return "solar-systems"
	case TabCustomTranslations:
		return "translations"
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

// Matches reports whether assets of category c are shown under the tab
func (t Tab) Matches(c Category) bool {
	switch c.(type) {
	case Blueprint:
		return t == TabAll || t == TabBlueprints
	case Mod:
		return t == TabAll || t == TabMods
	case World:
		return t == TabAll || t == TabWorlds
	case CustomSolarSystem:
		return t == TabAll || t == TabCustomSolarSystems
	case CustomTranslation:
		return t == TabAll || t == TabCustomTranslations
	}
	return false
}

// Filter returns the assets shown under the tab, preserving order
func (t Tab) Filter(assets []Asset) []Asset {
	if t == TabAll {
		return assets
	}
	filtered := make([]Asset, 0, len(assets))
	for _, a := range assets {
		if t.Matches(a.Category) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// ParseTab accepts a tab key or any category name
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	for _, t := range Tabs() {
		if t.Key() == s {
			return t, nil
		}
	}
	if c, err := ParseCategory(s); err == nil {
		return TabFor(c), nil
	}
	return TabAll, fmt.Errorf("unknown tab %q", s)
}

// TabFor returns the tab a category is listed under
func TabFor(c Category) Tab {
	switch c.(type) {
	case Blueprint:
		return TabBlueprints
	case Mod:
		return TabMods
	case World:
		return TabWorlds
	case CustomSolarSystem:
		return TabCustomSolarSystems
	case CustomTranslation:
		return TabCustomTranslations
	}
	return TabAll
}
