package domain

import (
	"fmt"
	"strings"
)

// ModType identifies the kind of a mod
type ModType int

const (
	CodeMod ModType = iota
	PartAssetPack
	TexturePack
)

func (t ModType) String() string {
	switch t {
	case CodeMod:
		return "Code Mod"
	case PartAssetPack:
		return "Part Asset Pack"
	case TexturePack:
		return "Texture Pack"
	}
	return fmt.Sprintf("ModType(%d)", int(t))
}

// Category is the closed set of asset categories the game knows about.
// Only the types declared in this file implement it, so a type switch over
// Blueprint, Mod, World, CustomSolarSystem and CustomTranslation is exhaustive.
type Category interface {
	// Key is the stable identifier used on the command line and in JSON output
	Key() string
	String() string

	isCategory()
}

type (
	Blueprint         struct{}
	Mod               struct{ Type ModType }
	World             struct{}
	CustomSolarSystem struct{}
	CustomTranslation struct{}
)

func (Blueprint) isCategory()         {}
func (Mod) isCategory()               {}
func (World) isCategory()             {}
func (CustomSolarSystem) isCategory() {}
func (CustomTranslation) isCategory() {}

func (Blueprint) Key() string         { return "blueprint" }
func (World) Key() string             { return "world" }
func (CustomSolarSystem) Key() string { return "solar-system" }
func (CustomTranslation) Key() string { return "translation" }

func (m Mod) Key() string {
	switch m.Type {
	case CodeMod:
		return "code-mod"
	case PartAssetPack:
		return "part"
	case TexturePack:
		return "texture"
	}
	return "mod"
}

func (Blueprint) String() string         { return "Blueprint" }
func (World) String() string             { return "World" }
func (CustomSolarSystem) String() string { return "Custom Solar System" }
func (CustomTranslation) String() string { return "Custom Translation" }
func (m Mod) String() string             { return "Mod (" + m.Type.String() + ")" }

// Categories returns every scannable category in scan order.
// Code mods have no canonical directory and are not part of it.
func Categories() []Category {
	return []Category{
		Blueprint{},
		Mod{Type: PartAssetPack},
		Mod{Type: TexturePack},
		World{},
		CustomSolarSystem{},
		CustomTranslation{},
	}
}

var categoryAliases = map[string]Category{
	"blueprint":     Blueprint{},
	"blueprints":    Blueprint{},
	"bp":            Blueprint{},
	"part":          Mod{Type: PartAssetPack},
	"parts":         Mod{Type: PartAssetPack},
	"pack":          Mod{Type: PartAssetPack},
	"part-pack":     Mod{Type: PartAssetPack},
	"texture":       Mod{Type: TexturePack},
	"textures":      Mod{Type: TexturePack},
	"texture-pack":  Mod{Type: TexturePack},
	"code-mod":      Mod{Type: CodeMod},
	"codemod":       Mod{Type: CodeMod},
	"world":         World{},
	"worlds":        World{},
	"solar-system":  CustomSolarSystem{},
	"solar-systems": CustomSolarSystem{},
	"solar":         CustomSolarSystem{},
	"translation":   CustomTranslation{},
	"translations":  CustomTranslation{},
	"lang":          CustomTranslation{},
}

// ParseCategory converts a command-line name ("part", "world", ...) into a Category
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return nil, fmt.Errorf("unknown asset type %q (expected one of: %s)", s, strings.Join(CategoryKeys(), ", "))
	}
	return c, nil
}

// CategoryKeys lists the canonical keys accepted by ParseCategory
func CategoryKeys() []string {
	keys := make([]string, 0, 7)
	for _, c := range Categories() {
		keys = append(keys, c.Key())
	}
	return append(keys, Mod{Type: CodeMod}.Key())
}
