package domain

import (
	"fmt"
	"strings"
)

// EntryRule describes how assets of one category are stored on disk
type EntryRule struct {
	Dir         bool   // each asset is a directory
	Suffix      string // required filename suffix for file assets
	Placeholder string // shipped sample entry that is never listed
}

// RuleFor returns the storage rule of a category.
// Code mods have no storage convention and yield ErrUnsupportedTarget.
func RuleFor(c Category) (EntryRule, error) {
	switch c := c.(type) {
	case Blueprint:
		return EntryRule{Dir: true}, nil
	case Mod:
		switch c.Type {
		case PartAssetPack:
			return EntryRule{Suffix: ".pack"}, nil
		case TexturePack:
			return EntryRule{Dir: true, Placeholder: "Example"}, nil
		case CodeMod:
			return EntryRule{}, fmt.Errorf("%w: %s", ErrUnsupportedTarget, c)
		}
	case World:
		return EntryRule{Dir: true}, nil
	case CustomSolarSystem:
		return EntryRule{Dir: true, Placeholder: "Example"}, nil
	case CustomTranslation:
		return EntryRule{Suffix: ".txt", Placeholder: "Example.txt"}, nil
	}
	return EntryRule{}, fmt.Errorf("%w: unknown category %v", ErrUnsupportedTarget, c)
}

// Accepts reports whether a directory entry belongs to the category
func (r EntryRule) Accepts(name string, isDir bool) bool {
	if isDir != r.Dir {
		return false
	}
	if r.Placeholder != "" && name == r.Placeholder {
		return false
	}
	return r.Suffix == "" || strings.HasSuffix(name, r.Suffix)
}

// DisplayName strips the storage suffix from an entry name
// "thrust.pack" -> "thrust"
func (r EntryRule) DisplayName(filename string) string {
	if r.Suffix == "" {
		return filename
	}
	return strings.TrimSuffix(filename, r.Suffix)
}

// StoredName reverses DisplayName for a scanned asset: the suffix is
// always re-applied, so "Foo.txt" came from "Foo.txt.txt"
func (r EntryRule) StoredName(display string) string {
	return display + r.Suffix
}

// FileName appends the storage suffix to an install name when it is missing
// "thrust" -> "thrust.pack", "thrust.pack" -> "thrust.pack"
func (r EntryRule) FileName(name string) string {
	if r.Suffix == "" || strings.HasSuffix(name, r.Suffix) {
		return name
	}
	return name + r.Suffix
}
