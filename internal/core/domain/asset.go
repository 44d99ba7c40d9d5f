package domain

import (
	"encoding/json"
	"io"
	"io/fs"
)

// Asset is the scan-time summary of one installed asset.
// Name is the display name (storage suffix stripped); assets are recomputed
// on every scan and never persisted.
type Asset struct {
	Name     string
	Category Category
	SizeKB   float64
}

// AssetKey identifies an asset within a single scan
type AssetKey struct {
	Name     string
	Category string
}

func (a Asset) Key() AssetKey {
	return AssetKey{Name: a.Name, Category: a.Category.Key()}
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string  `json:"name"`
		Type   string  `json:"type"`
		SizeKB float64 `json:"size_kb"`
	}{a.Name, a.Category.Key(), a.SizeKB})
}

// Source is where the content of an asset being installed comes from.
// It is one of StreamSource, TreeSource or ArchiveSource.
type Source interface {
	isSource()
}

// StreamSource is an opaque byte stream, copied to a single destination file
type StreamSource struct {
	Open func() (io.ReadCloser, error)
}

// TreeSource is a directory-shaped source copied recursively
type TreeSource struct {
	FS fs.FS
}

// ArchiveSource is a zip archive extracted into a directory asset.
// It is only used when the caller asks for extraction explicitly.
type ArchiveSource struct {
	Path string
}

func (StreamSource) isSource()  {}
func (TreeSource) isSource()    {}
func (ArchiveSource) isSource() {}
