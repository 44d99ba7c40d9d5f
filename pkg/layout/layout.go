package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
)

// GameDir is the game's media directory below external storage
const GameDir = "Android/media/com.StefMorojna.SpaceflightSimulator"

// Layout is the canonical directory tree the game reads content from.
// All paths are derived from RootPath and never touch the filesystem.
type Layout struct {
	RootPath         string
	BlueprintsPath   string
	PartsPath        string
	TexturePacksPath string
	WorldsPath       string
	SolarSystemsPath string
	TranslationsPath string
}

// New derives the canonical directories from an asset root
func New(root string) *Layout {
	return &Layout{
		RootPath:         root,
		BlueprintsPath:   filepath.Join(root, "Saving", "Blueprints"),
		PartsPath:        filepath.Join(root, "Mods", "Custom_Assets", "Parts"),
		TexturePacksPath: filepath.Join(root, "Mods", "Custom_Assets", "Texture Packs"),
		WorldsPath:       filepath.Join(root, "Saving", "Worlds"),
		SolarSystemsPath: filepath.Join(root, "Custom Solar Systems"),
		TranslationsPath: filepath.Join(root, "Custom Translations"),
	}
}

// DetectRoot returns the default asset root on the device.
// EXTERNAL_STORAGE is set by Android shells; termux and adb both export it.
func DetectRoot() string {
	storage := os.Getenv("EXTERNAL_STORAGE")
	if storage == "" {
		storage = "/storage/emulated/0"
	}
	return filepath.Join(storage, filepath.FromSlash(GameDir))
}

// Exists checks if the asset root is present
func (l *Layout) Exists() bool {
	info, err := os.Stat(l.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Initialize creates every canonical directory.
// The installer creates directories lazily, so this is only needed to
// prepare an empty root.
func (l *Layout) Initialize() error {
	for _, d := range l.Directories() {
		if err := os.MkdirAll(d.Path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d.Path, err)
		}
	}
	return nil
}

// Directory pairs a category with its canonical directory
type Directory struct {
	Category domain.Category
	Path     string
}

// Directories returns the canonical directories in scan order
func (l *Layout) Directories() []Directory {
	categories := domain.Categories()
	dirs := make([]Directory, 0, len(categories))
	for _, c := range categories {
		path, err := l.CanonicalDirectory(c)
		if err != nil {
			continue
		}
		dirs = append(dirs, Directory{Category: c, Path: path})
	}
	return dirs
}

// CanonicalDirectory returns the directory holding assets of category c
func (l *Layout) CanonicalDirectory(c domain.Category) (string, error) {
	switch c := c.(type) {
	case domain.Blueprint:
		return l.BlueprintsPath, nil
	case domain.Mod:
		switch c.Type {
		case domain.PartAssetPack:
			return l.PartsPath, nil
		case domain.TexturePack:
			return l.TexturePacksPath, nil
		case domain.CodeMod:
			return "", fmt.Errorf("%w: %s has no canonical directory", domain.ErrUnsupportedTarget, c)
		}
	case domain.World:
		return l.WorldsPath, nil
	case domain.CustomSolarSystem:
		return l.SolarSystemsPath, nil
	case domain.CustomTranslation:
		return l.TranslationsPath, nil
	}
	return "", fmt.Errorf("%w: unknown category %v", domain.ErrUnsupportedTarget, c)
}

// Resolve returns the on-disk path of a scanned asset.
// The storage suffix stripped by the scan is always re-applied.
func (l *Layout) Resolve(a domain.Asset) (string, error) {
	dir, err := l.CanonicalDirectory(a.Category)
	if err != nil {
		return "", err
	}
	rule, err := domain.RuleFor(a.Category)
	if err != nil {
		return "", err
	}
	return entryPath(dir, rule.StoredName(a.Name))
}

// DestinationFor returns where an asset installed under suggestedName ends up.
// Blueprints lose a trailing dotted extension ("Rocket.zip" -> "Rocket").
// A leading dot is part of the name and is kept.
func (l *Layout) DestinationFor(c domain.Category, suggestedName string) (string, error) {
	dir, err := l.CanonicalDirectory(c)
	if err != nil {
		return "", err
	}
	rule, err := domain.RuleFor(c)
	if err != nil {
		return "", err
	}

	name := suggestedName
	if _, ok := c.(domain.Blueprint); ok {
		name = stripExtension(name)
	}
	return entryPath(dir, rule.FileName(name))
}

// entryPath joins a single entry name onto dir. Names that would land on
// dir itself or outside it yield ErrInvalidName.
func entryPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	path := filepath.Join(dir, name)
	if filepath.Dir(path) != filepath.Clean(dir) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return path, nil
}

func stripExtension(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// DataDir returns the directory sfs keeps logs and generated reports in.
// Uses XDG base directories on Unix and AppData on Windows.
func DataDir() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "sfs"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "sfs"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "sfs"), nil
}

// ConfigPath returns the location of config.yaml
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "sfs", "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "sfs-config", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sfs", "config.yaml"), nil
}
