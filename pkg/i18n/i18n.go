// Package i18n holds the localized labels shown for categories, tabs and
// prompts. Catalogs are embedded YAML files registered into the default
// x/text message catalog at start-up.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
)

//go:embed locales/*.yaml
var localesFS embed.FS

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
)

func init() {
	if err := register(localesFS); err != nil {
		panic(err)
	}
}

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

func register(fsys fs.FS) error {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no catalog files found")
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", path, err)
		}

		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}

		keys := make([]string, 0, len(file.Messages))
		for key := range file.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, file.Messages[key]); err != nil {
				return fmt.Errorf("catalog %s: %s: %w", path, key, err)
			}
		}
	}
	return nil
}

// Supported returns the supported language tags, default first
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ParseTag validates a language setting such as "en", "zh" or "zh-CN"
func ParseTag(lang string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("unsupported language %q (supported: en, zh)", lang)
	}
	return supported[idx], nil
}

// Printer renders labels in one language
type Printer struct {
	Tag language.Tag
	p   *message.Printer
}

// New returns a printer for lang, falling back to English
func New(lang string) *Printer {
	tag, err := ParseTag(lang)
	if err != nil {
		tag = language.English
	}
	return &Printer{Tag: tag, p: message.NewPrinter(tag)}
}

func (p *Printer) Category(c domain.Category) string {
	return p.p.Sprintf("category." + c.Key())
}

func (p *Printer) Tab(t domain.Tab) string {
	return p.p.Sprintf("tab." + t.Key())
}

// Text looks up a free-standing message such as "list.empty"
func (p *Printer) Text(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
