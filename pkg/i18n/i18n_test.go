package i18n

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		input    string
		expected language.Tag
		wantErr  bool
	}{
		{"en", language.English, false},
		{"en-GB", language.English, false},
		{"zh", language.Chinese, false},
		{"zh-CN", language.Chinese, false},
		{"fr", language.Und, true},
		{"not a tag!", language.Und, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseTag(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPrinter_CategoryLabels(t *testing.T) {
	en := New("en")
	zh := New("zh")

	tests := []struct {
		category domain.Category
		en, zh   string
	}{
		{domain.Blueprint{}, "Blueprint", "蓝图"},
		{domain.Mod{Type: domain.PartAssetPack}, "Mod (Part Asset Pack)", "模组（零件资源包）"},
		{domain.World{}, "World", "存档"},
		{domain.CustomTranslation{}, "Custom Translation", "翻译"},
	}

	for _, tt := range tests {
		if got := en.Category(tt.category); got != tt.en {
			t.Errorf("en label for %v = %q, want %q", tt.category, got, tt.en)
		}
		if got := zh.Category(tt.category); got != tt.zh {
			t.Errorf("zh label for %v = %q, want %q", tt.category, got, tt.zh)
		}
	}
}

func TestPrinter_EveryLabelTranslated(t *testing.T) {
	for _, tag := range Supported() {
		p := New(tag.String())
		for _, c := range append(domain.Categories(), domain.Mod{Type: domain.CodeMod}) {
			if label := p.Category(c); strings.HasPrefix(label, "category.") {
				t.Errorf("%s: missing label for %v", tag, c)
			}
		}
		for _, tab := range domain.Tabs() {
			if label := p.Tab(tab); strings.HasPrefix(label, "tab.") {
				t.Errorf("%s: missing label for tab %v", tag, tab.Key())
			}
		}
	}
}

func TestPrinter_TextWithArgs(t *testing.T) {
	got := New("en").Text("delete.confirm", "Rocket")
	if !strings.Contains(got, `"Rocket"`) || !strings.Contains(got, "cannot be undone") {
		t.Errorf("unexpected confirmation text %q", got)
	}
}

func TestNew_FallsBackToEnglish(t *testing.T) {
	if p := New("klingon"); p.Tag != language.English {
		t.Errorf("expected English fallback, got %v", p.Tag)
	}
}
