package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"blueprint", Blueprint{}},
		{"BP", Blueprint{}},
		{"part", Mod{Type: PartAssetPack}},
		{"parts", Mod{Type: PartAssetPack}},
		{"texture-pack", Mod{Type: TexturePack}},
		{"code-mod", Mod{Type: CodeMod}},
		{" world ", World{}},
		{"solar-system", CustomSolarSystem{}},
		{"Translation", CustomTranslation{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if err != nil {
				t.Fatalf("ParseCategory(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("spaceship")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !strings.Contains(err.Error(), "blueprint") {
		t.Errorf("error should list valid keys, got %q", err.Error())
	}
}

func TestCategories_ScanOrder(t *testing.T) {
	expected := []string{"blueprint", "part", "texture", "world", "solar-system", "translation"}
	got := Categories()

	if len(got) != len(expected) {
		t.Fatalf("expected %d categories, got %d", len(expected), len(got))
	}
	for i, c := range got {
		if c.Key() != expected[i] {
			t.Errorf("category %d: expected %q, got %q", i, expected[i], c.Key())
		}
	}
}

func TestCategoryKeys_RoundTrip(t *testing.T) {
	for _, key := range CategoryKeys() {
		c, err := ParseCategory(key)
		if err != nil {
			t.Errorf("key %q does not parse: %v", key, err)
			continue
		}
		if c.Key() != key {
			t.Errorf("ParseCategory(%q).Key() = %q", key, c.Key())
		}
	}
}

func TestAsset_KeyIsComparable(t *testing.T) {
	seen := map[AssetKey]bool{}
	assets := []Asset{
		{Name: "Rocket", Category: Blueprint{}},
		{Name: "Rocket", Category: World{}},
		{Name: "Rocket", Category: Mod{Type: TexturePack}},
	}
	for _, a := range assets {
		if seen[a.Key()] {
			t.Errorf("duplicate key for %v", a)
		}
		seen[a.Key()] = true
	}
}

func TestAsset_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Asset{Name: "thrust", Category: Mod{Type: PartAssetPack}, SizeKB: 2})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	expected := `{"name":"thrust","type":"part","size_kb":2}`
	if string(data) != expected {
		t.Errorf("got %s, want %s", data, expected)
	}
}

func TestInstallError_Is(t *testing.T) {
	cause := errors.New("permission denied")
	err := error(&InstallError{
		Category: CustomTranslation{},
		Name:     "Foo",
		Kind:     ErrIO,
		Err:      cause,
	})

	if !errors.Is(err, ErrIO) {
		t.Error("expected errors.Is(err, ErrIO)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if errors.Is(err, ErrSourceUnreadable) {
		t.Error("did not expect ErrSourceUnreadable")
	}

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatal("expected errors.As to find *InstallError")
	}
	if installErr.Name != "Foo" {
		t.Errorf("expected name Foo, got %q", installErr.Name)
	}
}
