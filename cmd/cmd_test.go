package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports/mocks"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/i18n"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"list", "install", "delete", "path", "stats", "watch",
		"dashboard", "doctor", "clean", "init", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil {
				t.Fatalf("Command '%s' is nil", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "sfs" {
		t.Errorf("Expected root command Use to be 'sfs', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	for _, name := range []string{"root", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Persistent flag '--%s' not found", name)
		}
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestSubcommands verifies specific subcommands exist
func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent     string
		subcommand string
	}{
		{"config", "show"},
		{"config", "get"},
		{"config", "set"},
		{"config", "path"},
		{"config", "edit"},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.subcommand, func(t *testing.T) {
			parentCmd, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Parent command '%s' not found: %v", tt.parent, err)
			}

			found := false
			for _, cmd := range parentCmd.Commands() {
				if cmd.Name() == tt.subcommand {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Subcommand '%s' not found under '%s'", tt.subcommand, tt.parent)
			}
		})
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  string
		flagName string
	}{
		{"list", "tab"},
		{"list", "sort"},
		{"list", "reverse"},
		{"list", "json"},
		{"install", "name"},
		{"install", "extract"},
		{"delete", "tab"},
		{"delete", "yes"},
		{"path", "tab"},
		{"path", "copy"},
		{"stats", "chart"},
		{"stats", "no-open"},
		{"watch", "quiet"},
		{"clean", "dry-run"},
		{"init", "create-dirs"},
		{"init", "force"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", tt.command, err)
			}

			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Errorf("Flag '--%s' not found on command '%s'", tt.flagName, tt.command)
			}
		})
	}
}

// TestCommandAliases verifies command aliases work
func TestCommandAliases(t *testing.T) {
	tests := []struct {
		alias   string
		command string
	}{
		{"ls", "list"},
		{"rm", "delete"},
		{"dash", "dashboard"},
		{"v", "version"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.alias})
			if err != nil {
				t.Fatalf("Alias '%s' not found: %v", tt.alias, err)
			}
			if cmd.Name() != tt.command {
				t.Errorf("Alias '%s' resolved to '%s', want '%s'", tt.alias, cmd.Name(), tt.command)
			}
		})
	}
}

func TestInstallRequiresTwoArgs(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"install"})
	if err != nil {
		t.Fatalf("Install command not found: %v", err)
	}

	if err := cmd.Args(cmd, []string{"blueprint"}); err == nil {
		t.Error("Expected error with one argument")
	}
	if err := cmd.Args(cmd, []string{"blueprint", "./Rocket"}); err != nil {
		t.Errorf("Expected two arguments to be accepted, got %v", err)
	}
}

func TestNeedsAssetTree(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"list"}, true},
		{[]string{"dashboard"}, true},
		{[]string{"doctor"}, true},
		{[]string{"init"}, false},
		{[]string{"version"}, false},
		{[]string{"config"}, false},
		{[]string{"config", "set"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, "_"), func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.args)
			if err != nil {
				t.Fatalf("Command %v not found: %v", tt.args, err)
			}
			if got := needsAssetTree(cmd); got != tt.want {
				t.Errorf("needsAssetTree(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			var out bytes.Buffer
			if got := confirm(strings.NewReader(tt.input), &out, "Delete? "); got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Delete? ") {
				t.Error("Expected prompt to be written")
			}
		})
	}
}

func TestPromptSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"first", "1\n", 0, nil},
		{"last", "3\n", 2, nil},
		{"retries after junk", "abc\n9\n2\n", 1, nil},
		{"end of input", "", 0, errCancelled},
		{"end after invalid", "0\n", 0, errCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptSelection(bufio.NewReader(strings.NewReader(tt.input)), &out, 3)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if err == nil && got != tt.want {
				t.Errorf("Expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSelectAssetExactMatch(t *testing.T) {
	saved := listService
	defer func() { listService = saved }()

	listService = services.NewListService(mocks.NewMockAssetRepository(testAssets()...))

	got, err := selectAsset(context.Background(), "moon base", domain.TabAll)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got == nil || got.Name != "Moon Base" {
		t.Errorf("Expected Moon Base, got %+v", got)
	}
}

func TestSelectAssetNoMatch(t *testing.T) {
	savedList, savedPrinter := listService, appPrinter
	defer func() { listService, appPrinter = savedList, savedPrinter }()

	listService = services.NewListService(mocks.NewMockAssetRepository(testAssets()...))
	appPrinter = i18n.New("en")

	got, err := selectAsset(context.Background(), "Deutsch", domain.TabWorlds)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no asset outside the tab, got %+v", got)
	}
}

func TestExplainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unsupported", &domain.InstallError{Category: domain.Mod{Type: domain.CodeMod}, Kind: domain.ErrUnsupportedTarget}, "Code mods"},
		{"unreadable", fmt.Errorf("wrapped: %w", domain.ErrSourceUnreadable), "could not be read"},
		{"shape", domain.ErrSourceShape, "different kind of source"},
		{"name", domain.ErrInvalidName, "path separators"},
		{"io", domain.ErrIO, "sfs doctor"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := explainError(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Expected no hint, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected hint containing %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDiffAssets(t *testing.T) {
	before := testAssets()[:3]
	after := []domain.Asset{
		testAssets()[0],
		testAssets()[2],
		{Name: "Mars Colony", Category: domain.World{}, SizeKB: 10},
		// Same name, different category is a different asset
		{Name: "Falcon Heavy", Category: domain.World{}, SizeKB: 1},
	}

	added, removed := diffAssets(before, after)

	if len(added) != 2 || added[0].Name != "Mars Colony" || added[1].Category.Key() != "world" {
		t.Errorf("Unexpected added assets: %+v", added)
	}
	if len(removed) != 1 || removed[0].Name != "Thrusters Plus" {
		t.Errorf("Unexpected removed assets: %+v", removed)
	}

	added, removed = diffAssets(before, before)
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("Expected no changes, got +%d -%d", len(added), len(removed))
	}
}

func TestRelevantEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create", fsnotify.Event{Name: "/root/Saving/Blueprints/Rocket", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "/root/Custom Translations/Deutsch.txt", Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: "/root/Saving/Worlds/Moon", Op: fsnotify.Rename}, true},
		{"write", fsnotify.Event{Name: "/root/Custom Translations/Deutsch.txt", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: "/root/Saving/Worlds/Moon", Op: fsnotify.Chmod}, false},
		{"staging", fsnotify.Event{Name: "/root/Saving/Worlds/.sfs-stage-123", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevantEvent(tt.event); got != tt.want {
				t.Errorf("relevantEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestRenderChart(t *testing.T) {
	repo := mocks.NewMockAssetRepository(testAssets()...)
	resp, err := services.NewStatsService(repo).Execute(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := renderChart(&buf, resp, i18n.New("en")); err != nil {
		t.Fatalf("renderChart failed: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"SFS Storage", "Size (KB)", "Count", "Blueprint"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected chart to contain %q", want)
		}
	}
}

func TestRenderAssetTable(t *testing.T) {
	savedPrinter, savedConfig := appPrinter, appConfig
	defer func() { appPrinter, appConfig = savedPrinter, savedConfig }()

	appPrinter = i18n.New("zh")
	appConfig = nil

	out := renderAssetTable(testAssets())
	for _, want := range []string{"Falcon Heavy", "蓝图", "2.0MB", "12.0KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

// TestVersionCommand verifies version command exists
func TestVersionCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	if err != nil {
		t.Fatalf("Version command not found: %v", err)
	}

	if cmd == nil {
		t.Fatal("Version command is nil")
	}
}

// TestInitCommand verifies init command exists
func TestInitCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"init"})
	if err != nil {
		t.Fatalf("Init command not found: %v", err)
	}

	// Init runs before any asset root exists
	if cmd.PersistentPreRunE != nil {
		t.Error("Init command should not have its own PersistentPreRunE")
	}
}
