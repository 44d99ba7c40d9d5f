package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var errCancelled = errors.New("cancelled")

// GetPreferredEditor returns the editor command from the environment or a default
func GetPreferredEditor() string {
	if env := os.Getenv("VISUAL"); env != "" {
		return env
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// OpenFile opens a file using the OS default application.
func OpenFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	case "android":
		cmd = exec.Command("termux-open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start() detaches so sfs can exit while the viewer stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// confirm asks a yes/no question; anything but y/yes is a no
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	}
	return false
}

// promptSelection asks for a number in [1, n] until one is given.
// It returns a zero-based index, or errCancelled when input ends.
func promptSelection(in *bufio.Reader, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprint(out, ui.StyleInfo.Render(fmt.Sprintf("Select an asset (1-%d): ", n)))

		input, err := in.ReadString('\n')
		if err != nil && input == "" {
			return 0, errCancelled
		}

		selection, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr != nil {
			fmt.Fprintln(out, ui.FormatWarning("Invalid input. Please enter a number."))
			continue
		}
		if selection < 1 || selection > n {
			fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("Please enter a number between 1 and %d.", n)))
			continue
		}
		return selection - 1, nil
	}
}

// selectAsset resolves a query to one asset. With no query the user picks
// interactively; with several matches a numbered list is shown.
// It returns nil when nothing matches and errCancelled when the user backs out.
func selectAsset(ctx context.Context, query string, tab domain.Tab) (*domain.Asset, error) {
	resp, err := listService.Find(ctx, services.FindRequest{Query: query, Tab: tab})
	if err != nil {
		return nil, err
	}
	if resp.Exact != nil {
		return resp.Exact, nil
	}

	matches := resp.Assets
	switch {
	case len(matches) == 0:
		if query == "" {
			fmt.Println(ui.FormatWarning(appPrinter.Text("list.empty")))
		} else {
			fmt.Println(ui.FormatWarning("No assets found matching: " + query))
		}
		return nil, nil
	case len(matches) == 1:
		return &matches[0], nil
	}

	if query == "" {
		idx, err := fuzzyfinder.Find(
			matches,
			func(i int) string {
				return matches[i].Name + "  [" + appPrinter.Category(matches[i].Category) + "]"
			},
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return describeAsset(matches[i])
			}),
		)
		if err != nil {
			// User cancelled (Ctrl+C or ESC)
			return nil, errCancelled
		}
		return &matches[idx], nil
	}

	fmt.Println(ui.FormatInfo(fmt.Sprintf("Found %d matches:", len(matches))))
	fmt.Println()
	for i, a := range matches {
		fmt.Printf("  %d. %s %s\n",
			i+1,
			ui.StyleBold.Render(a.Name),
			ui.StyleMuted.Render("("+appPrinter.Category(a.Category)+", "+ui.FormatSizeKB(a.SizeKB)+")"))
	}
	fmt.Println()

	idx, err := promptSelection(bufio.NewReader(os.Stdin), os.Stdout, len(matches))
	if err != nil {
		return nil, err
	}
	fmt.Println()
	return &matches[idx], nil
}

// describeAsset renders the multi-line summary used by pickers
func describeAsset(a domain.Asset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nType: %s\nSize: %s", a.Name, appPrinter.Category(a.Category), ui.FormatSizeKB(a.SizeKB))
	if assetRepo != nil {
		if path, err := assetRepo.Path(a); err == nil {
			fmt.Fprintf(&b, "\nPath: %s", path)
		}
	}
	return b.String()
}

// explainError turns engine errors into a short hint for the user
func explainError(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedTarget):
		return "Code mods have no install location the game reads from."
	case errors.Is(err, domain.ErrSourceUnreadable):
		return "The source could not be read. Check the path and its permissions."
	case errors.Is(err, domain.ErrSourceShape):
		return "This asset type expects a different kind of source (file, folder or --extract archive)."
	case errors.Is(err, domain.ErrInvalidName):
		return "Names must not be empty, \".\" or \"..\" (after the extension is dropped), or contain path separators."
	case errors.Is(err, domain.ErrIO):
		return "A filesystem operation failed. Run 'sfs doctor' to check the storage directory."
	}
	return ""
}

// reportError prints an error with an optional hint and returns it for cobra
func reportError(msg string, err error) error {
	fmt.Println(ui.FormatError(msg))
	if hint := explainError(err); hint != "" {
		fmt.Println(ui.FormatMuted("  " + hint))
	}
	return err
}
