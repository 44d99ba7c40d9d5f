package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/i18n"
	"github.com/kamal-hamza/sfs-cli/pkg/layout"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

const chartFileName = "sfs-stats.html"

var (
	statsChart  bool
	statsNoOpen bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage used per asset type",
	Long: `Count installed assets and the space they take up, per asset type.

Use --chart to write an HTML bar chart (to chart_output, or the data
directory by default) and open it in the browser.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsChart, "chart", false, "Write an HTML bar chart")
	statsCmd.Flags().BoolVar(&statsNoOpen, "no-open", false, "Do not open the chart after writing it")
}

func runStats(cmd *cobra.Command, args []string) error {
	resp, err := statsService.Execute(getContext())
	if err != nil {
		return reportError("Failed to scan assets", err)
	}

	fmt.Println(ui.FormatTitle("Storage"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Type"},
		{Header: "Count", Align: lipgloss.Right},
		{Header: "Size", Align: lipgloss.Right},
		{Header: "Largest"},
	})
	table.MaxWidth = appConfig.TableWidth
	for _, st := range resp.Categories {
		largest := "-"
		if st.Largest != nil {
			largest = fmt.Sprintf("%s (%s)", st.Largest.Name, ui.FormatSizeKB(st.Largest.SizeKB))
		}
		table.AddRow([]string{
			ui.CategoryStyle(st.Category.Key()).Render(appPrinter.Category(st.Category)),
			fmt.Sprintf("%d", st.Count),
			ui.FormatSizeKB(st.SizeKB),
			largest,
		})
	}
	fmt.Print(table.Render())
	fmt.Println()

	renderSizeBars(resp)

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets, %s", resp.Total, ui.FormatSizeKB(resp.TotalKB))))

	if !statsChart {
		return nil
	}

	path, err := chartPath()
	if err != nil {
		return err
	}
	if err := writeChart(path, resp, appPrinter); err != nil {
		return reportError("Failed to write chart", err)
	}
	fmt.Println(ui.FormatSuccess("Chart written to " + path))

	if !statsNoOpen {
		if err := OpenFile(path); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}
	return nil
}

// renderSizeBars displays a horizontal bar chart of sizes
func renderSizeBars(resp *services.StatsResponse) {
	maxKB := 0.0
	for _, st := range resp.Categories {
		maxKB = math.Max(maxKB, st.SizeKB)
	}
	if maxKB == 0 {
		return
	}

	barWidth := 20
	for _, st := range resp.Categories {
		length := int(math.Ceil(st.SizeKB / maxKB * float64(barWidth)))
		bar := strings.Repeat("█", length) + strings.Repeat(" ", barWidth-length)

		fmt.Printf("%s %s\n",
			ui.CategoryStyle(st.Category.Key()).Render(bar),
			appPrinter.Category(st.Category),
		)
	}
	fmt.Println()
}

// chartPath returns chart_output if set, else a file in the data directory
func chartPath() (string, error) {
	if appConfig.ChartOutput != "" {
		return appConfig.ChartOutput, nil
	}
	dir, err := layout.DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine data directory: %w", err)
	}
	return filepath.Join(dir, chartFileName), nil
}

func writeChart(path string, resp *services.StatsResponse, p *i18n.Printer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := renderChart(f, resp, p); err != nil {
		return err
	}
	return f.Close()
}

// renderChart draws sizes and counts per asset type as grouped bars
func renderChart(w io.Writer, resp *services.StatsResponse, p *i18n.Printer) error {
	labels := make([]string, 0, len(resp.Categories))
	sizes := make([]opts.BarData, 0, len(resp.Categories))
	counts := make([]opts.BarData, 0, len(resp.Categories))
	for _, st := range resp.Categories {
		labels = append(labels, p.Category(st.Category))
		sizes = append(sizes, opts.BarData{Value: math.Round(st.SizeKB*10) / 10})
		counts = append(counts, opts.BarData{Value: st.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "SFS Storage"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Spaceflight Simulator assets",
			Subtitle: fmt.Sprintf("%d assets, %s", resp.Total, ui.FormatSizeKB(resp.TotalKB)),
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("Size (KB)", sizes).
		AddSeries("Count", counts)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
