package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/i18n"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

const (
	previewMaxBytes   = 64 * 1024
	previewMaxEntries = 200
	previewMaxDepth   = 3
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive asset browser (alias: dash)",
	Long: `Launch a full-screen browser for installed assets.

The dashboard provides:
- Tabs: All, Blueprints, Mods, Worlds, Solar Systems, Translations
- Asset list with sizes and a preview pane
- Search and delete with confirmation

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to top
    G           Jump to bottom
    tab/l       Next tab
    shift+tab/h Previous tab

  Actions:
    d           Delete asset
    c           Copy asset path
    r           Reload

  Views:
    /           Search mode
    Esc         Clear search / Exit mode
    ?           Show help

  General:
    q           Quit dashboard
    Ctrl+C      Force quit`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	deps := dashboardDeps{
		list:    listService,
		del:     deleteService,
		repo:    assetRepo,
		printer: appPrinter,
		sortBy:  appConfig.DefaultSort,
		reverse: appConfig.ReverseSort,
		root:    appLayout.RootPath,
	}

	m := newDashboardModel(getContext(), deps)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
	modeConfirmDelete
)

// dashboardDeps is everything the dashboard reads from or writes to
type dashboardDeps struct {
	list    *services.ListService
	del     *services.DeleteService
	repo    ports.AssetRepository
	printer *i18n.Printer
	sortBy  string
	reverse bool
	root    string
}

// Preview state
type previewState struct {
	key      domain.AssetKey
	content  string
	viewport viewport.Model
}

// Dashboard model
type dashboardModel struct {
	ctx           context.Context
	deps          dashboardDeps
	tab           domain.Tab
	assets        []domain.Asset // Assets of the current tab
	filtered      []domain.Asset // After search
	cursor        int
	offset        int
	mode          viewMode
	loading       bool
	searchInput   textinput.Model
	help          help.Model
	keys          keyMap
	width         int
	height        int
	ready         bool
	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time
	deleteTarget  *domain.Asset
	preview       previewState
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Delete, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextTab, k.PrevTab, k.Delete, k.Copy, k.Reload},
		{k.Search, k.Help, k.Escape, k.Quit},
	}
}

var keys = keyMap{
	Up:      bind("↑/k", "move up", "up", "k"),
	Down:    bind("↓/j", "move down", "down", "j"),
	Top:     bind("g", "top", "g"),
	Bottom:  bind("G", "bottom", "G"),
	NextTab: bind("tab/l", "next tab", "tab", "right", "l"),
	PrevTab: bind("shift+tab/h", "previous tab", "shift+tab", "left", "h"),
	Delete:  bind("d", "delete", "d"),
	Copy:    bind("c", "copy path", "c"),
	Reload:  bind("r", "reload", "r"),
	Search:  bind("/", "search", "/"),
	Help:    bind("?", "help", "?"),
	Quit:    bind("q", "quit", "q", "ctrl+c"),
	Escape:  bind("esc", "cancel", "esc"),
	Confirm: bind("y", "confirm", "y", "Y"),
	Cancel:  bind("n/esc", "cancel", "n", "N", "esc"),
}

func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func newDashboardModel(ctx context.Context, deps dashboardDeps) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = deps.printer.Text("dashboard.search")
	ti.CharLimit = 100
	ti.Width = 50

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle().Foreground(ui.ColorDefault)

	return dashboardModel{
		ctx:         ctx,
		deps:        deps,
		tab:         domain.TabAll,
		mode:        modeList,
		loading:     true,
		searchInput: ti,
		help:        help.New(),
		keys:        keys,
		preview: previewState{
			viewport: vp,
		},
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadAssets()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		m.preview.viewport.Width = max((msg.Width/2)-4, 20)
		m.preview.viewport.Height = max(msg.Height-18, 5)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeList:
			return m.updateList(msg)
		}

	case statusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		m.messageExpiry = time.Now().Add(3 * time.Second)
		return m, nil

	case assetsLoadedMsg:
		// A newer tab was selected while this scan ran
		if msg.tab != m.tab {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, setStatus("Scan failed: "+msg.err.Error(), ui.StyleError)
		}
		m.assets = msg.assets
		m.applySearch()
		return m, m.previewSelected()

	case assetDeletedMsg:
		if msg.err != nil {
			return m, setStatus(fmt.Sprintf("Failed to delete %s: %v", msg.asset.Name, msg.err), ui.StyleError)
		}
		status := setStatus(m.deps.printer.Text("delete.done", msg.asset.Name), ui.StyleSuccess)
		if !msg.gone {
			status = setStatus(msg.asset.Name+" is still listed", ui.StyleWarning)
		}
		m.loading = true
		return m, tea.Batch(status, m.loadAssets())

	case previewLoadedMsg:
		// Ignore previews of assets no longer selected
		if selected, ok := m.selected(); !ok || selected.Key() != msg.key {
			return m, nil
		}
		m.preview.key = msg.key
		m.preview.content = msg.content
		m.preview.viewport.SetContent(msg.content)
		m.preview.viewport.GotoTop()
		return m, nil
	}

	// Preview is always visible in list and search mode
	if m.mode == modeList || m.mode == modeSearch {
		var cmd tea.Cmd
		m.preview.viewport, cmd = m.preview.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			return m, m.previewSelected()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			return m, m.previewSelected()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		return m, m.previewSelected()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.filtered)-1, 0)
		m.adjustViewport()
		return m, m.previewSelected()

	case msg.Type == tea.KeyPgUp:
		m.preview.viewport.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.preview.viewport.ViewDown()

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1)

	case key.Matches(msg, m.keys.Delete):
		if a, ok := m.selected(); ok {
			m.deleteTarget = &a
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Copy):
		if a, ok := m.selected(); ok {
			return m, m.copyPath(a)
		}

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.loadAssets(), setStatus(m.deps.printer.Text("dashboard.reloaded"), ui.StyleInfo))

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearch()
		return m, m.previewSelected()

	// Enter keeps the filter and returns to the list
	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	// Only arrow keys navigate in search mode, not j/k
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			return m, m.previewSelected()
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			return m, m.previewSelected()
		}

	default:
		oldQuery := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() != oldQuery {
			m.applySearch()
			return m, tea.Batch(cmd, m.previewSelected())
		}
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := m.deleteTarget
		m.deleteTarget = nil
		m.mode = modeList
		if target == nil {
			return m, nil
		}
		return m, m.deleteAsset(*target)

	case key.Matches(msg, m.keys.Cancel):
		m.deleteTarget = nil
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) switchTab(step int) (tea.Model, tea.Cmd) {
	tabs := domain.Tabs()
	next := (int(m.tab) + step + len(tabs)) % len(tabs)
	m.tab = tabs[next]
	m.cursor = 0
	m.offset = 0
	m.loading = true
	return m, m.loadAssets()
}

func (m dashboardModel) selected() (domain.Asset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return domain.Asset{}, false
	}
	return m.filtered[m.cursor], true
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m dashboardModel) viewList() string {
	// Split screen: list on left (45%), preview on right
	listWidth := max(int(float64(m.width)*0.45), 30)
	previewWidth := m.width - listWidth - 2

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")

	listContent := m.renderAssetList(listWidth)
	if previewWidth < 30 {
		// Screen too narrow for the preview pane
		s.WriteString(listContent)
	} else {
		left := lipgloss.NewStyle().Width(listWidth).MarginRight(2).Render(listContent)
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderPreview(previewWidth)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m dashboardModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)
	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	s.WriteString(titleStyle.Render(m.deps.printer.Text("dashboard.title") + " - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	for i, group := range m.keys.FullHelp() {
		s.WriteString(sectionStyle.Render([]string{"Navigation", "Actions", "General"}[i]))
		s.WriteString("\n")
		for _, b := range group {
			s.WriteString("  ")
			s.WriteString(lipgloss.NewStyle().Foreground(ui.ColorSuccess).Bold(true).Width(14).Render(b.Help().Key))
			s.WriteString(b.Help().Desc)
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to dashboard"))
	s.WriteString("\n")
	return s.String()
}

func (m dashboardModel) viewConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}

	var s strings.Builder
	p := m.deps.printer

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(60).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorWarning).
		Bold(true)

	promptStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault).
		MarginTop(1)

	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		titleStyle.Render(ui.IconWarning+"  "+p.Text("delete.title")),
		p.Text("delete.confirm", m.deleteTarget.Name),
		ui.StyleMuted.Render(p.Category(m.deleteTarget.Category)+" · "+ui.FormatSizeKB(m.deleteTarget.SizeKB)),
		promptStyle.Render(p.Text("delete.hint")),
	)

	box := boxStyle.Render(content)

	// Center the box vertically
	for i := 0; i < max((m.height-lipgloss.Height(box))/2, 0); i++ {
		s.WriteString("\n")
	}
	s.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, box))
	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	var totalKB float64
	for _, a := range m.filtered {
		totalKB += a.SizeKB
	}

	root := m.deps.root
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		root = strings.Replace(root, home, "~", 1)
	}

	title := titleStyle.Render(ui.IconRocket + " " + m.deps.printer.Text("dashboard.title"))
	stats := statsStyle.Render(fmt.Sprintf("%d assets  %s  %s", len(m.filtered), ui.FormatSizeKB(totalKB), root))

	spacer := max(m.width-lipgloss.Width(title)-lipgloss.Width(stats), 0)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacer), stats)
}

func (m dashboardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Padding(0, 1)

	parts := make([]string, 0, len(domain.Tabs()))
	for _, t := range domain.Tabs() {
		label := m.deps.printer.Tab(t)
		if t == m.tab {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(max(m.width-4, 10))

	prompt := ui.StyleMuted.Render("/ ")
	if m.mode == modeSearch {
		prompt = ui.StylePrimary.Render("/ ")
	}

	content := prompt + m.searchInput.View()
	if m.mode != modeSearch && m.searchInput.Value() == "" {
		content = prompt + ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m dashboardModel) renderAssetList(width int) string {
	var s strings.Builder

	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 2).
			Width(width)

		switch {
		case m.loading:
			s.WriteString(emptyStyle.Render("Scanning..."))
		case m.searchInput.Value() != "":
			s.WriteString(emptyStyle.Render(m.deps.printer.Text("dashboard.no-match")))
		default:
			s.WriteString(emptyStyle.Render(m.deps.printer.Text("list.empty")))
		}
		return s.String()
	}

	end := min(m.offset+m.listHeight(), len(m.filtered))
	for i := m.offset; i < end; i++ {
		s.WriteString(m.renderAssetItem(m.filtered[i], i == m.cursor, width))
	}
	return s.String()
}

func (m dashboardModel) renderAssetItem(a domain.Asset, selected bool, width int) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		nameStyle = ui.StylePrimary.Bold(true)
	}

	size := ui.FormatSizeKB(a.SizeKB)
	label := ""
	if m.tab == domain.TabAll || m.tab == domain.TabMods {
		label = " " + ui.CategoryStyle(a.Category.Key()).Render(m.deps.printer.Category(a.Category))
	}

	// Reserve space for cursor, size and label
	nameWidth := max(width-2-lipgloss.Width(size)-lipgloss.Width(label)-2, 8)
	name := a.Name
	if lipgloss.Width(name) > nameWidth {
		runes := []rune(name)
		for len(runes) > 0 && lipgloss.Width(string(runes))+3 > nameWidth {
			runes = runes[:len(runes)-1]
		}
		name = string(runes) + "..."
	}

	line := cursor + nameStyle.Render(padRight(name, nameWidth)) + " " + ui.StyleInfo.Render(size) + label
	return padRight(line, width) + "\n"
}

func (m dashboardModel) renderFooter() string {
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else {
		statusLine = ui.StyleMuted.Render("Ready")
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	return footerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		statusLine,
		m.help.View(m.keys),
	))
}

func (m dashboardModel) renderPreview(width int) string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(width - 2).
		Height(max(m.height-14, 5))

	placeholder := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Italic(true).
		Padding(1)

	a, ok := m.selected()
	if !ok {
		return borderStyle.Render(placeholder.Render("No asset selected"))
	}
	if m.preview.key != a.Key() {
		return borderStyle.Render(placeholder.Render("Loading preview..."))
	}

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(width - 4).Render(a.Name))
	s.WriteString("\n")
	s.WriteString(ui.StyleAccent.Render(m.deps.printer.Category(a.Category) + " · " + ui.FormatSizeKB(a.SizeKB)))
	s.WriteString("\n\n")
	s.WriteString(m.preview.viewport.View())

	return borderStyle.Render(s.String())
}

func padRight(s string, width int) string {
	// lipgloss.Width ignores ANSI codes
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}

func (m dashboardModel) listHeight() int {
	return max(m.height-14, 3)
}

func (m *dashboardModel) adjustViewport() {
	listHeight := m.listHeight()

	// Scroll down
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
	// Scroll up
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// applySearch filters the loaded tab by the search box without re-scanning
func (m *dashboardModel) applySearch() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	if query == "" {
		m.filtered = m.assets
	} else {
		m.filtered = make([]domain.Asset, 0, len(m.assets))
		for _, a := range m.assets {
			if strings.Contains(strings.ToLower(a.Name), query) {
				m.filtered = append(m.filtered, a)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
}

// Messages
type statusMsg struct {
	message string
	style   lipgloss.Style
}

type assetsLoadedMsg struct {
	tab    domain.Tab
	assets []domain.Asset
	err    error
}

type assetDeletedMsg struct {
	asset domain.Asset
	gone  bool
	err   error
}

type previewLoadedMsg struct {
	key     domain.AssetKey
	content string
}

func setStatus(message string, style lipgloss.Style) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: message, style: style}
	}
}

// loadAssets re-scans the asset tree for the current tab
func (m dashboardModel) loadAssets() tea.Cmd {
	ctx, tab, deps := m.ctx, m.tab, m.deps
	return func() tea.Msg {
		resp, err := deps.list.Execute(ctx, services.ListRequest{
			Tab:     tab,
			SortBy:  deps.sortBy,
			Reverse: deps.reverse,
		})
		if err != nil {
			return assetsLoadedMsg{tab: tab, err: err}
		}
		return assetsLoadedMsg{tab: tab, assets: resp.Assets}
	}
}

func (m dashboardModel) deleteAsset(a domain.Asset) tea.Cmd {
	ctx, del := m.ctx, m.deps.del
	return func() tea.Msg {
		resp, err := del.Execute(ctx, services.DeleteRequest{Asset: a})
		if err != nil {
			return assetDeletedMsg{asset: a, err: err}
		}
		return assetDeletedMsg{asset: a, gone: resp.Gone}
	}
}

func (m dashboardModel) copyPath(a domain.Asset) tea.Cmd {
	repo := m.deps.repo
	return func() tea.Msg {
		path, err := repo.Path(a)
		if err != nil {
			return statusMsg{message: err.Error(), style: ui.StyleError}
		}
		if err := clipboard.WriteAll(path); err != nil {
			return statusMsg{message: "Clipboard unavailable: " + err.Error(), style: ui.StyleWarning}
		}
		return statusMsg{message: "Copied " + path, style: ui.StyleSuccess}
	}
}

func (m dashboardModel) previewSelected() tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	return m.loadPreview(a)
}

func (m dashboardModel) loadPreview(a domain.Asset) tea.Cmd {
	repo := m.deps.repo
	return func() tea.Msg {
		path, err := repo.Path(a)
		if err != nil {
			return previewLoadedMsg{key: a.Key(), content: ui.StyleError.Render(err.Error())}
		}
		return previewLoadedMsg{key: a.Key(), content: renderAssetPreview(a, path)}
	}
}

// renderAssetPreview shows a translation's text or a folder asset's tree
func renderAssetPreview(a domain.Asset, path string) string {
	var s strings.Builder
	s.WriteString(ui.StyleMuted.Render(path))
	s.WriteString("\n\n")

	switch c := a.Category.(type) {
	case domain.CustomTranslation:
		content, err := readHead(path, previewMaxBytes)
		if err != nil {
			s.WriteString(ui.StyleError.Render("Error loading preview: " + err.Error()))
			break
		}
		s.WriteString(highlightTranslation(content))

	case domain.Mod:
		if c.Type == domain.PartAssetPack {
			s.WriteString(ui.StyleMuted.Render("Binary part asset pack"))
			break
		}
		s.WriteString(fileTree(path, previewMaxDepth, previewMaxEntries))

	default:
		s.WriteString(fileTree(path, previewMaxDepth, previewMaxEntries))
	}
	return s.String()
}

func readHead(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// highlightTranslation applies key/value highlighting to a translation file
func highlightTranslation(content string) string {
	lexer := lexers.Get("properties")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	if err := formatters.TTY16m.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

// fileTree draws the contents of a folder asset, depth and entry limited
func fileTree(root string, maxDepth, maxEntries int) string {
	var s strings.Builder
	count := 0

	var walk func(dir, prefix string, depth int)
	walk = func(dir, prefix string, depth int) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.WriteString(prefix + ui.StyleError.Render(err.Error()) + "\n")
			return
		}
		for i, e := range entries {
			if count >= maxEntries {
				return
			}
			count++

			branch, indent := "├── ", "│   "
			if i == len(entries)-1 {
				branch, indent = "└── ", "    "
			}

			name := e.Name()
			if e.IsDir() {
				s.WriteString(prefix + branch + ui.StyleAccent.Render(name+"/") + "\n")
				if depth < maxDepth {
					walk(filepath.Join(dir, name), prefix+indent, depth+1)
				}
				continue
			}
			s.WriteString(prefix + branch + name + "\n")
		}
	}

	walk(root, "", 1)
	if count == 0 {
		return ui.StyleMuted.Render("(empty)")
	}
	if count >= maxEntries {
		s.WriteString(ui.StyleMuted.Render(fmt.Sprintf("… showing first %d entries", maxEntries)) + "\n")
	}
	return s.String()
}
