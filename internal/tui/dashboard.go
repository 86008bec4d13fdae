// Package tui is the interactive donorlens dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/projector"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
	"nathanbeddoewebdev/donorlens/internal/tui/components"
	"nathanbeddoewebdev/donorlens/internal/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

// cycleDoneMsg carries a finished fetch cycle. It is only shown if the
// tracker still considers its sequence the latest for the tab.
type cycleDoneMsg struct {
	vm view.ViewModel
}

// --- Dashboard model ---

type dashboardModel struct {
	ctx       context.Context
	assembler *view.Assembler
	tracker   *view.Tracker
	org       string

	tabs   []bundles.Definition
	active int

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// newDashboardModel opens on tab, falling back to the first tab.
func newDashboardModel(ctx context.Context, a *view.Assembler, org string, tab string) (dashboardModel, error) {
	names := bundles.List()
	tabs := make([]bundles.Definition, 0, len(names))
	active := 0
	for _, name := range names {
		def, err := bundles.Get(name)
		if err != nil {
			return dashboardModel{}, err
		}
		if def.Name == tab {
			active = len(tabs)
		}
		tabs = append(tabs, def)
	}
	if len(tabs) == 0 {
		return dashboardModel{}, fmt.Errorf("no dashboard tabs registered")
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	vp := viewport.New(0, 0)
	vp.KeyMap = scrollKeyMap()

	return dashboardModel{
		ctx:       ctx,
		assembler: a,
		tracker:   a.Tracker(),
		org:       org,
		tabs:      tabs,
		active:    active,
		spinner:   s,
		viewport:  vp,
	}, nil
}

// RunDashboard starts the full-window dashboard on tab (the first tab when
// tab is empty or unknown).
func RunDashboard(ctx context.Context, a *view.Assembler, org string, tab string) error {
	m, err := newDashboardModel(ctx, a, org, tab)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// scrollKeyMap leaves left/right and h/l free for tab switching.
func scrollKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
		Left:         key.NewBinding(key.WithDisabled()),
		Right:        key.NewBinding(key.WithDisabled()),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.tabName()))
}

func (m dashboardModel) tabName() string { return m.tabs[m.active].Name }

// load starts a new cycle for tab. Refreshing does not cancel the cycle
// already in flight; its result is dropped when it arrives.
func (m dashboardModel) load(tab string) tea.Cmd {
	seq := m.tracker.Begin(tab)
	ctx, a := m.ctx, m.assembler
	return func() tea.Msg {
		return cycleDoneMsg{vm: a.Assemble(ctx, tab, seq)}
	}
}

// --- Update ---

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case cycleDoneMsg:
		if m.tracker.Commit(msg.vm) && msg.vm.Tab == m.tabName() {
			m.syncViewport()
			m.viewport.GotoTop()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.current().Status == view.StatusLoading {
			m.syncViewport()
		}
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		cmd := m.load(m.tabName())
		m.syncViewport()
		return m, cmd
	case "right", "l", "tab":
		return m.switchTo((m.active + 1) % len(m.tabs))
	case "left", "h", "shift+tab":
		return m.switchTo((m.active + len(m.tabs) - 1) % len(m.tabs))
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.tabs) {
				return m.switchTo(i)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// switchTo shows tab i, loading it on first visit.
func (m dashboardModel) switchTo(i int) (tea.Model, tea.Cmd) {
	m.active = i
	var cmd tea.Cmd
	if _, ok := m.tracker.Current(m.tabName()); !ok {
		cmd = m.load(m.tabName())
	}
	m.syncViewport()
	m.viewport.GotoTop()
	return m, cmd
}

// current returns the published model of the active tab.
func (m dashboardModel) current() view.ViewModel {
	vm, ok := m.tracker.Current(m.tabName())
	if !ok {
		return view.Loading(m.tabName(), 0)
	}
	return vm
}

// --- View ---

func (m *dashboardModel) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-m.chromeHeight(), 1)
	m.viewport.SetContent(m.renderBody(m.current()))
}

func (m dashboardModel) chromeHeight() int {
	return lipgloss.Height(m.header()) +
		lipgloss.Height(m.tabBar()) +
		lipgloss.Height(m.footer()) +
		lipgloss.Height(m.statusBar())
}

func (m dashboardModel) header() string {
	right := ""
	if m.org != "" {
		right = "org " + m.org
	}
	return components.Header(m.width, m.tabs[m.active].Title, right)
}

func (m dashboardModel) tabBar() string {
	titles := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		titles[i] = t.Title
	}
	return components.TabBar(m.width, titles, m.active)
}

func (m dashboardModel) footer() string {
	return components.Footer(m.width, []components.KeyBinding{
		{Key: "←/→", Desc: "tab"},
		{Key: "1-9", Desc: "jump"},
		{Key: "j/k", Desc: "scroll"},
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "quit"},
	})
}

func (m dashboardModel) statusBar() string {
	msg, level := statusLine(m.current())
	if msg == "" {
		return ""
	}
	return components.StatusBar(m.width, msg, level)
}

// statusLine describes partial or placeholder data in vm.
func statusLine(vm view.ViewModel) (string, components.Level) {
	switch {
	case vm.Status == view.StatusError:
		return vm.Message, components.LevelError
	case vm.Partial() && vm.Synthetic:
		return fmt.Sprintf("Unavailable: %s. Sample data shown where marked.",
			strings.Join(vm.FailedQueries, ", ")), components.LevelWarn
	case vm.Partial():
		return fmt.Sprintf("Unavailable: %s. Figures may be incomplete.",
			strings.Join(vm.FailedQueries, ", ")), components.LevelWarn
	}
	return "", components.LevelInfo
}

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{m.header(), m.tabBar(), m.viewport.View()}
	if bar := m.statusBar(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m dashboardModel) renderBody(vm view.ViewModel) string {
	height := max(m.height-m.chromeHeight(), 1)

	switch vm.Status {
	case view.StatusLoading:
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+styles.MutedText.Render("Loading "+m.tabs[m.active].Title+"..."))
	case view.StatusError:
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render(vm.Message))
	}

	inner := max(m.width-4, 20)
	blocks := []string{renderSummary(vm, inner)}
	for _, c := range projector.Project(vm) {
		blocks = append(blocks, components.Chart(c, inner))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(blocks, "\n\n"))
}

func renderSummary(vm view.ViewModel, width int) string {
	stats := projector.Summary(vm)
	cards := make([]string, 0, len(stats)+1)
	for _, s := range stats {
		cards = append(cards, styles.Card.Padding(0, 1).Render(
			styles.Label.Render(s.Label)+"\n"+styles.Value.Render(components.Value(s.Value, s.Unit))))
	}
	if peak := projector.PeakMonth(vm); peak != "" {
		cards = append(cards, styles.Card.Padding(0, 1).Render(
			styles.Label.Render("Peak month")+"\n"+styles.Value.Render(peak)))
	}
	if len(cards) == 0 {
		return ""
	}

	// Wrap cards onto rows that fit width.
	var rows []string
	var row []string
	used := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, c)
		used += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
