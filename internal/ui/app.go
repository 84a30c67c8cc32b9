package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/sitelens/internal/config"
	"github.com/five82/sitelens/internal/export"
	"github.com/five82/sitelens/internal/grid"
	"github.com/five82/sitelens/internal/logging"
	"github.com/five82/sitelens/internal/prefs"
	"github.com/five82/sitelens/internal/state"
	"github.com/five82/sitelens/internal/workspace"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Exporter  *export.Adapter
	Logger    *log.Logger
	// LogPath is the file shown by the log panel.
	LogPath string
	// Reload forces the row source to load again. Optional.
	Reload   func() error
	Interval time.Duration
}

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarn
	toastError
)

type toast struct {
	id    int
	level toastLevel
	text  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	cfg       config.Config
	prefsPath string
	exporter  *export.Adapter
	logger    *log.Logger
	logPath   string
	reload    func() error
	interval  time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	gridKeys grid.KeyMap
	wsKeys   workspace.KeyMap
	help     help.Model
	ws       workspace.Model
	modal    Modal
	width    int
	height   int
	ready    bool

	// Data state
	snapshot   state.Snapshot
	generation uint64
	loaded     bool

	// Export state
	scope     export.Scope
	exporting bool

	toast    *toast
	toastSeq int
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultUIInterval
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	cfg := opts.Config
	if cfg.KeyField == "" {
		cfg.KeyField = "url"
	}

	theme := GetTheme(opts.Prefs.Theme)
	gridKeys := grid.DefaultKeyMap()
	wsKeys := workspace.DefaultKeyMap()
	gridStyles := theme.GridStyles()
	wsStyles := theme.WorkspaceStyles()

	ws := workspace.New(workspace.Options{
		Master: grid.Options{
			Columns:         cfg.GridColumns(),
			RowHeight:       cfg.RowHeight,
			VariableHeights: true,
			Overscan:        cfg.Overscan,
			Debounce:        cfg.Debounce,
			Truncate:        cfg.Truncate,
			Facets:          workspace.DefaultFacets(),
			Styles:          &gridStyles,
			KeyMap:          &gridKeys,
			EmptyText:       "No crawl rows yet",
		},
		Detail: grid.Options{
			Overscan: cfg.Overscan,
			Debounce: cfg.Debounce,
			Truncate: cfg.Truncate,
			Styles:   &gridStyles,
			KeyMap:   &gridKeys,
		},
		MinPane: cfg.MinPane,
		Bottom:  opts.Prefs.PaneBottom,
		Styles:  &wsStyles,
		Keys:    &wsKeys,
	})
	ws.Master().Layout().Restore(opts.Prefs.Columns)
	if opts.Prefs.Facet != "" {
		ws.SetFacet(opts.Prefs.Facet)
	}

	scope := cfg.ExportScope
	if opts.Prefs.ExportScope != "" {
		if s, err := export.ParseScope(opts.Prefs.ExportScope); err == nil {
			scope = s
		}
	}
	if scope == "" {
		scope = export.ScopeAll
	}

	h := help.New()
	h.ShortSeparator = " · "

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		cfg:       cfg,
		prefsPath: prefsPath,
		exporter:  opts.Exporter,
		logger:    logger,
		logPath:   opts.LogPath,
		reload:    opts.Reload,
		interval:  interval,
		theme:     theme,
		keys:      DefaultKeyMap(),
		gridKeys:  gridKeys,
		wsKeys:    wsKeys,
		help:      h,
		ws:        ws,
		scope:     scope,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.interval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Releases always reach the workspace so a drag can end under an
		// overlay too.
		if m.modal != nil && msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		var cmd tea.Cmd
		m.ws, cmd = m.ws.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.ws.SetOrigin(0, headerLines)
		m.ws.SetSize(msg.Width, max(0, msg.Height-headerLines-footerLines))
		m.help.Width = msg.Width
		var cmd tea.Cmd
		if m.modal != nil {
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		}
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case grid.YankMsg:
		if msg.Err != nil {
			cmd := m.notify(toastError, "Copy failed: "+msg.Err.Error())
			return m, cmd
		}
		cmd := m.notify(toastInfo, "Copied "+truncate(msg.Value, 48))
		return m, cmd

	case toggleColumnMsg:
		cmd := m.toggleColumn(msg.index)
		return m, cmd

	case saveChosenMsg:
		m.exporting = true
		return m, runExportCmd(m.ctx, msg.job, msg.path)

	case exportDoneMsg:
		cmd := m.handleExportDone(msg)
		return m, cmd

	case reloadDoneMsg:
		if msg.err != nil {
			cmd := m.notify(toastError, "Reload failed: "+msg.err.Error())
			return m, cmd
		}
		return m, fetchSnapshotCmd(m.store)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case logLinesMsg:
		if m.modal == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.ws, cmd = m.ws.Update(msg)
	cmds = append(cmds, cmd)
	if m.modal != nil {
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.ws.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey routes keys: the open overlay first, then a grid editing its
// filter, then application bindings, then the workspace.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.ws.Filtering() {
		var cmd tea.Cmd
		m.ws, cmd = m.ws.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = newHelpOverlay(m.keys, m.gridKeys, m.wsKeys)
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.ws.SetStyles(m.theme.WorkspaceStyles(), m.theme.GridStyles())
		cmd := m.notify(toastInfo, "Theme: "+m.theme.Name)
		return m, cmd

	case key.Matches(msg, m.keys.Export):
		cmd := m.beginExport()
		return m, cmd

	case key.Matches(msg, m.keys.Scope):
		m.scope = m.scope.Toggle()
		cmd := m.notify(toastInfo, fmt.Sprintf("Export scope: %s rows", m.scope))
		return m, cmd

	case key.Matches(msg, m.keys.Columns):
		m.modal = newColumnPicker(m.ws.Master().Layout())
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.logPath == "" {
			cmd := m.notify(toastWarn, "Logging to file is disabled")
			return m, cmd
		}
		m.modal = newLogPanel(m.logPath, m.theme, m.width, m.height)
		return m, readLogCmd(m.logPath)

	case key.Matches(msg, m.keys.Reload):
		if m.reload == nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, reloadCmd(m.reload)
	}

	var cmd tea.Cmd
	m.ws, cmd = m.ws.Update(msg)
	return m, cmd
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.interval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot stores the snapshot and hands rows to the grid when the
// store generation moved.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if m.loaded && snap.Generation == m.generation {
		return
	}
	m.generation = snap.Generation
	m.loaded = true
	m.ws.SetRows(grid.RowsFromMaps(snap.Rows, m.cfg.KeyField))
	m.logger.Debug("rows refreshed", "rows", len(snap.Rows), "generation", snap.Generation)
}

func (m *Model) toggleColumn(i int) tea.Cmd {
	layout := m.ws.Master().Layout()
	if i < 0 || i >= layout.Len() {
		return nil
	}
	if layout.Visible(i) && len(layout.VisibleIndexes()) == 1 {
		return m.notify(toastWarn, "At least one column must stay visible")
	}
	m.ws.ToggleColumn(i)
	return nil
}

// exportRows returns the rows covered by the current scope and the visible
// master columns in display order.
func (m Model) exportRows() ([]grid.Row, []grid.ColumnDef) {
	master := m.ws.Master()
	rows := master.Rows()
	if m.scope == export.ScopeFiltered {
		rows = master.FilteredRows()
	}
	layout := master.Layout()
	idx := layout.VisibleIndexes()
	cols := make([]grid.ColumnDef, 0, len(idx))
	for _, i := range idx {
		cols = append(cols, layout.Def(i))
	}
	return rows, cols
}

func (m *Model) beginExport() tea.Cmd {
	if m.exporter == nil {
		return m.notify(toastWarn, "Export is not available")
	}
	rows, cols := m.exportRows()
	job, err := m.exporter.Begin(rows, cols)
	switch {
	case errors.Is(err, export.ErrNoData):
		return m.notify(toastWarn, "Nothing to export")
	case errors.Is(err, export.ErrBusy):
		return m.notify(toastWarn, "An export is already running")
	case err != nil:
		return m.notify(toastError, "Export failed: "+err.Error())
	}
	m.modal = newSavePrompt(job, m.cfg.ExportDir)
	return nil
}

func (m *Model) handleExportDone(msg exportDoneMsg) tea.Cmd {
	m.exporting = false
	if errors.Is(msg.err, export.ErrCancelled) {
		return nil
	}
	if msg.err != nil {
		return m.notify(toastError, "Export failed: "+msg.err.Error())
	}
	res := msg.result
	text := fmt.Sprintf("Exported %s %s to %s", groupDigits(res.Rows), plural(res.Rows, "row"), truncateMiddle(res.Path, 48))
	if res.Bytes > 0 {
		text += " (" + humanBytes(res.Bytes) + ")"
	}
	return m.notify(toastSuccess, text)
}

// notify shows a footer message until it expires or is replaced.
func (m *Model) notify(level toastLevel, text string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, level: level, text: text}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// quit persists preferences and releases grid timers.
func (m *Model) quit() {
	p := prefs.Prefs{
		Theme:       m.theme.Name,
		PaneBottom:  m.ws.Split().Bottom(),
		ExportScope: string(m.scope),
		Columns:     m.ws.Master().Layout().Snapshot(),
	}
	if f := m.ws.Master().Facet(); f != nil {
		p.Facet = f.Label
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
	m.ws.Close()
}

// renderFooter shows the current notice or the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	if m.toast != nil {
		style := styles.Text
		switch m.toast.level {
		case toastSuccess:
			style = styles.SuccessText
		case toastWarn:
			style = styles.WarningText
		case toastError:
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).MaxWidth(m.width).Render(bg.Render(truncate(m.toast.text, m.width-2), style))
	}
	hints := m.help.ShortHelpView(append(m.gridKeys.ShortHelp(), m.keys.ShortHelp()...))
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(
		lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface)).Render(hints),
	)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type exportDoneMsg struct {
	result export.Result
	err    error
}

type reloadDoneMsg struct {
	err error
}

type toastExpiredMsg struct {
	id int
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func runExportCmd(ctx context.Context, job *export.Job, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ExportTimeout)
		defer cancel()
		res, err := job.Run(ctx, path)
		return exportDoneMsg{result: res, err: err}
	}
}

func reloadCmd(reload func() error) tea.Cmd {
	return func() tea.Msg {
		return reloadDoneMsg{err: reload()}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
