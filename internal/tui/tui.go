package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"mdmend/internal/backup"
	"mdmend/internal/mdscan"
	"mdmend/internal/report"
)

// Options configures an interactive scan.
type Options struct {
	RootPath string
	ScanCfg  mdscan.Config
	Fix      bool
	NoBackup bool
	Watch    bool
	JSONOut  string
	HTMLOut  string
	MDOut    string
}

type scanBeganMsg struct{ total int }
type fileAnalyzedMsg struct{ analysis mdscan.FileAnalysis }
type backupDoneMsg struct {
	dir   string
	count int
}
type fileFixedMsg struct {
	path  string
	fixes int
}
type scanDoneMsg struct {
	results []mdscan.FileAnalysis
	summary mdscan.Summary
}
type scanErrorMsg struct{ err error }
type tickMsg struct{ t time.Time }
type fileChangedMsg struct{ path string }
type watchErrorMsg struct{ err error }

type model struct {
	opts Options

	events  chan tea.Msg
	started time.Time
	ended   time.Time
	done    bool

	spin spinner.Model
	prog progress.Model
	vp   viewport.Model

	lines []string

	totalFiles int
	processed  int
	lastCount  int
	fps        float64

	summary   mdscan.Summary
	results   []mdscan.FileAnalysis
	backupDir string

	jsonPath string
	htmlPath string
	mdPath   string

	showIssues bool

	scanCtx    context.Context
	scanCancel context.CancelFunc
}

// Run analyzes markdown files under opts.RootPath in a full-screen TUI,
// optionally applying fixes and re-scanning on file changes.
func Run(opts Options) error {
	m := &model{opts: opts}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	m.prog = progress.New(progress.WithDefaultGradient())
	m.started = time.Now()
	m.events = make(chan tea.Msg, 256)

	m.startScan()

	if m.opts.Watch {
		return tea.Batch(m.spin.Tick, m.waitForEvent(), tickCmd(), m.startWatcher())
	}
	return tea.Batch(m.spin.Tick, m.waitForEvent(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg{t: t} })
}

func (m *model) startScan() {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	m.scanCtx, m.scanCancel = context.WithCancel(context.Background())
	ctx := m.scanCtx
	opts := m.opts
	events := m.events

	go func() {
		emit := func(msg tea.Msg) bool {
			select {
			case events <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		}

		files, err := mdscan.FindMarkdownFiles(opts.RootPath, opts.ScanCfg)
		if err != nil {
			emit(scanErrorMsg{err: err})
			return
		}
		if !emit(scanBeganMsg{total: len(files)}) {
			return
		}

		results := mdscan.Scan(ctx, opts.RootPath, files, opts.ScanCfg, func(a mdscan.FileAnalysis) {
			emit(fileAnalyzedMsg{analysis: a})
		})
		summary := mdscan.Summarize(results)

		if opts.Fix && summary.TotalIssues > 0 && ctx.Err() == nil {
			if !opts.NoBackup {
				if dir, n, berr := backup.Create(opts.RootPath, files, opts.ScanCfg.MaxBackupFiles); berr == nil {
					if !emit(backupDoneMsg{dir: dir, count: n}) {
						return
					}
				}
			}
			for _, a := range results {
				if len(a.Issues) == 0 {
					continue
				}
				fixes := mdscan.ApplyFixes(a, opts.ScanCfg, false)
				if fixes > 0 {
					summary.FixesApplied += fixes
					if !emit(fileFixedMsg{path: a.FilePath, fixes: fixes}) {
						return
					}
				}
			}
		}

		emit(scanDoneMsg{results: results, summary: summary})
	}()
}

func (m *model) startWatcher() tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrorMsg{err: err}
		}
		defer watcher.Close()

		err = filepath.Walk(m.opts.RootPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if filepath.Base(path) == ".git" || strings.Contains(filepath.Base(path), backup.Prefix) {
					return filepath.SkipDir
				}
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return watchErrorMsg{err: err}
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&fsnotify.Write != fsnotify.Write {
					continue
				}
				rel, rerr := filepath.Rel(m.opts.RootPath, event.Name)
				if rerr != nil {
					continue
				}
				rel = filepath.ToSlash(rel)

				matches := len(m.opts.ScanCfg.IncludePatterns) == 0
				for _, pattern := range m.opts.ScanCfg.IncludePatterns {
					if ok, _ := doublestar.PathMatch(pattern, rel); ok {
						matches = true
						break
					}
				}
				if matches {
					return fileChangedMsg{path: event.Name}
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrorMsg{err: werr}
			}
		}
	}
}

func (m *model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *model) resetScan() {
	m.totalFiles = 0
	m.processed = 0
	m.lastCount = 0
	m.results = nil
	m.summary = mdscan.Summary{}
	m.backupDir = ""
	m.started = time.Now()
	m.ended = time.Time{}
	m.done = false

	// Keep the last line (the rescan notification) visible in the fresh log.
	if len(m.lines) > 0 {
		m.lines = []string{m.lines[len(m.lines)-1]}
	}
	m.vp.SetContent("")
	m.vp.GotoTop()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.scanCancel != nil {
				m.scanCancel()
			}
			return m, tea.Quit
		case "i":
			m.showIssues = !m.showIssues
			m.refreshViewport()
			return m, nil
		case "r":
			if m.done {
				m.lines = append(m.lines, "🔄 Manual rescan triggered")
				m.resetScan()
				m.startScan()
				return m, m.waitForEvent()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		// Header, stats, progress bar, spacer, footer.
		reserved := 5
		if m.vp.Width == 0 {
			m.vp = viewport.Model{Width: msg.Width, Height: max(msg.Height-reserved, 3)}
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(msg.Height-reserved, 3)
		}
		m.prog.Width = max(msg.Width-4, 10)
		m.refreshViewport()
		return m, nil
	case scanBeganMsg:
		m.totalFiles = msg.total
		m.lines = append(m.lines, fmt.Sprintf("🔍 Scanning %d markdown files...", msg.total))
		m.refreshViewport()
		return m, m.waitForEvent()
	case fileAnalyzedMsg:
		a := msg.analysis
		m.processed++
		icon := "✅"
		if len(a.Issues) > 0 {
			icon = "❌"
		}
		m.lines = append(m.lines, fmt.Sprintf("%s %s  links:%d issues:%d", icon, a.FilePath, a.TotalLinks, len(a.Issues)))
		m.refreshViewport()
		return m, m.waitForEvent()
	case backupDoneMsg:
		m.backupDir = msg.dir
		m.lines = append(m.lines, fmt.Sprintf("📦 Backup: %s (%d files)", msg.dir, msg.count))
		m.refreshViewport()
		return m, m.waitForEvent()
	case fileFixedMsg:
		m.lines = append(m.lines, fmt.Sprintf("🔧 Fixed %d link(s) in %s", msg.fixes, msg.path))
		m.refreshViewport()
		return m, m.waitForEvent()
	case scanErrorMsg:
		m.lines = append(m.lines, fmt.Sprintf("❌ Scan error: %v", msg.err))
		m.done = true
		m.ended = time.Now()
		m.refreshViewport()
		return m, nil
	case tickMsg:
		delta := m.processed - m.lastCount
		m.lastCount = m.processed
		m.fps = float64(delta)
		return m, tickCmd()
	case scanDoneMsg:
		m.done = true
		m.ended = time.Now()
		m.results = msg.results
		m.summary = msg.summary
		m.writeReports()
		if m.opts.Watch {
			return m, m.startWatcher()
		}
		return m, nil
	case fileChangedMsg:
		m.lines = append(m.lines, fmt.Sprintf("🔄 File changed: %s", msg.path))
		m.refreshViewport()
		m.resetScan()
		m.startScan()
		return m, m.waitForEvent()
	case watchErrorMsg:
		m.lines = append(m.lines, fmt.Sprintf("❌ Watch error: %v", msg.err))
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m *model) refreshViewport() {
	var filtered []string
	if m.showIssues {
		for _, l := range m.lines {
			if strings.HasPrefix(l, "❌") || strings.HasPrefix(l, "🔧") {
				filtered = append(filtered, l)
			}
		}
	} else {
		filtered = m.lines
	}
	m.vp.SetContent(strings.Join(filtered, "\n"))
	m.vp.GotoBottom()
}

func (m *model) writeReports() {
	s := report.Summary{
		RootPath:   m.opts.RootPath,
		StartedAt:  m.started,
		FinishedAt: m.ended,
		Totals:     m.summary,
	}
	if m.opts.JSONOut != "" {
		if p, err := report.WriteJSON(m.opts.JSONOut, m.results, s); err == nil {
			m.jsonPath = p
			s.JSONPath = p
		}
	}
	if m.opts.HTMLOut != "" {
		if p, err := report.WriteHTML(m.opts.HTMLOut, m.results, s); err == nil {
			m.htmlPath = p
		}
	}
	if m.opts.MDOut != "" {
		if p, err := report.WriteMarkdown(m.opts.MDOut, m.results, s); err == nil {
			m.mdPath = p
		}
	}
}

func (m *model) View() string {
	headerText := fmt.Sprintf(" Analyzing %s ", m.opts.RootPath)
	if m.opts.Watch {
		headerText = fmt.Sprintf(" Analyzing %s (WATCH MODE) ", m.opts.RootPath)
	}
	header := lipgloss.NewStyle().Bold(true).Render(headerText)

	if m.done {
		dur := time.Since(m.started)
		if !m.ended.IsZero() {
			dur = m.ended.Sub(m.started)
		}
		summary := []string{
			fmt.Sprintf("Duration: %s", dur.Truncate(time.Millisecond)),
			fmt.Sprintf("Files: %d  Links: %d  Issues: %d", m.summary.TotalFiles, m.summary.TotalLinks, m.summary.TotalIssues),
			fmt.Sprintf("Broken: %d  Mismatched: %d  Fixes: %d", m.summary.BrokenLinks, m.summary.MismatchedText, m.summary.FixesApplied),
		}
		if m.backupDir != "" {
			summary = append(summary, fmt.Sprintf("Backup: %s", m.backupDir))
		}
		if m.jsonPath != "" {
			summary = append(summary, fmt.Sprintf("JSON: %s", m.jsonPath))
		}
		if m.htmlPath != "" {
			summary = append(summary, fmt.Sprintf("HTML: %s", m.htmlPath))
		}
		if m.mdPath != "" {
			summary = append(summary, fmt.Sprintf("Markdown: %s", m.mdPath))
		}
		footerText := "Controls: [q] quit  [i] toggle issues  [r] rescan"
		footer := lipgloss.NewStyle().Faint(true).Render(footerText)
		container := lipgloss.NewStyle().Padding(1)
		return container.Render(strings.Join(append([]string{header}, append(summary, footer)...), "\n"))
	}

	percent := 0.0
	if m.totalFiles > 0 {
		percent = float64(m.processed) / float64(m.totalFiles)
	}
	progressLine := m.prog.ViewAs(percent)
	stats := fmt.Sprintf("%s  files:%d/%d  rate:%.1f/s", m.spin.View(), m.processed, m.totalFiles, m.fps)
	body := m.vp.View()
	footerText := "Controls: [q] quit  [i] toggle issues"
	footer := lipgloss.NewStyle().Faint(true).Render(footerText)
	container := lipgloss.NewStyle().Padding(1)
	return container.Render(strings.Join([]string{header, stats, progressLine, "", body, footer}, "\n"))
}
