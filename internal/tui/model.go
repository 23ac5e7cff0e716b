package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/microbench/internal/config"
	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/workload"
)

// Session is what the dashboard runs.
type Session struct {
	Workloads []workload.Workload
	Runner    orchestration.Runner
	Config    config.AppConfig
	Options   orchestration.PresentationOptions
	Version   string
}

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	results    []orchestration.BenchmarkResult
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// logsWidth returns the width allocated to the logs panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	body := l.bodyHeight()
	h := MetricsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	session   Session
	ref       *programRef
	paused    bool
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, s Session) Model {
	names := make([]string, len(s.Workloads))
	for i, w := range s.Workloads {
		names[i] = w.Name()
	}

	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel(names, s.Options.Unit)
	logs.AddExecutionConfig(s.Config)
	keymap := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(s.Version),
		logs:    logs,
		metrics: NewMetricsModel(s.Options.Unit),
		chart:   NewChartModel(s.Options.Unit),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		session:   s,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSessionCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Run == 1 {
			m.chart.StartBenchmark()
		}
		m.metrics.AddSample(msg)
		m.header.SetRun(msg.Workload, msg.Run, msg.Runs)
		if !m.paused {
			m.logs.AddProgressEntry(msg)
		}
		m.chart.AddSample(msg.Sample, msg.AverageProgress, msg.ETA)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results, msg.Options)
		return m, nil

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.ctx), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case SessionCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted session
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.results = msg.Results
		m.header.SetDone()
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted session
		}
		if !m.done {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.logs.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel(m.session.Options.Unit)
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.results = nil

		return m, tea.Batch(
			tickCmd(),
			startSessionCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 55
	MetricsPanelHeight    = 7
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run starts the dashboard and blocks until the user quits. It returns the
// exit code and the results of the last completed session.
func Run(ctx context.Context, s Session) (int, []orchestration.BenchmarkResult) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		if err != nil && m.exitCode == apperrors.ExitSuccess {
			return apperrors.ExitCodeFor(ctx.Err()), m.results
		}
		return m.exitCode, m.results
	}
	if err != nil {
		return apperrors.ExitErrorGeneric, nil
	}
	return apperrors.ExitSuccess, nil
}

// startSessionCmd returns a tea.Cmd that runs the benchmarks.
func startSessionCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteBenchmarks(ctx, s.Workloads, s.Runner, reporter, io.Discard)
		exitCode := orchestration.AnalyzeResults(results, s.Options, presenter, presenter, io.Discard)

		return SessionCompleteMsg{ExitCode: exitCode, Results: results, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads host CPU and memory load and returns a SysStatsMsg.
func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
