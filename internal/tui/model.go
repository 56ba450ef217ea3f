package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/internal/output"
	"github.com/rgehrsitz/kogaku/internal/tui/scenes"
	"github.com/rgehrsitz/kogaku/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Parameter tables
	tablesPath   string
	tablesSource string

	calcEngine    *calculation.Engine
	compareEngine *compare.CompareEngine

	// Scene models
	formModel    *scenes.RefundFormModel
	resultsModel *scenes.ResultsModel
	judgeModel   *scenes.JudgeModel

	// Exports go here; empty means the working directory.
	exportDir string

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. tablesPath may be empty to use
// the built-in parameter tables.
func NewModel(tablesPath string) Model {
	calcEngine := calculation.NewEngine()
	return Model{
		currentScene:  SceneForm,
		tablesPath:    tablesPath,
		calcEngine:    calcEngine,
		compareEngine: compare.NewCompareEngine(calcEngine),
		formModel:     scenes.NewRefundFormModel(),
		resultsModel:  scenes.NewResultsModel(),
		judgeModel:    scenes.NewJudgeModel(),
		loading:       tablesPath != "",
		width:         80,
		height:        24,
	}
}

// WithExportDir sets the directory exported reports are written to
func (m Model) WithExportDir(dir string) Model {
	m.exportDir = dir
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadTablesCmd(m.tablesPath), m.formModel.Init())
}

// loadTablesCmd reads a parameter table file, or hands back the built-in
// tables when no path was given
func loadTablesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return TablesLoadedMsg{Tables: calculation.DefaultTables(), Source: "built-in"}
		}
		tables, err := config.NewInputParser().LoadTablesFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return TablesLoadedMsg{Tables: tables, Source: path}
	}
}

// estimateCmd runs a refund estimate off the update loop
func estimateCmd(engine *calculation.Engine, req domain.RefundRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Estimate(req)
		return tuimsg.RefundCompleteMsg{Result: result, Err: err}
	}
}

// compareCmd classifies an income and compares regimes
func compareCmd(engine *compare.CompareEngine, opts compare.CompareOptions) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(opts)
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// exportCmd writes a result with one of the registered output formatters
func exportCmd(result *domain.RefundCalculationResult, format, dir string) tea.Cmd {
	return func() tea.Msg {
		f := output.GetFormatterByName(format)
		if f == nil {
			return tuimsg.ExportCompleteMsg{Err: fmt.Errorf("unsupported format: %s", format)}
		}
		filename := ""
		if dir != "" {
			filename = filepath.Join(dir, fmt.Sprintf("kogaku_refund_%s.%s", time.Now().Format("20060102_150405"), f.Name()))
		}
		path, err := output.WriteFormatted(f, result, filename)
		return tuimsg.ExportCompleteMsg{Path: path, Err: err}
	}
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene { return m.currentScene }

// Err returns the error currently shown, if any
func (m Model) Err() error { return m.err }
