package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.judgeModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case TablesLoadedMsg:
		m.loading = false
		m.calcEngine = calculation.NewEngineWithTables(msg.Tables)
		m.compareEngine = compare.NewCompareEngine(m.calcEngine)
		m.tablesSource = msg.Source
		return m, nil

	case tuimsg.RefundRequestedMsg:
		m.loading = true
		m.loadingMessage = "計算中..."
		return m, estimateCmd(m.calcEngine, msg.Request)

	case tuimsg.RefundCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResult(msg.Result)
		return m, navigate(SceneResults)

	case tuimsg.ComparisonRequestedMsg:
		return m, compareCmd(m.compareEngine, msg.Options)

	case tuimsg.ComparisonCompleteMsg:
		if msg.Err != nil {
			m.judgeModel.SetError(msg.Err)
			return m, nil
		}
		m.judgeModel.SetComparison(msg.Set)
		return m, nil

	case tuimsg.ExportRequestedMsg:
		if m.resultsModel.Result() == nil {
			return m, nil
		}
		return m, exportCmd(m.resultsModel.Result(), msg.Format, m.exportDir)

	case tuimsg.ExportCompleteMsg:
		if msg.Err != nil {
			m.resultsModel.SetStatus("保存に失敗しました: " + msg.Err.Error())
		} else {
			m.resultsModel.SetStatus("保存しました: " + msg.Path)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// handleKeyPress processes keyboard input. Plain letters belong to the text
// inputs, so global shortcuts use ctrl and function keys.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An error is dismissed by any key.
	if m.err != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "f1":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneForm {
			back := m.previousScene
			if back == m.currentScene || back == SceneHelp {
				back = SceneForm
			}
			return m, navigate(back)
		}

	case "ctrl+f":
		return m, navigate(SceneForm)

	case "ctrl+g":
		return m, navigate(SceneJudge)

	case "ctrl+o":
		return m, navigate(SceneResults)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneJudge:
		m.judgeModel, cmd = m.judgeModel.Update(msg)
	}
	return m, cmd
}
