package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneJudge:
		content = m.judgeModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(0, contentHeight)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("kogaku - 高額療養費 払い戻し計算")
	breadcrumb := SubtitleStyle.Render(m.currentScene.String())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		breadcrumb,
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("ctrl+f", "入力"),
		formatShortcut("ctrl+o", "結果"),
		formatShortcut("ctrl+g", "区分判定"),
		formatShortcut("f1", "ヘルプ"),
		formatShortcut("ctrl+c", "終了"),
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.tablesSource != "" {
		source := SubtitleStyle.Render("tables: " + m.tablesSource)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(source) - 2
		statusText = statusText + strings.Repeat(" ", max(1, width)) + source
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(fmt.Sprintf("⠋ %s", message))

	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("エラー: %s\n\n何かキーを押すと戻ります", m.err.Error()),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
kogaku - 高額療養費 払い戻し額の目安

画面:
  ctrl+f   入力画面
  ctrl+o   計算結果
  ctrl+g   所得区分の判定と制度比較
  f1       このヘルプ
  esc      前の画面に戻る
  ctrl+c   終了

入力画面:
  tab/↑↓   項目の移動
  ctrl+n   支払いの行を追加
  ctrl+d   選択中の行を削除
  ctrl+t   多数該当の切り替え
  ctrl+r   入力をクリア
  enter    計算

計算結果:
  ctrl+s   HTMLで保存
  ctrl+x   Excelで保存

同じ月に同じ医療機関で支払った自己負担額が21,000円以上のものだけを合算します。
表示される金額は目安です。正確な金額は加入している保険者に確認してください。
`

	return BorderStyle.Render(helpText)
}
