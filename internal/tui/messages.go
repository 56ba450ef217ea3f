package tui

import (
	"github.com/rgehrsitz/kogaku/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneJudge
	SceneHelp
)

// String returns the breadcrumb label of a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "入力"
	case SceneResults:
		return "計算結果"
	case SceneJudge:
		return "区分判定"
	case SceneHelp:
		return "ヘルプ"
	default:
		return "?"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// TablesLoadedMsg signals the parameter tables are ready
type TablesLoadedMsg struct {
	Tables *domain.ParameterTables
	Source string
}
