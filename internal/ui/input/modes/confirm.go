package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/ui/input/types"
)

// ConfirmMode asks whether a refused dismissal should go ahead anyway
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "confirm-dismiss"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		return []types.Action{
			types.DismissAction{Animated: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, false
}
