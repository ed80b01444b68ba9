package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/ui/input/types"
)

// flickFactor scales the container height into a release velocity that is
// always above the policy's minimum (half the container per second)
const flickFactor = 2

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: msg.Type == tea.KeyCtrlC}}, true
	case key.Matches(msg, k.Present):
		return []types.Action{types.PresentAction{}}, true
	case key.Matches(msg, k.Medium):
		return []types.Action{types.SelectDetentAction{Detent: detent.Medium(), Animated: true}}, true
	case key.Matches(msg, k.Large):
		return []types.Action{types.SelectDetentAction{Detent: detent.Large(), Animated: true}}, true
	case key.Matches(msg, k.MediumNow):
		return []types.Action{types.SelectDetentAction{Detent: detent.Medium()}}, true
	case key.Matches(msg, k.LargeNow):
		return []types.Action{types.SelectDetentAction{Detent: detent.Large()}}, true
	case key.Matches(msg, k.Constant):
		return []types.Action{types.SelectConstantAction{Animated: true}}, true
	case key.Matches(msg, k.Prompt):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeDetentPrompt}}, true
	case key.Matches(msg, k.Dismiss):
		return []types.Action{types.DismissAction{Animated: true}}, true
	case key.Matches(msg, k.TapOutside):
		return []types.Action{types.TapOutsideAction{}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.DragAction{Rows: 1}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.DragAction{Rows: -1}}, true
	case key.Matches(msg, k.Release):
		if !ctx.Dragging() {
			return nil, false
		}
		return []types.Action{types.ReleaseAction{}}, true
	case key.Matches(msg, k.FlickDown):
		return flick(ctx, 1), true
	case key.Matches(msg, k.FlickUp):
		return flick(ctx, -1), true
	case key.Matches(msg, k.ModalLock):
		return []types.Action{types.ToggleModalLockAction{}}, true
	case key.Matches(msg, k.Veto):
		return []types.Action{types.ToggleVetoAction{}}, true
	case key.Matches(msg, k.Grabber):
		return []types.Action{types.ToggleGrabberAction{}}, true
	case key.Matches(msg, k.Undimmed):
		return []types.Action{types.ToggleUndimmedAction{}}, true
	case key.Matches(msg, k.Journal):
		return []types.Action{types.ShowJournalAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}}, true
	}
	return nil, false
}

// flick releases an open gesture fast in direction, opening one first when
// no gesture is in progress
func flick(ctx types.Context, direction float64) []types.Action {
	velocity := direction * float64(ctx.ContainerHeight()) * flickFactor
	if ctx.Dragging() {
		return []types.Action{types.ReleaseAction{Velocity: velocity}}
	}
	return []types.Action{
		types.DragAction{Rows: direction},
		types.ReleaseAction{Velocity: velocity},
	}
}
