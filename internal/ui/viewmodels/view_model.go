package viewmodels

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"sheetgrip/internal/config"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/transition"
	"sheetgrip/internal/ui/commands"
	"sheetgrip/internal/ui/input"
	inputtypes "sheetgrip/internal/ui/input/types"
	"sheetgrip/internal/ui/state"
	"sheetgrip/internal/ui/views"
)

// SheetTitle is shown at the top of the sheet
const SheetTitle = "sheetgrip"

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state  *state.AppState
	config *config.Config
	width  int
	height int
	help   help.Model
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config) *ViewModel {
	return &ViewModel{
		state:  appState,
		config: cfg,
		help:   help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// BuildViewState creates a ViewState for rendering. frame and alpha are the
// last values the controller applied; presented is false until it applied any.
func (vm *ViewModel) BuildViewState(sheet *transition.Controller, frame layout.Rect, alpha float64, presented bool, in *input.Handler) views.ViewState {
	s := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Presented:      presented,
		Frame:          frame,
		Alpha:          alpha,
		Grabber:        sheet.PrefersGrabberVisible(),
		CornerRadius:   sheet.CornerRadius(),
		Title:          SheetTitle,
		Body:           vm.sheetBody(sheet),
		ShowStatus:     vm.config.UI.ShowStatus,
		State:          sheet.State().String(),
		Detent:         commands.OrNone(sheet.SelectedDetent()),
		Progress:       sheet.Progress(),
		ModalLocked:    sheet.ModalLocked(),
		Veto:           vm.state.Veto,
		StatusMessage:  vm.state.StatusMessage,
		BackgroundText: vm.config.UI.BackgroundText,
		ShowHelp:       in.CurrentMode() == inputtypes.ModeHelp,
		HelpModel:      vm.help,
		Keys:           in.Keys(),
		Prompt:         in.Prompt(),
		Confirming:     vm.state.ConfirmingDismiss,
	}
	if ti := in.TextInput(); ti != nil {
		s.TextInput = ti.View()
	}
	return s
}

func (vm *ViewModel) sheetBody(sheet *transition.Controller) []string {
	detents := sheet.Detents()
	names := make([]string, 0, len(detents))
	for _, d := range detents {
		names = append(names, d.String())
	}
	body := []string{
		"",
		"detents    " + strings.Join(names, ", "),
		"undimmed   " + commands.OrNone(sheet.LargestUndimmedDetent()),
		"",
		"drag the sheet with the mouse or j/k, release with enter",
		"J/K flick, d dismiss, esc taps the background",
	}
	if vm.state.Dismissed {
		body = append(body, "", "dismissed: press p to present again")
	}
	return body
}
