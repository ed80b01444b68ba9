package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"sheetgrip/internal/ui/input/types"
)

// DetentPromptMode reads a detent such as "medium" or "constant:6"
type DetentPromptMode struct {
	TextInputMode
}

func NewDetentPromptMode(ti *textinput.Model) *DetentPromptMode {
	return &DetentPromptMode{
		TextInputMode: NewTextInputMode(types.ModeDetentPrompt, "detent", "Detent: ", ti),
	}
}
