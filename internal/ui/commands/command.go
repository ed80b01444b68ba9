package commands

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/transition"
	"sheetgrip/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State *state.AppState
	Bus   eventbus.EventBus
	// Sheet returns the current controller; it is replaced on every new presentation
	Sheet func() *transition.Controller
}

func (c *CommandContext) fail(message string, err error) {
	if c.Bus != nil {
		c.Bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
	}
}

// ToggleModalLockCommand flips the refusal of user dismissals
type ToggleModalLockCommand struct {
	ctx *CommandContext
}

func NewToggleModalLockCommand(ctx *CommandContext) *ToggleModalLockCommand {
	return &ToggleModalLockCommand{ctx: ctx}
}

func (c *ToggleModalLockCommand) Execute() tea.Cmd {
	sheet := c.ctx.Sheet()
	sheet.SetModalLocked(!sheet.ModalLocked())
	c.ctx.State.StatusMessage = onOff("modal lock", sheet.ModalLocked())
	return nil
}

// ToggleVetoCommand flips whether user dismissals need confirmation
type ToggleVetoCommand struct {
	ctx *CommandContext
}

func NewToggleVetoCommand(ctx *CommandContext) *ToggleVetoCommand {
	return &ToggleVetoCommand{ctx: ctx}
}

func (c *ToggleVetoCommand) Execute() tea.Cmd {
	c.ctx.State.Veto = !c.ctx.State.Veto
	c.ctx.State.StatusMessage = onOff("confirm before dismiss", c.ctx.State.Veto)
	return nil
}

// ToggleGrabberCommand shows or hides the grabber
type ToggleGrabberCommand struct {
	ctx *CommandContext
}

func NewToggleGrabberCommand(ctx *CommandContext) *ToggleGrabberCommand {
	return &ToggleGrabberCommand{ctx: ctx}
}

func (c *ToggleGrabberCommand) Execute() tea.Cmd {
	sheet := c.ctx.Sheet()
	sheet.SetPrefersGrabberVisible(!sheet.PrefersGrabberVisible())
	return nil
}

// ToggleUndimmedCommand switches the largest undimmed detent between
// medium and none
type ToggleUndimmedCommand struct {
	ctx *CommandContext
}

func NewToggleUndimmedCommand(ctx *CommandContext) *ToggleUndimmedCommand {
	return &ToggleUndimmedCommand{ctx: ctx}
}

func (c *ToggleUndimmedCommand) Execute() tea.Cmd {
	sheet := c.ctx.Sheet()
	next := detent.Medium()
	if !sheet.LargestUndimmedDetent().IsZero() {
		next = detent.None
	}
	if err := sheet.SetLargestUndimmedDetent(next); err != nil {
		c.ctx.fail("undim medium", err)
		return nil
	}
	c.ctx.State.StatusMessage = "largest undimmed detent: " + OrNone(next)
	return nil
}

// SelectDetentTextCommand selects a detent typed by the user
type SelectDetentTextCommand struct {
	ctx  *CommandContext
	text string
}

func NewSelectDetentTextCommand(ctx *CommandContext, text string) *SelectDetentTextCommand {
	return &SelectDetentTextCommand{ctx: ctx, text: strings.TrimSpace(text)}
}

func (c *SelectDetentTextCommand) Execute() tea.Cmd {
	if c.text == "" {
		return nil
	}
	d, err := detent.Parse(c.text)
	if err != nil {
		c.ctx.fail("select detent", err)
		return nil
	}
	if d.IsZero() {
		return nil
	}
	c.ctx.Sheet().SetSelectedDetent(d, true)
	return nil
}

// SelectConstantCommand selects the first constant detent
type SelectConstantCommand struct {
	ctx      *CommandContext
	animated bool
}

func NewSelectConstantCommand(ctx *CommandContext, animated bool) *SelectConstantCommand {
	return &SelectConstantCommand{ctx: ctx, animated: animated}
}

func (c *SelectConstantCommand) Execute() tea.Cmd {
	sheet := c.ctx.Sheet()
	for _, d := range sheet.Detents() {
		if d.Kind() == detent.KindConstant {
			sheet.SetSelectedDetent(d, c.animated)
			return nil
		}
	}
	c.ctx.State.StatusMessage = "no constant detent configured"
	return nil
}

// OrNone renders d, or "none" for the zero detent
func OrNone(d detent.Detent) string {
	if d.IsZero() {
		return "none"
	}
	return d.String()
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}
