package ui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/animation"
	"sheetgrip/internal/config"
	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/transition"
	"sheetgrip/internal/ui/commands"
	"sheetgrip/internal/ui/handlers"
	"sheetgrip/internal/ui/input"
	inputtypes "sheetgrip/internal/ui/input/types"
	"sheetgrip/internal/ui/state"
	"sheetgrip/internal/ui/viewmodels"
	"sheetgrip/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 3 * time.Second

// Model hosts one sheet in the terminal. It is the sheet's presenter: it
// reports the terminal as the container and draws whatever frame the
// controller applies.
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	logger  *slog.Logger
	journal *domain.Journal
	state   *state.AppState

	width  int
	height int

	sheet    *transition.Controller
	delegate *eventbus.Delegate
	animator *animation.SpringAnimator

	// last frame the controller applied
	frame    layout.Rect
	alpha    float64
	hasFrame bool

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	cmdExecutor  *commands.Executor
	viewModel    *viewmodels.ViewModel

	statusSeq   int
	shownStatus string
	pendingCmds []tea.Cmd
	unsubscribe func()
	now         func() time.Time

	// Program reference for terminal management
	program *tea.Program
}

var _ transition.Host = (*Model)(nil)

// NewModel creates a new UI model. journal may already hold events recorded
// before the model existed; nil starts an empty one.
func NewModel(bus eventbus.EventBus, cfg *config.Config, journal *domain.Journal, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if journal == nil {
		journal = domain.NewJournal(domain.DefaultJournalSize)
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		logger:       logger.With("component", "ui"),
		journal:      journal,
		state:        state.NewAppState(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
		now:          time.Now,
	}

	m.animator = animation.New(cfg.Spring.FPS)
	m.animator.SetInstant(cfg.Spring.ReduceMotion)

	m.delegate = eventbus.NewDelegate(bus)
	m.delegate.ShouldDismissFunc = func() bool { return !m.state.Veto }

	m.eventHandler = handlers.NewEventHandler(m.state, journal, m.modalLocked)
	m.unsubscribe = bus.SubscribeAll(func(e eventbus.DomainEvent) {
		if cmd := m.eventHandler.HandleEvent(e); cmd != nil {
			m.pendingCmds = append(m.pendingCmds, cmd)
		}
	})

	m.cmdExecutor = commands.NewExecutor(m.state, bus, m.Sheet)
	m.viewModel = viewmodels.NewViewModel(m.state, cfg)

	if err := m.newSheet(); err != nil {
		m.unsubscribe()
		return nil, err
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Close detaches the model from the event bus
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Sheet exposes the controller
func (m *Model) Sheet() *transition.Controller { return m.sheet }

// Journal exposes the event journal
func (m *Model) Journal() *domain.Journal { return m.journal }

// Geometry reports the terminal as the sheet's container
func (m *Model) Geometry() (layout.Geometry, bool) {
	g := layout.Geometry{
		Container: layout.Size{W: float64(m.width), H: float64(m.height)},
		SafeArea: layout.Insets{
			Top:    float64(m.config.UI.SafeTop),
			Bottom: float64(m.config.UI.SafeBottom),
		},
	}
	return g, g.Valid()
}

// Apply records the frame and overlay opacity for the next View
func (m *Model) Apply(frame layout.Rect, alpha float64) {
	m.frame = frame
	m.alpha = alpha
	m.hasFrame = true
}

// Dragging reports whether a gesture is open
func (m *Model) Dragging() bool {
	return m.sheet != nil && m.sheet.State() == transition.Dragging
}

// ContainerHeight is the terminal height in rows
func (m *Model) ContainerHeight() int { return m.height }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0 || m.height == 0
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		if first {
			m.sheet.BeginPresentation(true)
		} else {
			m.sheet.Relayout()
		}

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case frameMsg:
		m.state.Ticking = false
		if !m.state.InPagerMode {
			m.animator.Advance()
		}

	case handlers.ConfirmDismissMsg:
		if m.inputHandler.CurrentMode() != inputtypes.ModeConfirmDismiss {
			m.inputHandler.ChangeMode(inputtypes.ModeConfirmDismiss, m)
		}
		m.state.ConfirmingDismiss = true

	case journalPagerMsg:
		if msg.err != nil {
			m.logger.Warn("journal pager failed", "error", msg.err)
			m.setStatus(fmt.Sprintf("pager failed: %v", msg.err))
		}

	case pauseRenderingMsg:
		m.state.InPagerMode = true

	case resumeRenderingMsg:
		m.state.InPagerMode = false

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.StatusMessage = ""
			m.shownStatus = ""
		}

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.flush()...)
	if tick := m.scheduleFrame(); tick != nil {
		cmds = append(cmds, tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}

	s := m.viewModel.BuildViewState(m.sheet, m.frame, m.alpha, m.hasFrame, m.inputHandler)
	return m.renderer.Render(s)
}

// newSheet replaces the controller; a dismissed controller is inert, so
// presenting again needs a fresh one
func (m *Model) newSheet() error {
	opts := m.config.Options()
	opts.OnDiagnostic = m.delegate.Diagnostic

	sheet, err := transition.New(opts, m, m.animator, m.delegate, m.logger)
	if err != nil {
		return err
	}
	m.animator.Interrupt()
	m.sheet = sheet
	m.hasFrame = false
	m.frame = layout.Rect{}
	m.alpha = 0
	m.state.Dismissed = false
	m.state.EndDrag()
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.PresentAction:
		if m.sheet.State() == transition.Dismissed {
			if err := m.newSheet(); err != nil {
				m.setStatus(err.Error())
				return nil
			}
		}
		m.sheet.BeginPresentation(true)

	case inputtypes.SelectDetentAction:
		m.sheet.SetSelectedDetent(a.Detent, a.Animated)

	case inputtypes.SelectConstantAction:
		return m.cmdExecutor.ExecuteSelectConstant(a.Animated)

	case inputtypes.DismissAction:
		m.sheet.Dismiss(a.Animated)

	case inputtypes.TapOutsideAction:
		m.sheet.TapOutside(0, float64(m.config.UI.SafeTop))

	case inputtypes.DragAction:
		if !m.Dragging() {
			m.state.BeginDrag(false)
		}
		m.sheet.GestureChanged(a.Rows)
		m.syncDrag()

	case inputtypes.ReleaseAction:
		m.sheet.GestureEnded(a.Velocity)
		m.state.EndDrag()

	case inputtypes.ToggleModalLockAction:
		return m.cmdExecutor.ExecuteToggleModalLock()

	case inputtypes.ToggleVetoAction:
		return m.cmdExecutor.ExecuteToggleVeto()

	case inputtypes.ToggleGrabberAction:
		return m.cmdExecutor.ExecuteToggleGrabber()

	case inputtypes.ToggleUndimmedAction:
		return m.cmdExecutor.ExecuteToggleUndimmed()

	case inputtypes.ChangeModeAction:
		m.state.ConfirmingDismiss = a.Mode == inputtypes.ModeConfirmDismiss

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeDetentPrompt {
			return m.cmdExecutor.ExecuteSelectDetentText(a.Text)
		}

	case inputtypes.ShowJournalAction:
		return m.showJournal()

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// handleMouse turns a left-button press, motion and release into a gesture.
// A press above the sheet is a tap on the dimmed background.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
			return
		}
		if !m.hasFrame || msg.Y < views.SheetTop(m.frame, m.height) {
			m.sheet.TapOutside(float64(msg.X), float64(msg.Y))
			return
		}
		m.state.BeginDrag(true)
		m.state.LastY = msg.Y
		m.state.Velocity.Add(m.now(), float64(msg.Y))

	case tea.MouseActionMotion:
		if !m.state.MouseDrag {
			return
		}
		dy := msg.Y - m.state.LastY
		m.state.LastY = msg.Y
		m.state.Velocity.Add(m.now(), float64(msg.Y))
		if dy != 0 {
			m.sheet.GestureChanged(float64(dy))
			m.syncDrag()
		}

	case tea.MouseActionRelease:
		if !m.state.MouseDrag {
			return
		}
		m.state.Velocity.Add(m.now(), float64(msg.Y))
		if m.Dragging() {
			m.sheet.GestureEnded(m.state.Velocity.Velocity())
		}
		m.state.EndDrag()
	}
}

// syncDrag closes the local gesture when the controller refused it
func (m *Model) syncDrag() {
	if !m.Dragging() {
		m.state.EndDrag()
	}
}

func (m *Model) modalLocked() bool {
	return m.sheet != nil && m.sheet.ModalLocked()
}

// scheduleFrame keeps exactly one frame tick in flight while an animation runs
func (m *Model) scheduleFrame() tea.Cmd {
	if m.state.Ticking || !m.animator.Running() {
		return nil
	}
	m.state.Ticking = true
	return tea.Tick(m.animator.Interval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// flush returns the commands event handlers queued during this update and
// starts the timeout of a new status message
func (m *Model) flush() []tea.Cmd {
	cmds := m.pendingCmds
	m.pendingCmds = nil
	if m.state.StatusMessage != "" && m.state.StatusMessage != m.shownStatus {
		m.shownStatus = m.state.StatusMessage
		cmds = append(cmds, m.clearStatusLater())
	}
	return cmds
}

func (m *Model) setStatus(msg string) {
	m.state.StatusMessage = msg
}

func (m *Model) clearStatusLater() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// showJournal returns a command that shows the event journal using ov pager
func (m *Model) showJournal() tea.Cmd {
	if m.program == nil {
		m.setStatus("pager unavailable")
		return nil
	}
	content := m.journal.Text()
	if content == "" {
		content = "no events yet\n"
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := NewPager(m.program).Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return journalPagerMsg{err: err}
	}
}
