package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/layout"
	"sheetgrip/internal/policy"
)

// resolveWidth is the container width; the policy only looks at heights
const resolveWidth = 80

func (a *app) newResolveCommand() *cobra.Command {
	var (
		height      float64
		velocity    float64
		rows        int
		detents     []string
		selected    string
		modalLocked bool
		veto        bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show where a released drag would settle",
		Long: `Evaluate the detent policy for a sheet released at --height rows with
--velocity rows per second (positive is downward) in a terminal of --rows
rows. Detents and insets come from the config file unless overridden.`,
		Example: `  sheetgrip resolve --height 16 --velocity 40 --detents medium,large
  sheetgrip resolve --height 10 --velocity 30 --veto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}

			allowed := cfg.Sheet.Detents
			if len(detents) > 0 {
				if allowed, err = parseDetents(detents); err != nil {
					return err
				}
			}
			current := cfg.Sheet.SelectedDetent
			if selected != "" {
				if current, err = detent.Parse(selected); err != nil {
					return err
				}
			}

			g := layout.Geometry{
				Container: layout.Size{W: resolveWidth, H: float64(rows)},
				SafeArea: layout.Insets{
					Top:    float64(cfg.UI.SafeTop),
					Bottom: float64(cfg.UI.SafeBottom),
				},
			}
			if !g.Valid() {
				return fmt.Errorf("a terminal of %d rows cannot hold a sheet", rows)
			}
			calc := &layout.Calculator{Geometry: g, TopMargin: cfg.Sheet.TopMargin}
			if calc.TopMargin == 0 {
				calc.TopMargin = layout.DefaultTopMargin
			}

			outcome := policy.Resolve(policy.Input{
				CurrentHeight:   height,
				Velocity:        velocity,
				Detents:         allowed,
				Selected:        current,
				ContainerHeight: g.Container.H,
				ModalLocked:     modalLocked || cfg.Sheet.ModalLocked,
				ConfirmDismiss:  func() bool { return !veto },
				Height:          calc.Height,
			})

			heights := make([]string, 0, len(allowed))
			for _, d := range calc.Sort(allowed) {
				heights = append(heights, fmt.Sprintf("%s=%g", d, calc.Height(d)))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "container  %dx%d rows, min velocity %g rows/s\n", resolveWidth, rows, policy.RequiredMinVelocity(g.Container.H))
			fmt.Fprintf(out, "detents    %s\n", strings.Join(heights, " "))
			fmt.Fprintf(out, "outcome    %s\n", outcome)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&height, "height", 0, "sheet height at release, in rows")
	f.Float64Var(&velocity, "velocity", 0, "release velocity in rows per second, positive is downward")
	f.IntVar(&rows, "rows", 24, "terminal height")
	f.StringSliceVar(&detents, "detents", nil, "allowed detents, e.g. medium,large,constant:6")
	f.StringVar(&selected, "selected", "", "detent the sheet was resting at")
	f.BoolVar(&modalLocked, "modal-locked", false, "refuse user dismissals")
	f.BoolVar(&veto, "veto", false, "have the delegate refuse the dismissal")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
