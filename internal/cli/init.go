package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheetgrip/internal/config"
	"sheetgrip/internal/detent"
)

func (a *app) newInitCommand() *cobra.Command {
	var (
		detents []string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Example: `  sheetgrip init
  sheetgrip init --detents medium,large`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewConfigService(a.configPath())
			path := svc.Path()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.DefaultConfig()
			if len(detents) > 0 {
				parsed, err := parseDetents(detents)
				if err != nil {
					return err
				}
				cfg.Sheet.Detents = parsed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&detents, "detents", nil, "detents to allow, e.g. medium,large,constant:6")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func parseDetents(values []string) ([]detent.Detent, error) {
	out := make([]detent.Detent, 0, len(values))
	for _, v := range values {
		d, err := detent.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := detent.ValidateList(out); err != nil {
		return nil, err
	}
	return out, nil
}
