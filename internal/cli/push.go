package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/daemon/bridge"
)

var pushToggled string

var pushCmd = &cobra.Command{
	Use:   "push <goals-file>",
	Short: "Send a goal list to the running tray",
	Long: `Send a goal list to the running daemon, which rebuilds the tray menu.

With --toggled the list is sent through toggle_goal instead of
update_tray_menu, as a front-end does after flipping a goal.`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushToggled, "toggled", "", "Goal id that was just toggled")
}

func runPush(cmd *cobra.Command, args []string) error {
	goals, err := config.LoadGoals(args[0])
	if err != nil {
		return err
	}
	if err := goals.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", styleWarning.Render("Warning:"), err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	c, err := connectDaemon(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if pushToggled != "" {
		err = c.Invoke(ctx, bridge.CmdToggleGoal, bridge.ToggleGoalArgs{ID: pushToggled, Goals: goals})
	} else {
		err = c.Invoke(ctx, bridge.CmdUpdateTrayMenu, bridge.UpdateTrayMenuArgs{Goals: goals})
	}
	if err != nil {
		return fmt.Errorf("failed to update tray menu: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Tray updated (%s).\n", styleSuccess.Render("✓"), goalsSummary(goals))
	return nil
}
