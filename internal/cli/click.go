package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/daemon/bridge"
)

var clickCmd = &cobra.Command{
	Use:   "click <identifier>",
	Short: "Simulate a tray menu click",
	Long: `Simulate a click on the tray item with the given identifier, for
example "show", "quit" or "complete_<goal-id>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		c, err := connectDaemon(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Invoke(ctx, bridge.CmdClick, bridge.ClickArgs{Identifier: args[0]}); err != nil {
			return fmt.Errorf("click failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Clicked %s\n", styleBrand.Render(args[0]))
		return nil
	},
}
