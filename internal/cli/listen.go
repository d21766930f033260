package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/goaltray/goaltray/internal/daemon/bridge"
)

var listenLabel string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Attach as a window and print tray events",
	Long: `Attach to the daemon as a front-end window and print every event it
sends (goal events from menu clicks and window show/hide). Ctrl+C
requests the window close first, as a real window would.`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVar(&listenLabel, "label", bridge.MainLabel, "Window label to register")
}

func runListen(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c, err := connectDaemon(dialCtx)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Hello(dialCtx, listenLabel); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listening as %s. Ctrl+C to detach.\n", styleBrand.Render(listenLabel))

	frames := make(chan bridge.Frame)
	errCh := make(chan error, 1)
	// No deadline on reads: events arrive whenever the user clicks.
	go pumpFrames(ctx, func() (bridge.Frame, error) { return c.Next(context.Background()) }, frames, errCh)

	for {
		select {
		case f := <-frames:
			printFrame(cmd.OutOrStdout(), f)
		case err := <-errCh:
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon closed the connection.")
				return nil
			}
			return err
		case <-ctx.Done():
			closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = c.RequestClose(closeCtx)
			cancel()
			return nil
		}
	}
}

// pumpFrames forwards frames from next until it fails or ctx is done.
func pumpFrames(ctx context.Context, next func() (bridge.Frame, error), frames chan<- bridge.Frame, errCh chan<- error) {
	for {
		f, err := next()
		if err != nil {
			errCh <- err
			return
		}
		select {
		case frames <- f:
		case <-ctx.Done():
			return
		}
	}
}

func printFrame(w io.Writer, f bridge.Frame) {
	ts := styleHint.Render(time.Now().Format("15:04:05"))
	switch f.Type {
	case bridge.FrameEvent:
		if f.Payload != "" {
			fmt.Fprintf(w, "%s %s %s\n", ts, styleBrand.Render(f.Event), styleValue.Render(f.Payload))
		} else {
			fmt.Fprintf(w, "%s %s\n", ts, styleBrand.Render(f.Event))
		}
	case bridge.FrameResult:
		if f.Error != "" {
			fmt.Fprintf(w, "%s %s %s\n", ts, styleError.Render("error"), f.Error)
		}
	}
}
