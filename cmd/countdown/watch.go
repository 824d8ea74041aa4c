package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"landing-countdown/countdown/application"
	"landing-countdown/countdown/domain"
	"landing-countdown/countdown/infra"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(c *cli) *cobra.Command {
	var (
		interval time.Duration
		compact  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the time left every tick until it reaches zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be > 0, got %s", interval)
			}
			svc, err := c.service()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events := infra.NewMemoryEventStore()
			cd := application.New(
				application.WithTarget(svc.ResolveTarget(c.target)),
				application.WithClock(svc.Clock),
				application.WithInterval(interval),
				application.WithLogger(c.logger),
				application.WithEvents(events),
			)

			out := cmd.OutOrStdout()
			var writeErr error
			onTick := func(rem domain.Remaining) {
				line := formatLine(rem)
				if compact {
					line = rem.String()
				}
				if _, err := fmt.Fprintln(out, line); err != nil && writeErr == nil {
					writeErr = err
					cd.Stop()
				}
			}
			onComplete := func() {
				if _, err := fmt.Fprintln(out, "Oferta encerrada!"); err != nil && writeErr == nil {
					writeErr = err
				}
			}

			if err := cd.Start(ctx, onTick, onComplete); err != nil {
				return err
			}
			<-cd.Done()

			c.logger.Debug("countdown finished",
				zap.String("countdown_id", cd.ID()),
				zap.String("state", cd.State().String()),
				zap.Int64("completed", events.Total().Completed),
				zap.Int64("stopped", events.Total().Stopped),
			)
			return writeErr
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", application.DefaultInterval, "Tick interval")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print DD:HH:MM:SS instead of labelled units")
	return cmd
}
