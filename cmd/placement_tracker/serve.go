package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/placement-tracker/internal/server"
	"github.com/jonathan/placement-tracker/internal/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// reminderInterval is how often serve logs upcoming unplanned weeks.
const reminderInterval = time.Hour

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the tracker as a JSON API with change notifications on /events.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(a.svc, server.Config{
		Port:   port,
		Logger: a.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		watchReminders(gctx, a.svc, a.logger, reminderInterval)
		return nil
	})
	return g.Wait()
}

// watchReminders logs upcoming unplanned weeks now and on every tick until ctx ends.
func watchReminders(ctx context.Context, svc *tracker.Service, logger *slog.Logger, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		for _, r := range svc.Reminders(ctx) {
			logger.Info("week needs planning",
				"plan_id", r.PlanID, "plan", r.PlanTitle, "week", r.Week, "days_until", r.DaysUntil)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
