package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/dayplan/internal/watch"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a JSON line whenever urgency or the effective today changes",
		Run:   runWatch,
	}
	cmd.Flags().Duration("interval", 0, "Check interval (default: watch.interval)")

	RootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	interval, _ := cmd.Flags().GetDuration("interval")

	cfg, _ := loadConfig(cmd)
	if interval > 0 {
		cfg.Watch.Interval = interval
	}
	log := newLogger(cfg)
	defer log.Sync()

	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(newService(cfg, s, log), os.Stdout, log)
	if err := w.Start(ctx, cfg.Watch.Interval); err != nil {
		exitErr("watch", err)
	}
	<-ctx.Done()
	if err := w.Stop(); err != nil {
		exitErr("stop watch", err)
	}
}
