package main

import (
	"context"
	"time"

	"github.com/owlwatch/owlwatch/internal/common/config"
	"github.com/owlwatch/owlwatch/internal/common/lifecycle"
	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/livecheck"
	"github.com/spf13/cobra"
)

var (
	watchInterval   time.Duration
	watchExitOnLive bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [channel-id...]",
	Short: "Poll channels until interrupted",
	Long: `Probe the given channels, or the enabled leagues, every --interval until
the process receives SIGINT or SIGTERM. With --exit-on-live the watcher stops
as soon as a broadcast is found.`,
	Run: runWatch,
}

var waitCmd = &cobra.Command{
	Use:    "wait",
	Short:  "Block until interrupted",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		sd := lifecycle.New(commandContext(cmd))
		defer sd.Close()
		sd.Wait()
		logger.Debug("stopped: %s", sd.Reason())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "Time between probes")
	watchCmd.Flags().BoolVar(&watchExitOnLive, "exit-on-live", false, "Stop once a broadcast is found")
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(waitCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	prober := newProber()

	interval := watchInterval
	if interval <= 0 {
		interval = time.Minute
	}

	sd := lifecycle.New(commandContext(cmd))
	defer sd.Close()

	go watchLoop(sd, prober, cfg, args, interval)

	sd.Wait()
	logger.Info("watch stopped: %s", sd.Reason())
}

func watchLoop(sd *lifecycle.Shutdown, prober *livecheck.Prober, cfg *config.Config, ids []string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if probeOnce(sd.Context(), prober, cfg, ids) && watchExitOnLive {
			sd.Kill("stream found")
			return
		}
		select {
		case <-sd.Done():
			return
		case <-ticker.C:
		}
	}
}

// probeOnce runs one round of probes and reports whether anything was found
func probeOnce(ctx context.Context, prober *livecheck.Prober, cfg *config.Config, ids []string) bool {
	if len(ids) == 0 {
		league, result, ok := prober.ProbeEnabled(ctx, cfg)
		if ok {
			printResult(league.Name, result)
		}
		return ok
	}

	found := false
	for _, id := range ids {
		if ctx.Err() != nil {
			return found
		}
		r := prober.Probe(ctx, id)
		if r.Found() {
			printResult(id, r)
			found = true
		}
	}
	return found
}
