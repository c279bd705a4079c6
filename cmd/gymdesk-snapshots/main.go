package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/module"
	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"

	"gymdesk/internal/services/snapshots/domain"
	snapmod "gymdesk/internal/services/snapshots/module"
)

func main() {
	_, _ = config.LoadDotEnv()

	var (
		fDays     = flag.Int("days", 1, "capture the last N days ending today")
		fBackfill = flag.Int("backfill", 0, "backfill the last N days, one line per day")
		fList     = flag.Int("list", 0, "print the newest N stored snapshots and exit")
	)
	flag.Parse()

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFrom(root, "snapshots"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{
		Cfg: root.Prefix("CORE_"),
		PG:  st.PG,
		Log: *l,
	}
	runner := module.MustPortsOf[snapmod.Ports](snapmod.New(deps)).Runner

	if *fList > 0 {
		ss, err := runner.Recent(ctx, *fList)
		if err != nil {
			l.Fatal().Err(err).Msg("list failed")
		}
		for _, s := range ss {
			fmt.Printf("%s  %8s active  (taken %s)\n",
				s.Date.Format(time.DateOnly), humanize.Comma(int64(s.ActiveCount)), humanize.Time(s.CreatedAt))
		}
		return
	}

	n, each := *fDays, func(domain.Captured) {}
	if *fBackfill > 0 {
		n = *fBackfill
		fmt.Printf("Backfilling snapshots for the last %s days...\n", humanize.Comma(int64(n)))
		each = func(c domain.Captured) {
			verb := "Updated"
			if c.Created {
				verb = "Created"
			}
			fmt.Printf("  %s snapshot for %s\n", verb, c.Date.Format(time.DateOnly))
		}
	}

	start := time.Now()
	from, to := runner.Days(n)
	res, err := runner.CaptureRange(ctx, from, to, each)
	if err != nil {
		l.Fatal().Err(err).Msg("capture failed")
	}

	switch {
	case *fBackfill > 0:
		fmt.Printf("\nBackfill complete: %d created, %d updated\n", res.Created, res.Updated)
	case n == 1 && res.Last != nil:
		fmt.Printf("Snapshot for %s: %s active members\n",
			res.Last.Date.Format(time.DateOnly), humanize.Comma(int64(res.Last.ActiveCount)))
	default:
		fmt.Printf("Created/updated %d snapshots (%d new, %d updated)\n", res.Total(), res.Created, res.Updated)
	}
	if res.Skipped > 0 {
		fmt.Printf("%s skipped: another runner held the lease\n", humanize.Comma(int64(res.Skipped)))
	}
	l.Debug().Dur("took", time.Since(start)).Msg("snapshots done")
}
