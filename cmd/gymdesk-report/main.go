package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"

	"gymdesk/internal/services/api/metrics/domain"
	metricsrepo "gymdesk/internal/services/api/metrics/repo"
	metricssvc "gymdesk/internal/services/api/metrics/service"
	"gymdesk/internal/services/report"
)

func main() {
	_, _ = config.LoadDotEnv()

	var (
		fMetric = flag.String("metric", "check_ins", "metric keyword (see /api/v1/metrics/catalog)")
		fPeriod = flag.String("period", "1m", "period keyword: 1d 1w 1m 3m 6m 1y 3y all")
		fFrom   = flag.String("from", "", "custom range start YYYY-MM-DD")
		fTo     = flag.String("to", "", "custom range end YYYY-MM-DD")
		fCoarse = flag.Bool("coarse", false, "four hour buckets for single day views")
		fWidth  = flag.Int("width", 72, "plot width in columns")
		fHeight = flag.Int("height", 12, "plot height in rows")
	)
	flag.Parse()

	root := config.New()
	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.ConfigFrom(root, "report"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() { _ = st.Close(context.Background()) }()

	loc := root.Prefix("CORE_").MayLocation("TIMEZONE", time.UTC)
	svc := metricssvc.New(st.PG, metricsrepo.NewPG(), metricssvc.WithLocation(loc))

	chart, err := svc.Chart(ctx, domain.ChartQuery{
		Metric:   *fMetric,
		Period:   *fPeriod,
		DateFrom: *fFrom,
		DateTo:   *fTo,
		Coarse:   *fCoarse,
	})
	if err != nil {
		l.Error().Err(err).Msg("chart failed")
		os.Exit(1)
	}
	fmt.Print(report.Render(chart, report.Options{Width: *fWidth, Height: *fHeight}))
}
