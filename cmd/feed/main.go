package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"openterminal-api/internal/cli"
	"openterminal-api/internal/config"
	"openterminal-api/internal/svc"
)

const (
	quoteLogInterval = 30 * time.Second // Watchlist logging interval
	newsInterval     = 5 * time.Minute  // Headline refresh interval
	newsTimeout      = 60 * time.Second // Timeout for one headline batch
	shutdownTimeout  = 10 * time.Second // Grace period for shutdown
)

// feed runs the market simulation headlessly: it advances ticks on the
// configured cadence, refreshes headlines on a schedule and logs the
// watchlist so the stream can be observed without the HTTP surface.
func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting market feed...")

	configPath := "etc/openterminal.yaml"
	appCfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[main] Warning: Failed to load app config: %v", err)
		log.Printf("[main] Using default configuration")
		appCfg = &config.Config{Env: "test"}
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	svcCtx, err := svc.NewServiceContext(appCfg)
	if err != nil {
		log.Fatalf("[main] Failed to wire service context: %v", err)
	}

	tickInterval := svcCtx.MarketConfig.TickInterval
	log.Printf("  - Intervals: tick=%s, quotes=%s, news=%s", tickInterval, quoteLogInterval, newsInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runTicks(ctx, svcCtx, tickInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runQuoteLog(ctx, svcCtx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runNewsRefresh(ctx, svcCtx)
	}()

	log.Println("[main] Market feed started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Market feed stopped")
}

// runTicks advances the simulation on the configured cadence.
func runTicks(ctx context.Context, svcCtx *svc.ServiceContext, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[ticks] Stopping tick loop")
			return
		case <-ticker.C:
			svcCtx.Terminal.Advance()
		}
	}
}

// runQuoteLog periodically logs the current watchlist.
func runQuoteLog(ctx context.Context, svcCtx *svc.ServiceContext) {
	ticker := time.NewTicker(quoteLogInterval)
	defer ticker.Stop()

	logQuotes(svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[quotes] Stopping quote log")
			return
		case <-ticker.C:
			logQuotes(svcCtx)
		}
	}
}

func logQuotes(svcCtx *svc.ServiceContext) {
	for _, q := range svcCtx.Terminal.Snapshot().Quotes() {
		log.Printf("[quotes] %-5s %10.2f  %+7.2f (%+.2f%%)  vol=%d",
			q.Symbol, q.Price, q.Change, q.ChangePercent, q.Volume)
	}
}

// runNewsRefresh periodically pulls a fresh headline batch. With no credential
// configured the analyst yields nothing and the loop just idles.
func runNewsRefresh(ctx context.Context, svcCtx *svc.ServiceContext) {
	if !svcCtx.Analyst.Configured() {
		log.Println("[news] AI analyst not configured, headline refresh disabled")
		return
	}

	ticker := time.NewTicker(newsInterval)
	defer ticker.Stop()

	refreshNews(ctx, svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[news] Stopping news refresh")
			return
		case <-ticker.C:
			refreshNews(ctx, svcCtx)
		}
	}
}

func refreshNews(parentCtx context.Context, svcCtx *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, newsTimeout)
	defer cancel()

	items := svcCtx.Terminal.RefreshNews(ctx)
	for _, item := range items {
		log.Printf("[news] %s [%s] %s", item.Time, item.Impact, item.Headline)
	}
	if len(items) == 0 {
		log.Println("[news] No headlines in this batch")
	}
}
