// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/zeromicro/go-zero/rest"

	"openterminal-api/internal/cli"
	"openterminal-api/internal/config"
	"openterminal-api/internal/handler"
	"openterminal-api/internal/svc"
	"openterminal-api/internal/terminal"
)

var configFile = flag.String("f", "etc/openterminal.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	ctx, err := svc.NewServiceContext(cfg)
	if err != nil {
		log.Fatalf("wire service context: %v", err)
	}

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()
	handler.RegisterHandlers(server, ctx)

	sched := terminal.NewScheduler()
	defer sched.Stop()
	sched.RegisterPeriodic(ctx.MarketConfig.TickInterval, ctx.Terminal.Advance)

	// Warm the analysis panel and news feed for the initial selection.
	go func() {
		bg := context.Background()
		ctx.Terminal.RequestAnalysis(bg, ctx.Terminal.SelectedSymbol(), "")
		seed := ctx.MarketConfig.Seed()
		if len(seed) > 5 {
			seed = seed[:5]
		}
		symbols := make([]string, 0, len(seed))
		for _, entry := range seed {
			symbols = append(symbols, entry.Symbol)
		}
		ctx.Terminal.RefreshNews(bg, symbols...)
	}()

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
