package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"stocksense/api"
	"stocksense/internal/config"
	"stocksense/internal/consensus"
	"stocksense/internal/history"
	"stocksense/internal/logger"
	"stocksense/internal/markethours"
	"stocksense/internal/marketdata"
	"stocksense/internal/pricecache"
	"stocksense/internal/provider"
	"stocksense/internal/recommend"
	"stocksense/internal/scheduler"
	"stocksense/internal/universe"
	"stocksense/pkg/googlenews"
	"stocksense/pkg/screener"
	"stocksense/pkg/yahoofinance"
)

const scraperUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

func configPath() string {
	if path := os.Getenv("STOCKSENSE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

func InitializeDependencies() (*api.ApiHandler, *scheduler.Scheduler, error) {
	log := logger.New()

	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	location, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load market timezone: %w", err)
	}
	session := markethours.Session{
		Location:  location,
		OpenHour:  cfg.Market.OpenHour,
		OpenMin:   cfg.Market.OpenMin,
		CloseHour: cfg.Market.CloseHour,
		CloseMin:  cfg.Market.CloseMin,
	}

	cache := pricecache.New()
	timeout := cfg.Providers.Timeout()
	yahooClient := provider.NewYahooClient()

	providers := []provider.Provider{
		provider.NewNSEClient(timeout),
		yahooClient,
		provider.NewGoogleClient(timeout),
	}
	consensusEngine := consensus.NewEngine(providers, cfg, session, cache, log)

	historyService := history.New(cfg, session, cache, log)
	universeService := universe.New(cfg, cache, log)

	httpClient := &http.Client{Timeout: timeout}
	fundamentalsSources := []marketdata.FundamentalsSource{
		marketdata.ScreenerFundamentals{Client: screener.Client{
			HttpClient: httpClient,
			BaseURL:    cfg.Screener.BaseURL,
			UserAgent:  scraperUserAgent,
		}},
		marketdata.YahooFundamentals{
			Quote: yahooClient,
			Summary: yahoofinance.Client{
				HttpClient: httpClient,
				BaseURL:    cfg.Providers.YahooSummaryURL,
				UserAgent:  scraperUserAgent,
				Suffix:     cfg.Providers.YahooSuffix,
			},
		},
	}
	newsClient := googlenews.Client{
		HttpClient: httpClient,
		FeedURL:    cfg.News.FeedURL,
		MaxItems:   cfg.News.MaxItems,
	}

	marketData := marketdata.New(
		consensusEngine, historyService, fundamentalsSources, newsClient,
		cfg, session, cache, log)

	handler := &api.ApiHandler{
		Consensus:     consensusEngine,
		MarketData:    marketData,
		Universe:      universeService,
		SectorRanker:  recommend.NewSectorRanker(marketData, universeService, cfg.Ranker, log),
		GeneralRanker: recommend.NewGeneralRanker(marketData, universeService, cfg.Ranker, log),
		Compare:       recommend.NewCompareEngine(marketData, cfg.Ranker, log),
		Session:       session,
		Log:           log,
	}
	sched := scheduler.New(location, cache, universeService, log)

	return handler, sched, nil
}
