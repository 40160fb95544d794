// Package marketdata assembles the per-symbol view the rest of the system
// consumes: the aggregated snapshot (price, ratios, headlines) and the full
// analysis bundle built from it.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stocksense/internal/analysis"
	"stocksense/internal/config"
	"stocksense/internal/domain"
	"stocksense/internal/markethours"
	"stocksense/internal/pricecache"
	"stocksense/internal/recommend"
	"stocksense/internal/scoring"
	"stocksense/internal/util"

	"go.uber.org/zap"
)

// ErrSymbolUnavailable means no price source could produce a quote, which
// makes every downstream score meaningless.
var ErrSymbolUnavailable = errors.New("no data source available for symbol")

// analysisPeriodDays is the history window fed to the technical analyzer
// and the scoring engines.
const analysisPeriodDays = 365

type ConsensusSource interface {
	GetConsensusPrice(ctx context.Context, symbol string) domain.ConsensusResult
}

type HistorySource interface {
	DailyBars(ctx context.Context, symbol string, days int) ([]domain.OHLCVBar, error)
}

// FundamentalsSource produces the ratio bag for a symbol. Sources are tried
// in order; the first that answers wins.
type FundamentalsSource interface {
	SourceName() string
	Fundamentals(ctx context.Context, symbol string) (domain.FundamentalRatios, error)
}

type NewsSource interface {
	GetNews(ctx context.Context, symbol string) ([]domain.NewsItem, error)
}

type Service struct {
	consensus    ConsensusSource
	history      HistorySource
	fundamentals []FundamentalsSource
	news         NewsSource

	technical       analysis.TechnicalAnalyzer
	fundamentalEval analysis.FundamentalAnalyzer
	newsEval        analysis.NewsAnalyzer
	stability       scoring.StabilityEngine
	timing          scoring.TimingEngine
	risk            scoring.RiskEngine

	weights     config.CompositeConfig
	detailsTTL  time.Duration
	analysisTTL time.Duration
	session     markethours.Session
	cache       *pricecache.Store
	log         *zap.SugaredLogger
	now         func() time.Time
}

var _ recommend.Analyzer = (*Service)(nil)

func New(
	consensus ConsensusSource,
	history HistorySource,
	fundamentals []FundamentalsSource,
	news NewsSource,
	cfg config.Config,
	session markethours.Session,
	cache *pricecache.Store,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		consensus:    consensus,
		history:      history,
		fundamentals: fundamentals,
		news:         news,
		weights:      cfg.Composite,
		detailsTTL:   time.Duration(cfg.Cache.DetailsTTLSecs) * time.Second,
		analysisTTL:  time.Duration(cfg.Cache.AnalysisTTLSecs) * time.Second,
		session:      session,
		cache:        cache,
		log:          log,
		now:          time.Now,
	}
}

// GetAggregatedDetails fans out to the price, fundamentals, and news
// collaborators in parallel. Each branch degrades independently: a dead
// fundamentals scraper yields an empty ratio bag, not a failed snapshot.
func (s *Service) GetAggregatedDetails(ctx context.Context, symbol string) (*domain.AggregatedDetails, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	ttl := s.session.CacheTTL(s.now(), s.detailsTTL)
	return pricecache.WithCache(s.cache, pricecache.Key("details", symbol), ttl, func() (*domain.AggregatedDetails, error) {
		details := &domain.AggregatedDetails{Symbol: symbol}

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			details.MarketData = s.consensus.GetConsensusPrice(ctx, symbol)
		}()
		go func() {
			defer wg.Done()
			details.Fundamentals = s.fetchFundamentals(ctx, symbol)
		}()
		go func() {
			defer wg.Done()
			news, err := s.news.GetNews(ctx, symbol)
			if err != nil {
				s.log.Warnw("news fetch failed", "symbol", symbol, "error", err)
				return
			}
			details.News = news
		}()
		wg.Wait()

		details.PriceFormatted = util.FormatINR(details.MarketData.Price)
		return details, nil
	})
}

// fetchFundamentals merges the sources in priority order: the first source's
// numbers win, later sources only fill the ratios it left blank. No single
// source reports the full bag, so a fallback chain that stops at the first
// success would leave the debt and liquidity ratios permanently missing.
func (s *Service) fetchFundamentals(ctx context.Context, symbol string) domain.FundamentalRatios {
	merged := domain.FundamentalRatios{}
	for _, source := range s.fundamentals {
		ratios, err := source.Fundamentals(ctx, symbol)
		if err != nil {
			s.log.Warnw("fundamentals source failed",
				"symbol", symbol, "source", source.SourceName(), "error", err)
			continue
		}
		merged = merged.Merge(ratios)
	}
	return merged
}

// GetComprehensiveAnalysis builds the full analysis bundle: snapshot plus a
// year of history through the analyzers, the three scoring engines, and the
// recommendation composer. Cached as a whole unit.
func (s *Service) GetComprehensiveAnalysis(ctx context.Context, symbol string) (*domain.AnalysisBundle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	ttl := s.session.CacheTTL(s.now(), s.analysisTTL)
	return pricecache.WithCache(s.cache, pricecache.Key("analysis", symbol), ttl, func() (*domain.AnalysisBundle, error) {
		details, err := s.GetAggregatedDetails(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if details.MarketData.Status == domain.ConsensusError {
			return nil, fmt.Errorf("%w: %s", ErrSymbolUnavailable, symbol)
		}

		bars, err := s.history.DailyBars(ctx, symbol, analysisPeriodDays)
		if err != nil {
			s.log.Warnw("history fetch failed", "symbol", symbol, "error", err)
			bars = nil
		}

		bundle := &domain.AnalysisBundle{
			Symbol:      symbol,
			Price:       details.MarketData.Price,
			PriceStatus: details.MarketData.Status,
			Ratios:      details.Fundamentals,
			NewsItems:   details.News,
		}

		technical, err := s.technical.Analyze(bars)
		if err != nil {
			bundle.TechnicalErr = err.Error()
		} else {
			bundle.Technical = technical
		}

		fundamental := s.fundamentalEval.Analyze(details.Fundamentals)
		bundle.Fundamental = &fundamental
		bundle.News = s.newsEval.Analyze(details.News)

		bundle.Scores = domain.ScoreSet{
			Stability: s.stability.Score(bars, details.Fundamentals),
			Timing:    s.timing.Score(bars, details.Fundamentals),
			Risk:      s.risk.Score(bars, details.Fundamentals),
		}
		bundle.Recommendation = recommend.Compose(
			bundle.Scores.Stability, bundle.Scores.Timing, bundle.Scores.Risk,
			bundle.Fundamental, s.weights)

		return bundle, nil
	})
}
