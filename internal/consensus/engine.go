// Package consensus reconciles disagreeing price feeds into a single quote
// with an explicit confidence status.
package consensus

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"stocksense/internal/config"
	"stocksense/internal/domain"
	"stocksense/internal/markethours"
	"stocksense/internal/pricecache"
	"stocksense/internal/provider"

	"go.uber.org/zap"
)

type Engine struct {
	providers []provider.Provider
	weights   map[string]float64

	defaultWeight    float64
	verifiedVariance float64
	warningVariance  float64
	maxSanePrice     float64
	callTimeout      time.Duration
	baseTTL          time.Duration

	session markethours.Session
	cache   *pricecache.Store
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewEngine(
	providers []provider.Provider,
	cfg config.Config,
	session markethours.Session,
	cache *pricecache.Store,
	log *zap.SugaredLogger,
) *Engine {
	return &Engine{
		providers:        providers,
		weights:          cfg.Providers.Weights,
		defaultWeight:    cfg.Providers.DefaultWeight,
		verifiedVariance: cfg.Consensus.VerifiedVariance,
		warningVariance:  cfg.Consensus.WarningVariance,
		maxSanePrice:     cfg.Consensus.MaxSanePrice,
		callTimeout:      cfg.Providers.Timeout(),
		baseTTL:          time.Duration(cfg.Cache.ConsensusTTLSecs) * time.Second,
		session:          session,
		cache:            cache,
		log:              log,
		now:              time.Now,
	}
}

// GetConsensusPrice fans out to every provider, merges the quotes that came
// back, and caches the result for the market-hours-aware TTL. Total provider
// failure is not an error: it comes back as a well-formed result with
// Status ERROR and price 0.
func (e *Engine) GetConsensusPrice(ctx context.Context, symbol string) domain.ConsensusResult {
	key := pricecache.Key("consensus", symbol)
	ttl := e.session.CacheTTL(e.now(), e.baseTTL)

	result, _ := pricecache.WithCache(e.cache, key, ttl, func() (domain.ConsensusResult, error) {
		return e.fetchConsensus(ctx, symbol), nil
	})
	return result
}

type fetchResult struct {
	source  string
	details map[string]any
	err     error
}

type validQuote struct {
	source  string
	price   float64
	weight  float64
	details map[string]any
}

func (e *Engine) fetchConsensus(ctx context.Context, symbol string) domain.ConsensusResult {
	// every adapter call is issued together and allowed to settle before
	// merging; a per-call timeout keeps one slow source from stalling the
	// whole fan-in
	results := make([]fetchResult, len(e.providers))
	var wg sync.WaitGroup
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
			defer cancel()
			details, err := p.GetStockDetails(callCtx, symbol)
			results[i] = fetchResult{source: p.SourceName(), details: details, err: err}
		}(i, p)
	}
	wg.Wait()

	valid := []validQuote{}
	for _, res := range results {
		if res.err != nil {
			e.log.Warnw("provider failed", "source", res.source, "symbol", symbol, "error", res.err)
			continue
		}
		price := priceFromDetails(res.source, res.details)
		if price <= 0 || price > e.maxSanePrice {
			continue
		}
		valid = append(valid, validQuote{
			source:  res.source,
			price:   price,
			weight:  e.weightFor(res.source),
			details: res.details,
		})
	}

	if len(valid) == 0 {
		return domain.ConsensusResult{
			Status:  domain.ConsensusError,
			Price:   0.0,
			Sources: map[string]float64{},
			Message: "no data source available",
		}
	}

	totalWeight := 0.0
	weightedSum := 0.0
	sources := map[string]float64{}
	minPrice := valid[0].price
	maxPrice := valid[0].price
	for _, q := range valid {
		totalWeight += q.weight
		weightedSum += q.price * q.weight
		sources[q.source] = q.price
		if q.price < minPrice {
			minPrice = q.price
		}
		if q.price > maxPrice {
			maxPrice = q.price
		}
	}

	variance := 0.0
	if len(valid) >= 2 && minPrice > 0 {
		variance = (maxPrice - minPrice) / minPrice
	}

	status := domain.ConsensusSingleSource
	if len(valid) >= 2 {
		switch {
		case variance < e.verifiedVariance:
			status = domain.ConsensusVerified
		case variance < e.warningVariance:
			status = domain.ConsensusWarning
		default:
			status = domain.ConsensusUnstable
		}
	}

	// the richest payload comes from the highest-weight source that answered
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].weight > valid[j].weight
	})

	return domain.ConsensusResult{
		Price:         weightedSum / totalWeight,
		Status:        status,
		VariancePct:   variance * 100,
		Sources:       sources,
		PrimarySource: valid[0].source,
		Details:       valid[0].details,
	}
}

func (e *Engine) weightFor(source string) float64 {
	if w, ok := e.weights[source]; ok {
		return w
	}
	return e.defaultWeight
}

// priceFromDetails extracts a price using source-specific field lookup.
func priceFromDetails(source string, details map[string]any) float64 {
	var keys []string
	switch source {
	case "NSE":
		keys = []string{"lastPrice", "LastPrice"}
	case "YahooFinance":
		keys = []string{"currentPrice", "regularMarketPrice", "price"}
	default:
		keys = []string{"price"}
	}
	for _, k := range keys {
		if v, ok := details[k]; ok {
			if p := asFloat(v); p > 0 {
				return p
			}
		}
	}
	return 0
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
