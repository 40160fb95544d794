// Package history fetches daily OHLCV bars from Yahoo Finance for NSE
// symbols and caches them with a market-hours-aware TTL.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stocksense/internal/config"
	"stocksense/internal/domain"
	"stocksense/internal/markethours"
	"stocksense/internal/pricecache"
	"stocksense/internal/provider"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"go.uber.org/zap"
)

type Service struct {
	suffix  string
	ttl     time.Duration
	session markethours.Session
	cache   *pricecache.Store
	log     *zap.SugaredLogger
	now     func() time.Time
}

func New(cfg config.Config, session markethours.Session, cache *pricecache.Store, log *zap.SugaredLogger) *Service {
	return &Service{
		suffix:  cfg.Providers.YahooSuffix,
		ttl:     time.Duration(cfg.Cache.HistoryTTLSecs) * time.Second,
		session: session,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// DailyBars returns up to days of ascending daily bars for symbol. Bars with
// a zero close are dropped; Yahoo emits them for holidays and halted days.
func (s *Service) DailyBars(ctx context.Context, symbol string, days int) ([]domain.OHLCVBar, error) {
	ttl := s.session.CacheTTL(s.now(), s.ttl)
	return pricecache.WithCache(s.cache, pricecache.Key("history", symbol, fmt.Sprint(days)), ttl, func() ([]domain.OHLCVBar, error) {
		return s.fetch(ctx, symbol, days)
	})
}

func (s *Service) fetch(ctx context.Context, symbol string, days int) ([]domain.OHLCVBar, error) {
	end := s.now()
	start := end.AddDate(0, 0, -days)
	params := &chart.Params{
		Symbol:   symbol + s.suffix,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	// chart.Get takes no context, so the iteration runs behind provider.Call
	// to keep the caller's deadline live.
	bars, err := provider.Call(ctx, func() ([]domain.OHLCVBar, error) {
		iter := chart.Get(params)
		bars := []domain.OHLCVBar{}
		for iter.Next() {
			b := iter.Bar()
			closePx := b.Close.InexactFloat64()
			if closePx <= 0 {
				continue
			}
			bars = append(bars, domain.OHLCVBar{
				Date:   time.Unix(int64(b.Timestamp), 0),
				Open:   b.Open.InexactFloat64(),
				High:   b.High.InexactFloat64(),
				Low:    b.Low.InexactFloat64(),
				Close:  closePx,
				Volume: float64(b.Volume),
			})
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		return bars, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", symbol, err)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	s.log.Infow("fetched price history", "symbol", symbol, "bars", len(bars))
	return bars, nil
}
