// Package universe serves the equity listing universe: the master symbol
// list, fuzzy search over it, and sector discovery. The listing file itself
// comes from the exchange; this package only reads, caches, and queries it.
package universe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"stocksense/internal/config"
	"stocksense/internal/domain"
	"stocksense/internal/pricecache"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

const maxSearchResults = 10

// nseSectors are the officially recognized sector buckets, mapped to the
// industry-classification terms used to filter the equity list.
var nseSectors = map[string][]string{
	"AUTO":      {"auto"},
	"IT":        {"information technology", "software", "computer"},
	"BANK":      {"bank"},
	"PHARMA":    {"pharma", "healthcare", "drug"},
	"FMCG":      {"fmcg", "consumer", "food"},
	"METAL":     {"metal", "steel", "mining", "aluminium"},
	"REALTY":    {"realty", "real estate", "construction"},
	"ENERGY":    {"energy", "power", "oil", "gas"},
	"MEDIA":     {"media", "entertainment"},
	"FINANCIAL": {"financial", "finance", "insurance"},
	"INFRA":     {"infrastructure", "engineering"},
	"TELECOM":   {"telecom"},
	"CEMENT":    {"cement"},
	"CHEMICAL":  {"chemical"},
	"TEXTILE":   {"textile"},
}

// sectorKeywords maps loose user phrasing to a sector bucket.
var sectorKeywords = map[string]string{
	"car": "AUTO", "automobile": "AUTO", "vehicle": "AUTO", "ev": "AUTO",
	"software": "IT", "tech": "IT", "technology": "IT",
	"medicine": "PHARMA", "drug": "PHARMA", "healthcare": "PHARMA",
	"aluminum": "METAL", "aluminium": "METAL", "steel": "METAL", "copper": "METAL",
	"food": "FMCG", "product": "FMCG",
	"property": "REALTY", "real estate": "REALTY", "housing": "REALTY",
	"oil": "ENERGY", "gas": "ENERGY", "power": "ENERGY", "electricity": "ENERGY",
	"loan": "BANK", "banking": "BANK", "finance": "FINANCIAL", "insurance": "FINANCIAL",
}

type Service struct {
	path  string
	cache *pricecache.Store
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func New(cfg config.Config, cache *pricecache.Store, log *zap.SugaredLogger) *Service {
	return &Service{
		path:  cfg.Universe.EquityListPath,
		cache: cache,
		ttl:   time.Duration(cfg.Cache.UniverseTTLSecs) * time.Second,
		log:   log,
	}
}

// Listings loads the full equity list, EQ series only, cached for a day.
func (s *Service) Listings(_ context.Context) ([]domain.Listing, error) {
	return pricecache.WithCache(s.cache, pricecache.Key("universe"), s.ttl, func() ([]domain.Listing, error) {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read equity list %s: %w", s.path, err)
		}

		var all []domain.Listing
		if err := gocsv.UnmarshalBytes(data, &all); err != nil {
			return nil, fmt.Errorf("parse equity list: %w", err)
		}

		listings := make([]domain.Listing, 0, len(all))
		for _, l := range all {
			if l.Series != "" && l.Series != "EQ" {
				continue
			}
			l.Symbol = strings.ToUpper(strings.TrimSpace(l.Symbol))
			l.Name = strings.TrimSpace(l.Name)
			if l.Symbol == "" {
				continue
			}
			listings = append(listings, l)
		}
		s.log.Infow("loaded equity universe", "count", len(listings))
		return listings, nil
	})
}

type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Search ranks symbols against a query: exact symbol beats symbol prefix
// beats name prefix beats containment. At most ten results.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	listings, err := s.Listings(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	results := []SearchResult{}
	for _, l := range listings {
		name := strings.ToUpper(l.Name)

		score := 0
		switch {
		case l.Symbol == q:
			score = 100
		case strings.HasPrefix(l.Symbol, q):
			score = 80
		case strings.HasPrefix(name, q):
			score = 60
		case strings.Contains(l.Symbol, q):
			score = 40
		case strings.Contains(name, q):
			score = 20
		}
		if score > 0 {
			results = append(results, SearchResult{Symbol: l.Symbol, Name: l.Name, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results, nil
}

// SectorListings resolves a free-form sector query ("pharma", "aluminum",
// "IT") to a sector bucket and returns its constituent listings, matched by
// industry classification with a company-name fallback.
func (s *Service) SectorListings(ctx context.Context, query string) (string, []domain.Listing, error) {
	listings, err := s.Listings(ctx)
	if err != nil {
		return "", nil, err
	}

	matched := matchSector(query)
	terms := nseSectors[matched]
	if len(terms) == 0 {
		terms = []string{strings.ToLower(strings.TrimSpace(query))}
	}

	byIndustry := []domain.Listing{}
	for _, l := range listings {
		industry := strings.ToLower(l.Industry)
		for _, term := range terms {
			if industry != "" && strings.Contains(industry, term) {
				byIndustry = append(byIndustry, l)
				break
			}
		}
	}
	if len(byIndustry) > 0 {
		return matched, byIndustry, nil
	}

	// no industry classification available: fall back to company names
	byName := []domain.Listing{}
	for _, l := range listings {
		name := strings.ToLower(l.Name)
		for _, term := range terms {
			if strings.Contains(name, term) {
				byName = append(byName, l)
				break
			}
		}
	}
	return matched, byName, nil
}

func (s *Service) AvailableSectors() []string {
	out := make([]string, 0, len(nseSectors))
	for sector := range nseSectors {
		out = append(out, sector)
	}
	sort.Strings(out)
	return out
}

func matchSector(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if _, ok := nseSectors[strings.ToUpper(normalized)]; ok {
		return strings.ToUpper(normalized)
	}

	// sorted walk keeps multi-keyword queries deterministic
	keywords := make([]string, 0, len(sectorKeywords))
	for kw := range sectorKeywords {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return sectorKeywords[kw]
		}
	}
	return strings.ToUpper(normalized)
}
