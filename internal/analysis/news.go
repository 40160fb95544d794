package analysis

import (
	"fmt"
	"strings"

	"stocksense/internal/domain"
)

var (
	positiveKeywords = []string{"surges", "gains", "profit", "growth", "beats", "strong", "record", "boost", "rise", "up"}
	negativeKeywords = []string{"falls", "drops", "loss", "decline", "weak", "miss", "cut", "down", "concern", "crisis"}
)

type NewsAnalyzer struct{}

// Analyze scores headline polarity by keyword counting. Score runs -100 to
// +100; overall sentiment flips POSITIVE/NEGATIVE only past the +/-30 band.
// An empty headline list is NEUTRAL, not an error.
func (NewsAnalyzer) Analyze(items []domain.NewsItem) domain.NewsReport {
	if len(items) == 0 {
		return domain.NewsReport{
			Sentiment: "NEUTRAL",
			Score:     0,
			Summary:   "No recent news",
		}
	}

	positive, negative, neutral := 0, 0, 0
	for _, item := range items {
		switch classifyHeadline(item.Title) {
		case "POSITIVE":
			positive++
		case "NEGATIVE":
			negative++
		default:
			neutral++
		}
	}

	total := len(items)
	score := float64(positive-negative) / float64(total) * 100

	sentiment := "NEUTRAL"
	switch {
	case score > 30:
		sentiment = "POSITIVE"
	case score < -30:
		sentiment = "NEGATIVE"
	}

	return domain.NewsReport{
		Sentiment:   sentiment,
		Score:       int(roundHalfAway(score)),
		RecentCount: total,
		Positive:    positive,
		Negative:    negative,
		Neutral:     neutral,
		Summary:     newsSummary(sentiment, total),
	}
}

func classifyHeadline(title string) string {
	lower := strings.ToLower(title)
	pos, neg := 0, 0
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return "POSITIVE"
	case neg > pos:
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}

func newsSummary(sentiment string, count int) string {
	switch sentiment {
	case "POSITIVE":
		return fmt.Sprintf("%d recent positive developments", count)
	case "NEGATIVE":
		return fmt.Sprintf("%d recent concerns reported", count)
	default:
		return fmt.Sprintf("%d recent news items, mixed sentiment", count)
	}
}

func roundHalfAway(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}
