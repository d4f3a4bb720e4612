package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/summary"
)

// Options carries the tunable thresholds for a report run.
type Options struct {
	LowStockThreshold     float64
	HighPriorityThreshold float64
	TopPerformersCount    int
	// UnitPrices maps platform id to the estimated price per unit used
	// for revenue figures.
	UnitPrices map[string]float64
}

// DefaultOptions mirrors the deployed defaults.
func DefaultOptions() Options {
	return Options{
		LowStockThreshold:     50,
		HighPriorityThreshold: 25,
		TopPerformersCount:    10,
		UnitPrices:            map[string]float64{"zepto": 120, "blinkit": 110},
	}
}

// Report is the full analytics output for one batch of validated
// records.
type Report struct {
	LowStock        []LowStockAlert   `json:"lowStock"`
	TopPerformers   []TopPerformer    `json:"topPerformers"`
	Trends          []Trend           `json:"trends"`
	CityPerformance []CityPerformance `json:"cityPerformance"`
	Revenue         []RevenueLine     `json:"revenue"`
}

// LowStockAlert flags a SKU whose sales in the most recent week fell
// under the threshold.
type LowStockAlert struct {
	Platform      string  `json:"platform"`
	SKU           string  `json:"sku"`
	LastWeekSales float64 `json:"lastWeekSales"`
	Week          string  `json:"week"`
	AlertLevel    string  `json:"alertLevel"`
}

// TopPerformer is one row of the total-sales ranking.
type TopPerformer struct {
	Platform         string  `json:"platform"`
	SKU              string  `json:"sku"`
	TotalSales       float64 `json:"totalSales"`
	Rank             int     `json:"rank"`
	PerformanceLevel string  `json:"performanceLevel"`
}

// Trend is a two-point delta over a SKU's recent weekly series. It is
// not a forecast.
type Trend struct {
	Platform        string `json:"platform"`
	SKU             string `json:"sku"`
	Trend           string `json:"trend"`
	RecentWeekSales string `json:"recentWeekSales"`
	Recommendation  string `json:"recommendation"`
}

// CityPerformance summarizes one city on one platform.
type CityPerformance struct {
	Platform     string  `json:"platform"`
	City         string  `json:"city"`
	TotalSales   float64 `json:"totalSales"`
	AvgSales     float64 `json:"avgSales"`
	RecordsCount int     `json:"recordsCount"`
	Rating       string  `json:"rating"`
}

// RevenueLine is an estimated-revenue row for one (platform, sku).
type RevenueLine struct {
	Platform     string  `json:"platform"`
	SKU          string  `json:"sku"`
	TotalUnits   float64 `json:"totalUnits"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Revenue      float64 `json:"revenue"`
	RevenueShare float64 `json:"revenueShare"`
}

type platformSKU struct {
	platform string
	sku      string
}

type platformCity struct {
	platform string
	city     string
}

// Analyze builds the full report over validated, platform-tagged
// records.
func Analyze(records []summary.Record, opts Options) *Report {
	return &Report{
		LowStock:        LowStock(records, opts.LowStockThreshold, opts.HighPriorityThreshold),
		TopPerformers:   TopPerformers(records, opts.TopPerformersCount),
		Trends:          Trends(records),
		CityPerformance: CityPerformances(records),
		Revenue:         Revenue(records, opts.UnitPrices),
	}
}

// weeklySales accumulates (platform, sku) -> week -> qty.
func weeklySales(records []summary.Record) map[platformSKU]map[string]float64 {
	acc := make(map[platformSKU]map[string]float64)
	for _, r := range records {
		key := platformSKU{r.Platform, r.SKU}
		if acc[key] == nil {
			acc[key] = make(map[string]float64)
		}
		acc[key][r.Week] += r.Quantity
	}
	return acc
}

func sortedWeekKeys(m map[string]float64) []string {
	weeks := make([]string, 0, len(m))
	for w := range m {
		weeks = append(weeks, w)
	}
	summary.SortWeeks(weeks)
	return weeks
}

// LowStock flags SKUs whose most-recent-week sales sit under threshold.
// Only SKUs with a record in the most recent week are considered; the
// most recent week is the last on the sorted axis.
func LowStock(records []summary.Record, threshold, highPriority float64) []LowStockAlert {
	weekly := weeklySales(records)

	allWeeks := summary.Weeks(records)
	if len(allWeeks) == 0 {
		return nil
	}
	mostRecent := allWeeks[len(allWeeks)-1]

	var alerts []LowStockAlert
	for key, byWeek := range weekly {
		qty, ok := byWeek[mostRecent]
		if !ok || qty >= threshold {
			continue
		}
		level := "Medium"
		if qty < highPriority {
			level = "High"
		}
		alerts = append(alerts, LowStockAlert{
			Platform:      key.platform,
			SKU:           key.sku,
			LastWeekSales: qty,
			Week:          mostRecent,
			AlertLevel:    level,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Platform != alerts[j].Platform {
			return alerts[i].Platform < alerts[j].Platform
		}
		return alerts[i].SKU < alerts[j].SKU
	})
	return alerts
}

// TopPerformers ranks (platform, sku) pairs by total quantity and keeps
// the top n.
func TopPerformers(records []summary.Record, n int) []TopPerformer {
	totals := make(map[platformSKU]float64)
	for _, r := range records {
		totals[platformSKU{r.Platform, r.SKU}] += r.Quantity
	}

	out := make([]TopPerformer, 0, len(totals))
	for key, total := range totals {
		out = append(out, TopPerformer{Platform: key.platform, SKU: key.sku, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		if out[i].Platform != out[j].Platform {
			return out[i].Platform < out[j].Platform
		}
		return out[i].SKU < out[j].SKU
	})

	for i := range out {
		out[i].Rank = i + 1
		switch {
		case out[i].Rank <= 3:
			out[i].PerformanceLevel = "Excellent"
		case out[i].Rank <= 7:
			out[i].PerformanceLevel = "Very Good"
		default:
			out[i].PerformanceLevel = "Good"
		}
	}

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

var recommendations = map[string]string{
	"Growing":   "Increase Stock",
	"Declining": "Review Strategy",
	"Stable":    "Monitor",
	"New Entry": "Track Performance",
	"No Sales":  "Consider Removal",
}

// Trends labels each (platform, sku) with a two-point percentage delta
// over its last four weeks. SKUs with fewer than two weeks of data are
// omitted.
func Trends(records []summary.Record) []Trend {
	weekly := weeklySales(records)

	keys := make([]platformSKU, 0, len(weekly))
	for key := range weekly {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].platform != keys[j].platform {
			return keys[i].platform < keys[j].platform
		}
		return keys[i].sku < keys[j].sku
	})

	var trends []Trend
	for _, key := range keys {
		byWeek := weekly[key]
		weeks := sortedWeekKeys(byWeek)
		if len(weeks) < 2 {
			continue
		}
		if len(weeks) > 4 {
			weeks = weeks[len(weeks)-4:]
		}

		first := byWeek[weeks[0]]
		last := byWeek[weeks[len(weeks)-1]]

		var label string
		switch {
		case first == 0 && last == 0:
			label = "No Sales"
		case first == 0:
			label = "New Entry"
		default:
			change := (last - first) / first * 100
			switch {
			case change > 10:
				label = "Growing"
			case change < -10:
				label = "Declining"
			default:
				label = "Stable"
			}
		}

		recent := make([]string, 0, len(weeks))
		for _, w := range weeks {
			recent = append(recent, formatQty(byWeek[w]))
		}

		trends = append(trends, Trend{
			Platform:        key.platform,
			SKU:             key.sku,
			Trend:           label,
			RecentWeekSales: strings.Join(recent, ", "),
			Recommendation:  recommendations[label],
		})
	}
	return trends
}

// CityPerformances rates each (platform, city) by total sales volume.
func CityPerformances(records []summary.Record) []CityPerformance {
	type cityStats struct {
		total float64
		count int
	}
	stats := make(map[platformCity]*cityStats)
	for _, r := range records {
		key := platformCity{r.Platform, r.City}
		s := stats[key]
		if s == nil {
			s = &cityStats{}
			stats[key] = s
		}
		s.total += r.Quantity
		s.count++
	}

	out := make([]CityPerformance, 0, len(stats))
	for key, s := range stats {
		out = append(out, CityPerformance{
			Platform:     key.platform,
			City:         key.city,
			TotalSales:   s.total,
			AvgSales:     s.total / float64(s.count),
			RecordsCount: s.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		if out[i].Platform != out[j].Platform {
			return out[i].Platform < out[j].Platform
		}
		return out[i].City < out[j].City
	})

	for i := range out {
		rank := i + 1
		switch {
		case rank <= 5:
			out[i].Rating = "Top Performer"
		case rank <= 10:
			out[i].Rating = "Good"
		case out[i].TotalSales < 100:
			out[i].Rating = "Needs Attention"
		default:
			out[i].Rating = "Average"
		}
	}
	return out
}

// Revenue estimates revenue per (platform, sku) from configured unit
// prices and computes each line's share of the total.
func Revenue(records []summary.Record, unitPrices map[string]float64) []RevenueLine {
	totals := make(map[platformSKU]float64)
	for _, r := range records {
		totals[platformSKU{r.Platform, r.SKU}] += r.Quantity
	}

	out := make([]RevenueLine, 0, len(totals))
	grand := 0.0
	for key, units := range totals {
		price := unitPrices[key.platform]
		line := RevenueLine{
			Platform:     key.platform,
			SKU:          key.sku,
			TotalUnits:   units,
			PricePerUnit: price,
			Revenue:      units * price,
		}
		grand += line.Revenue
		out = append(out, line)
	}

	for i := range out {
		if grand > 0 {
			out[i].RevenueShare = math.Round(out[i].Revenue/grand*100*100) / 100
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Platform != out[j].Platform {
			return out[i].Platform < out[j].Platform
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func formatQty(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
