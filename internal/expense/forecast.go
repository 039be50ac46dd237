package expense

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/category"
)

// forecastWindow is how many recent months the moving average covers
const forecastWindow = 3

// overspendFactor flags a category whose forecast exceeds its usual month by 20%
var overspendFactor = decimal.NewFromFloat(1.2)

// CategoryForecast is the projected spend of one category
type CategoryForecast struct {
	Category        category.Category `json:"category"`
	Forecast        float64           `json:"forecast"`
	LikelyOverspend bool              `json:"likely_overspend"`
}

// Forecast projects next month's spending from the monthly history
type Forecast struct {
	Months            []string           `json:"months"`
	Totals            []float64          `json:"totals"`
	ForecastNextMonth float64            `json:"forecast_next_month"`
	CategoryForecasts []CategoryForecast `json:"category_forecasts"`
	Currency          string             `json:"currency"`
}

// NewForecast computes a moving-average forecast over the months that have
// expenses
func NewForecast(expenses []*Expense) *Forecast {
	monthTotals := newTally()
	perCategory := make(map[category.Category]map[string]decimal.Decimal)
	var categories []category.Category

	for _, e := range expenses {
		month := e.CreatedAt.UTC().Format(monthLayout)
		monthTotals.add(month, decimal.NewFromFloat(e.Total))

		for _, item := range e.Items {
			c := categoryOf(item.Category)
			if _, ok := perCategory[c]; !ok {
				perCategory[c] = make(map[string]decimal.Decimal)
				categories = append(categories, c)
			}
			perCategory[c][month] = perCategory[c][month].Add(decimal.NewFromFloat(item.Amount))
		}
	}

	history := monthTotals.byName()
	f := &Forecast{
		Months:            make([]string, 0, len(history)),
		Totals:            make([]float64, 0, len(history)),
		CategoryForecasts: make([]CategoryForecast, 0),
		Currency:          commonCurrency(expenses),
	}
	totals := make([]decimal.Decimal, 0, len(history))
	for _, h := range history {
		f.Months = append(f.Months, h.Name)
		f.Totals = append(f.Totals, h.Total)
		totals = append(totals, monthTotals.sums[h.Name])
	}
	f.ForecastNextMonth = round(movingAverage(totals))

	for _, c := range categories {
		values := make([]decimal.Decimal, 0, len(f.Months))
		for _, month := range f.Months {
			values = append(values, perCategory[c][month])
		}
		if cf, ok := forecastCategory(c, values); ok {
			f.CategoryForecasts = append(f.CategoryForecasts, cf)
		}
	}
	sort.SliceStable(f.CategoryForecasts, func(i, j int) bool {
		a, b := f.CategoryForecasts[i], f.CategoryForecasts[j]
		if a.Forecast != b.Forecast {
			return a.Forecast > b.Forecast
		}
		return a.Category < b.Category
	})

	return f
}

// forecastCategory projects one category; false when it has no spend at all
func forecastCategory(c category.Category, values []decimal.Decimal) (CategoryForecast, bool) {
	active := decimal.Zero
	activeMonths := 0
	for _, v := range values {
		if v.IsPositive() {
			active = active.Add(v)
			activeMonths++
		}
	}
	if activeMonths == 0 {
		return CategoryForecast{}, false
	}

	forecast := movingAverage(values)
	usual := mean(active, activeMonths)
	return CategoryForecast{
		Category:        c,
		Forecast:        round(forecast),
		LikelyOverspend: forecast.GreaterThan(usual.Mul(overspendFactor)),
	}, true
}

// movingAverage is the mean of the last forecastWindow values, the last value
// when there are fewer, and zero for none
func movingAverage(values []decimal.Decimal) decimal.Decimal {
	switch {
	case len(values) >= forecastWindow:
		return mean(decimal.Sum(decimal.Zero, values[len(values)-forecastWindow:]...), forecastWindow)
	case len(values) > 0:
		return values[len(values)-1]
	default:
		return decimal.Zero
	}
}
