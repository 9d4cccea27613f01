package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

const (
	CalendarWeeks = 6
	DaysPerWeek   = 7

	// DefaultBreakevenDayBand is independent of the per-trade breakeven
	// (exactly zero). Days and weeks within +/- band are neutral.
	DefaultBreakevenDayBand = 10.0
)

// Day is one calendar cell.
type Day struct {
	Date           string  `json:"date"`
	Day            int     `json:"day"`
	InCurrentMonth bool    `json:"inCurrentMonth"`
	PnL            float64 `json:"pnl"`
	Class          Band    `json:"class"`
}

// Week is one grid row plus its trailing total cell.
type Week struct {
	Days  [DaysPerWeek]Day `json:"days"`
	Total float64          `json:"total"`
	Class Band             `json:"class"`
}

// Calendar is a fixed 6x7 month grid starting on the Sunday on or before the
// 1st. Cells outside the month still carry their real P&L.
type Calendar struct {
	Year  int                 `json:"year"`
	Month time.Month          `json:"month"`
	Title string              `json:"title"`
	Weeks [CalendarWeeks]Week `json:"weeks"`
	Prev  YearMonth           `json:"prev"`
	Next  YearMonth           `json:"next"`
}

// YearMonth addresses a neighbouring calendar page.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ClassifyDay buckets a day or week total: above +band is good, below -band
// is bad, anything in between is neutral.
func ClassifyDay(pnl, band float64) Band {
	switch {
	case pnl > band:
		return Good
	case pnl < -band:
		return Bad
	}
	return Neutral
}

func dailyTotals(trades []journal.TradeRecord) map[string]decimal.Decimal {
	totals := map[string]decimal.Decimal{}
	for _, t := range trades {
		totals[t.Date] = totals[t.Date].Add(dec(t.PnL))
	}
	return totals
}

// BuildCalendar lays out the requested month. It depends only on its
// arguments; navigation state lives with the caller.
func BuildCalendar(trades []journal.TradeRecord, year int, month time.Month, band float64) Calendar {
	daily := dailyTotals(trades)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cursor := first.AddDate(0, 0, -int(first.Weekday()))

	cal := Calendar{
		Year:  first.Year(),
		Month: first.Month(),
		Title: first.Format("January 2006"),
	}
	cal.Prev.Year, cal.Prev.Month = PrevMonth(cal.Year, cal.Month)
	cal.Next.Year, cal.Next.Month = NextMonth(cal.Year, cal.Month)

	for w := 0; w < CalendarWeeks; w++ {
		week := &cal.Weeks[w]
		total := decimal.Zero
		for d := 0; d < DaysPerWeek; d++ {
			ymd := cursor.Format(journal.DateLayout)
			p := daily[ymd]
			total = total.Add(p)

			pnl := p.InexactFloat64()
			week.Days[d] = Day{
				Date:           ymd,
				Day:            cursor.Day(),
				InCurrentMonth: cursor.Month() == cal.Month,
				PnL:            pnl,
				Class:          ClassifyDay(pnl, band),
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		week.Total = total.InexactFloat64()
		week.Class = ClassifyDay(week.Total, band)
	}
	return cal
}

// NextMonth and PrevMonth step calendar navigation state.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
