package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestBuildCalendarEmptyMonth(t *testing.T) {
	t.Parallel()

	cal := BuildCalendar(nil, 2024, time.February, DefaultBreakevenDayBand)
	assert.Equal(t, "February 2024", cal.Title)

	cells := 0
	for _, w := range cal.Weeks {
		assert.Equal(t, 0.0, w.Total)
		assert.Equal(t, Neutral, w.Class)
		for _, d := range w.Days {
			cells++
			assert.Equal(t, 0.0, d.PnL)
			assert.Equal(t, Neutral, d.Class)
		}
	}
	assert.Equal(t, 42, cells)
}

func TestBuildCalendarGridStart(t *testing.T) {
	t.Parallel()

	// 2024-09-01 is a Sunday: grid starts on the 1st.
	cal := BuildCalendar(nil, 2024, time.September, DefaultBreakevenDayBand)
	assert.Equal(t, "2024-09-01", cal.Weeks[0].Days[0].Date)
	assert.True(t, cal.Weeks[0].Days[0].InCurrentMonth)
	assert.Equal(t, "2024-10-12", cal.Weeks[5].Days[6].Date)

	// 2024-05-01 is a Wednesday: grid starts Sunday 2024-04-28.
	cal = BuildCalendar(nil, 2024, time.May, DefaultBreakevenDayBand)
	first := cal.Weeks[0].Days[0]
	assert.Equal(t, "2024-04-28", first.Date)
	assert.Equal(t, 28, first.Day)
	assert.False(t, first.InCurrentMonth)
	assert.Equal(t, "2024-05-01", cal.Weeks[0].Days[3].Date)
	assert.True(t, cal.Weeks[0].Days[3].InCurrentMonth)
	assert.Equal(t, "2024-06-08", cal.Weeks[5].Days[6].Date)
	assert.False(t, cal.Weeks[5].Days[6].InCurrentMonth)
}

func TestBuildCalendarSumsDaysAndWeeks(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		tr("1", "2024-05-01", "SPY", "", 30),
		tr("2", "2024-05-01", "QQQ", "", -12.5),
		tr("3", "2024-05-02", "SPY", "", -25),
		tr("4", "2024-04-29", "SPY", "", 7),  // previous month, still in the grid
		tr("5", "2024-06-07", "SPY", "", 50), // next month, last row
		tr("6", "2024-07-01", "SPY", "", 99), // outside the grid
	}

	cal := BuildCalendar(trades, 2024, time.May, DefaultBreakevenDayBand)
	w0 := cal.Weeks[0]

	assert.Equal(t, 7.0, w0.Days[1].PnL)
	assert.Equal(t, Neutral, w0.Days[1].Class)
	assert.Equal(t, 17.5, w0.Days[3].PnL)
	assert.Equal(t, Good, w0.Days[3].Class)
	assert.Equal(t, -25.0, w0.Days[4].PnL)
	assert.Equal(t, Bad, w0.Days[4].Class)
	assert.Equal(t, -0.5, w0.Total)
	assert.Equal(t, Neutral, w0.Class)

	w5 := cal.Weeks[5]
	assert.Equal(t, "2024-06-07", w5.Days[5].Date)
	assert.Equal(t, 50.0, w5.Days[5].PnL)
	assert.Equal(t, 50.0, w5.Total)
	assert.Equal(t, Good, w5.Class)
}

func TestClassifyDayBand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Neutral, ClassifyDay(10, 10))
	assert.Equal(t, Neutral, ClassifyDay(-10, 10))
	assert.Equal(t, Good, ClassifyDay(10.01, 10))
	assert.Equal(t, Bad, ClassifyDay(-10.01, 10))
	assert.Equal(t, Good, ClassifyDay(0.01, 0))
}

func TestCalendarDaySumsAreExact(t *testing.T) {
	t.Parallel()

	cal := BuildCalendar([]journal.TradeRecord{
		tr("1", "2024-05-01", "SPY", "", 0.1),
		tr("2", "2024-05-01", "SPY", "", 0.2),
		tr("3", "2024-05-02", "SPY", "", -3),
	}, 2024, time.May, DefaultBreakevenDayBand)

	// May 1st 2024 is a Wednesday.
	assert.Equal(t, "2024-05-01", cal.Weeks[0].Days[3].Date)
	assert.Equal(t, 0.3, cal.Weeks[0].Days[3].PnL)
	assert.Equal(t, -3.0, cal.Weeks[0].Days[4].PnL)
	assert.Equal(t, -2.7, cal.Weeks[0].Total)
}

func TestCalendarNeighbours(t *testing.T) {
	t.Parallel()

	cal := BuildCalendar(nil, 2024, time.January, DefaultBreakevenDayBand)
	assert.Equal(t, YearMonth{Year: 2023, Month: time.December}, cal.Prev)
	assert.Equal(t, YearMonth{Year: 2024, Month: time.February}, cal.Next)

	cal = BuildCalendar(nil, 2024, time.December, DefaultBreakevenDayBand)
	assert.Equal(t, YearMonth{Year: 2024, Month: time.November}, cal.Prev)
	assert.Equal(t, YearMonth{Year: 2025, Month: time.January}, cal.Next)
}

func TestMonthNavigation(t *testing.T) {
	t.Parallel()

	y, m := NextMonth(2024, time.December)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)

	y, m = PrevMonth(2024, time.January)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = NextMonth(2024, time.May)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.June, m)
}
