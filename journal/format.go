package journal

import (
	"fmt"
	"math"
)

// FormatMoney renders -$12.34 / $12.34. Amounts that round to zero carry no
// sign.
func FormatMoney(n float64) string {
	n = Round2(n)
	sign := ""
	if n < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%.2f", sign, math.Abs(n))
}

// To12Hour renders a 24-hour HH:MM as "6:30 AM". Blank or malformed input
// renders as "--:--".
func To12Hour(hhmm string) string {
	m, err := minuteOfDay(hhmm)
	if err != nil {
		return "--:--"
	}
	h, min := m/60, m%60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min, ampm)
}

// TimeRangeLabel renders the entry/exit pair for the trades table.
func TimeRangeLabel(entry, exit string) string {
	return To12Hour(entry) + " → " + To12Hour(exit)
}

// SessionTimes lists every minute from start to end inclusive as HH:MM. These
// are the only non-blank values NewTrade accepts for entry and exit times.
func SessionTimes(start, end string) ([]string, error) {
	lo, err := minuteOfDay(start)
	if err != nil {
		return nil, err
	}
	hi, err := minuteOfDay(end)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return []string{}, nil
	}
	out := make([]string, 0, hi-lo+1)
	for m := lo; m <= hi; m++ {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out, nil
}
