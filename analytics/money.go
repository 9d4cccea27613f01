package analytics

import "github.com/shopspring/decimal"

func dec(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x)
}
