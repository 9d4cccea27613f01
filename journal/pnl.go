package journal

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRatePerContractPerSide is the broker commission per contract, charged
// on both the opening and the closing fill.
const DefaultRatePerContractPerSide = 0.67

// ContractMultiplier converts an option premium into dollars per contract.
const ContractMultiplier = 100

// Calculator computes fee-adjusted P&L. Amounts are computed in decimal and
// rounded half away from zero to cents.
type Calculator struct {
	RatePerContractPerSide float64
}

// DefaultCalculator uses DefaultRatePerContractPerSide.
func DefaultCalculator() Calculator {
	return Calculator{RatePerContractPerSide: DefaultRatePerContractPerSide}
}

// Commissions is rate x 2 sides x contracts.
func (c Calculator) Commissions(contracts float64) float64 {
	return c.commissions(finiteOr(contracts, 1)).InexactFloat64()
}

func (c Calculator) commissions(contracts float64) decimal.Decimal {
	rate := decimal.NewFromFloat(finiteOr(c.RatePerContractPerSide, 0))
	return rate.Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromFloat(contracts))
}

// PnL returns (exit-entry) x 100 x contracts - commissions - otherFees,
// rounded to cents. Non-finite inputs fall back to 0 (1 for contracts).
func (c Calculator) PnL(entry, exit, contracts, otherFees float64) float64 {
	entry = finiteOr(entry, 0)
	exit = finiteOr(exit, 0)
	contracts = finiteOr(contracts, 1)
	otherFees = finiteOr(otherFees, 0)

	qty := decimal.NewFromFloat(contracts)
	gross := decimal.NewFromFloat(exit).
		Sub(decimal.NewFromFloat(entry)).
		Mul(decimal.NewFromInt(ContractMultiplier)).
		Mul(qty)

	net := gross.Sub(c.commissions(contracts)).Sub(decimal.NewFromFloat(otherFees))
	return net.Round(2).InexactFloat64()
}

// ComputePnl uses the default commission rate.
func ComputePnl(entry, exit, contracts, otherFees float64) float64 {
	return DefaultCalculator().PnL(entry, exit, contracts, otherFees)
}

// Classify maps a P&L onto exactly one outcome.
func Classify(pnl float64) Outcome {
	switch {
	case pnl > 0:
		return Win
	case pnl < 0:
		return Loss
	}
	return Breakeven
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// ParseNum coerces a raw form value. Blank, unparsable, NaN and infinite
// values all yield fallback.
func ParseNum(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return finiteOr(n, fallback)
}

func finiteOr(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}
