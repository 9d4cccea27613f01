package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

func orgTrade() TradeRecord {
	return TradeRecord{
		ID:        "01HV5Q3N8Z0000000000000000",
		Date:      "2024-03-15",
		EntryTime: "06:45",
		ExitTime:  "07:10",
		Ticker:    "SPY",
		Strategy:  "ORB",
		CP:        Call,
		DTE:       0,
		Strike:    512,
		Entry:     1.25,
		Exit:      1.80,
		Contracts: 2,
		OtherFees: 0.10,
		Notes:     "clean break of the opening range",
		PnL:       107.22,
		Outcome:   Win,
	}
}

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(orgTrade(), DefaultRatePerContractPerSide)

	assert.Contains(t, result, "** 2024-03-15 SPY C DTE0 512 (01HV5Q3N)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HV5Q3N8Z0000000000000000")
	assert.Contains(t, result, ":TIME: 6:45 AM → 7:10 AM")
	assert.Contains(t, result, ":STRATEGY: ORB")
	assert.Contains(t, result, ":ENTRY: 1.25")
	assert.Contains(t, result, ":EXIT: 1.80")
	assert.Contains(t, result, ":CONTRACTS: 2")
	assert.Contains(t, result, ":COMMISSIONS: 2.68")
	assert.Contains(t, result, ":OTHER_FEES: 0.10")
	assert.Contains(t, result, ":PNL: 107.22")
	assert.Contains(t, result, ":OUTCOME: WIN")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Review\n- clean break of the opening range")
}

func TestFormatTradeOrgUnknownStrategy(t *testing.T) {
	t.Parallel()

	tr := orgTrade()
	tr.Strategy = ""
	tr.Notes = ""
	tr.PnL = -500
	tr.Outcome = Loss

	result := FormatTradeOrg(tr, DefaultRatePerContractPerSide)
	assert.Contains(t, result, ":STRATEGY: Unknown")
	assert.Contains(t, result, ":PNL: -500.00")
	assert.Contains(t, result, "*** Review\n- \n")
}

func TestFormatTradeOrgCreated(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 13, 45, 10, 0, time.UTC)
	tr := orgTrade()
	tr.ID = id.NewGenerator(42, func() time.Time { return at }).New()

	result := FormatTradeOrg(tr, DefaultRatePerContractPerSide)
	assert.Contains(t, result, ":ID: "+tr.ID+"\n:CREATED: 2024-03-15T13:45:10Z\n")

	tr.ID = "trade-002"
	assert.NotContains(t, FormatTradeOrg(tr, DefaultRatePerContractPerSide), ":CREATED:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	a := orgTrade()
	b := orgTrade()
	b.ID = "trade-002"
	b.Ticker = "QQQ"

	result := FormatTradesOrg([]TradeRecord{a, b}, DefaultRatePerContractPerSide)
	assert.Contains(t, result, "SPY")
	assert.Contains(t, result, "QQQ")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil, DefaultRatePerContractPerSide))
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	lines := strings.Split(FormatTradeOrg(orgTrade(), DefaultRatePerContractPerSide), "\n")
	require.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "** "))

	propertiesStart, propertiesEnd, reviewIdx := -1, -1, -1
	for i, line := range lines {
		switch {
		case line == ":PROPERTIES:":
			propertiesStart = i
		case line == ":END:" && propertiesEnd < 0:
			propertiesEnd = i
		case line == "*** Review":
			reviewIdx = i
		}
	}
	assert.Equal(t, 1, propertiesStart)
	assert.Greater(t, propertiesEnd, propertiesStart)
	assert.Greater(t, reviewIdx, propertiesEnd)
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID gets truncated", "trade-12345678-abcdef", "trade-12"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}
