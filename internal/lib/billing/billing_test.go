package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMonthlyEquivalent тестирует приведение стоимости к месячной
func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name     string
		cost     float64
		cycle    string
		expected float64
	}{
		{name: "monthly as is", cost: 15.99, cycle: "monthly", expected: 15.99},
		{name: "yearly divided by twelve", cost: 120, cycle: "yearly", expected: 10},
		{name: "weekly", cost: 12, cycle: "weekly", expected: 52},
		{name: "daily", cost: 1, cycle: "daily", expected: 365.0 / 12.0},
		{name: "unknown cycle contributes zero", cost: 100, cycle: "quarterly", expected: 0},
		{name: "empty cycle contributes zero", cost: 100, cycle: "", expected: 0},
		{name: "zero cost", cost: 0, cycle: "monthly", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MonthlyEquivalent(tt.cost, tt.cycle), 1e-9)
		})
	}
}

// TestYearlyEquivalent проверяет, что годовая стоимость всегда ровно в 12 раз
// больше месячной, для каждого цикла.
func TestYearlyEquivalent(t *testing.T) {
	cycles := []string{"daily", "weekly", "monthly", "yearly", "unknown"}
	costs := []float64{0, 0.01, 9.99, 120, 1234.56}

	for _, cycle := range cycles {
		for _, cost := range costs {
			assert.InDelta(t, MonthlyEquivalent(cost, cycle)*12, YearlyEquivalent(cost, cycle), 1e-9,
				"cycle=%s cost=%v", cycle, cost)
		}
	}
}

// TestTotalsExample воспроизводит сквозной пример: $12.99/мес, $120/год,
// $5/нед и $1/день суммируются до $75.07 в месяц и $900.88 в год.
func TestTotalsExample(t *testing.T) {
	subs := []struct {
		cost  float64
		cycle string
	}{
		{12.99, "monthly"},
		{120, "yearly"},
		{5, "weekly"},
		{1, "daily"},
	}

	var monthly, yearly float64
	for _, s := range subs {
		monthly += MonthlyEquivalent(s.cost, s.cycle)
		yearly += YearlyEquivalent(s.cost, s.cycle)
	}

	assert.Equal(t, 75.07, Round2(monthly))
	assert.Equal(t, 900.88, Round2(yearly))
}

// TestRound2 тестирует округление до центов
func TestRound2(t *testing.T) {
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 10.0, Round2(120.0/12.0))
	assert.Equal(t, 52.0, Round2(12 * 52.0 / 12.0))
	assert.Equal(t, 1.23, Round2(1.2349))
	assert.Equal(t, 1.24, Round2(1.236))
}

// TestNextPaymentDate тестирует расчет даты следующего платежа
func TestNextPaymentDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		cycle    string
		expected time.Time
	}{
		{
			name:     "monthly steps to next month",
			start:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			cycle:    "monthly",
			expected: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "yearly steps a full year",
			start:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			cycle:    "yearly",
			expected: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "weekly",
			start:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			cycle:    "weekly",
			expected: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "daily",
			start:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			cycle:    "daily",
			expected: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "start in the future is kept",
			start:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			cycle:    "monthly",
			expected: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unknown cycle returns start",
			start:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			cycle:    "quarterly",
			expected: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPaymentDate(tt.start, tt.cycle, now)
			require.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}
