// Package billing содержит чистые функции нормализации стоимости подписок.
//
// Стоимость подписки всегда указана за один период списания, поэтому перед
// любым сравнением или суммированием её приводят к общему периоду. Используются
// упрощённые соглашения: 52 недели и 365 дней в году, без учёта високосных лет.
package billing

import (
	"math"
	"time"

	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// MonthlyEquivalent приводит стоимость за период cycle к месячному эквиваленту.
// Неизвестный период даёт 0.
func MonthlyEquivalent(cost float64, cycle string) float64 {
	switch cycle {
	case models.CycleMonthly:
		return cost
	case models.CycleYearly:
		return cost / 12
	case models.CycleWeekly:
		return cost * 52 / 12
	case models.CycleDaily:
		return cost * 365 / 12
	default:
		return 0
	}
}

// YearlyEquivalent приводит стоимость за период cycle к годовому эквиваленту.
// Для любого периода YearlyEquivalent(c, cycle) == MonthlyEquivalent(c, cycle) * 12.
func YearlyEquivalent(cost float64, cycle string) float64 {
	switch cycle {
	case models.CycleMonthly:
		return cost * 12
	case models.CycleYearly:
		return cost
	case models.CycleWeekly:
		return cost * 52
	case models.CycleDaily:
		return cost * 365
	default:
		return 0
	}
}

// Round2 округляет денежное значение до двух знаков. Применяется только на
// границе ответа, чтобы ошибка округления не накапливалась при агрегации.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NextPaymentDate возвращает первую дату списания, строго позднее now:
// от даты старта подписки шагаем вперёд на один период списания.
// Неизвестный период оставляет дату старта без изменений.
func NextPaymentDate(start time.Time, cycle string, now time.Time) time.Time {
	next := start
	for !next.After(now) {
		switch cycle {
		case models.CycleDaily:
			next = next.AddDate(0, 0, 1)
		case models.CycleWeekly:
			next = next.AddDate(0, 0, 7)
		case models.CycleMonthly:
			next = next.AddDate(0, 1, 0)
		case models.CycleYearly:
			next = next.AddDate(1, 0, 0)
		default:
			return start
		}
	}
	return next
}
