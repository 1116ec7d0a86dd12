package models

// DashboardOverview — сводка по подпискам пользователя.
// Все денежные значения приведены к месячному или годовому эквиваленту
// и округлены до двух знаков на границе ответа.
type DashboardOverview struct {
	TotalMonthlyCost            float64            `json:"totalMonthlyCost"`
	TotalYearlyCost             float64            `json:"totalYearlyCost"`
	SubscriptionCountByCategory map[string]int     `json:"subscriptionCountByCategory"`
	UpcomingPayments            []*Subscription    `json:"upcomingPayments"`
	TotalActiveSubscriptions    int                `json:"totalActiveSubscriptions"`
	AverageMonthlyCost          float64            `json:"averageMonthlyCost"`
	MostExpensiveSubscription   *Subscription      `json:"mostExpensiveSubscription"`
	CheapestSubscription        *Subscription      `json:"cheapestSubscription"`
}
