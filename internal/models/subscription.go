package models

import "time"

// Периоды списания подписки.
const (
	CycleDaily   = "daily"
	CycleWeekly  = "weekly"
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Subscription представляет подписку пользователя на сервис.
// Стоимость всегда интерпретируется относительно периода списания BillingCycle:
// сравнивать Cost разных подписок напрямую нельзя, только после нормализации.
type Subscription struct {
	ID              string    `json:"id"`
	UserUID         string    `json:"userId"`
	CategoryID      string    `json:"categoryId"`
	CategoryName    string    `json:"categoryName,omitempty"` // Заполняется JOIN-ом при чтении
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Cost            float64   `json:"cost"`
	Currency        string    `json:"currency"`
	BillingCycle    string    `json:"billingCycle"`
	StartDate       time.Time `json:"startDate"`
	NextPaymentDate time.Time `json:"nextPaymentDate"`
	IsActive        bool      `json:"isActive"`
	Website         string    `json:"website,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SubscriptionInput используется для приёма данных подписки из JSON-запроса.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type SubscriptionInput struct {
	CategoryID   string   `json:"categoryId" validate:"required,uuid"`
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=1000"`
	Cost         float64  `json:"cost" validate:"gte=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	BillingCycle string   `json:"billingCycle" validate:"required,oneof=daily weekly monthly yearly"`
	StartDate    string   `json:"startDate" validate:"required,date"`
	IsActive     *bool    `json:"isActive"`
	Website      string   `json:"website" validate:"omitempty,url"`
	Notes        string   `json:"notes" validate:"omitempty,max=2000"`
}
