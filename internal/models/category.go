package models

import "time"

// Category представляет категорию расходов, на которую ссылаются подписки.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryInput используется для приёма данных категории из JSON-запроса.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color" validate:"required,hexcolor"`
	Icon        string `json:"icon" validate:"required,max=50"`
}

// UpdateCategoryInput — частичное обновление категории, все поля опциональны.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon" validate:"omitempty,min=1,max=50"`
}
