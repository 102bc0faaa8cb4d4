package entity

import "github.com/google/uuid"

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest - запрос на смену пароля
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// CreateUserRequest - создание пользователя администратором (роль задается явно)
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
}

// CreateStoreRequest - создание магазина администратором.
// Имя магазина не ограничено 5-20 символами, достаточно непустого.
type CreateStoreRequest struct {
	Name    string     `json:"name" validate:"required"`
	Email   string     `json:"email" validate:"required,email"`
	Address string     `json:"address" validate:"required,max=400"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

// SubmitRatingRequest - выставление оценки магазину
type SubmitRatingRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
	Rating  int       `json:"rating" validate:"required"`
}

// StoreFilter - фильтры списка магазинов (подстрочный поиск)
type StoreFilter struct {
	Name    string
	Address string
}

// UserFilter - фильтры списка пользователей
// Роль сравнивается точно, остальные поля — по подстроке
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    Role
}

// AuthResponse - ответ на вход: токен и пользователь без креденшла
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// StoreRatingsResponse - оценки магазина с агрегатом
type StoreRatingsResponse struct {
	Ratings       []StoreRater `json:"ratings"`
	AverageRating *float64     `json:"averageRating"`
	TotalRatings  int          `json:"totalRatings"`
}

// OwnerDashboardResponse - дашборд владельца магазина
type OwnerDashboardResponse struct {
	Store         Store        `json:"store"`
	AverageRating *float64     `json:"averageRating"`
	Raters        []StoreRater `json:"raters"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
