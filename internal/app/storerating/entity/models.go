package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role представляет роль пользователя в системе.
// Закрытый набор значений, хранится в колонке users.role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

// Valid проверяет, что роль входит в закрытый набор
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// User представляет пользователя в системе
type User struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;primaryKey"`
	Name         string    `json:"name" gorm:"column:name"`
	Email        string    `json:"email" gorm:"column:email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"` // не возвращаем в JSON
	Address      string    `json:"address" gorm:"column:address"`
	Role         Role      `json:"role" gorm:"column:role"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// Store представляет магазин. OwnerID — необязательная ссылка на
// пользователя с ролью store_owner, магазин может существовать без владельца.
type Store struct {
	ID        uuid.UUID  `json:"id" gorm:"column:id;primaryKey"`
	Name      string     `json:"name" gorm:"column:name"`
	Email     string     `json:"email" gorm:"column:email"`
	Address   string     `json:"address" gorm:"column:address"`
	OwnerID   *uuid.UUID `json:"owner_id" gorm:"column:owner_id"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Store) TableName() string {
	return "stores"
}

// Rating — факт оценки магазина пользователем.
// Составной ключ (user_id, store_id): не больше одной оценки на пару.
type Rating struct {
	UserID    uuid.UUID `json:"user_id" gorm:"column:user_id;primaryKey"`
	StoreID   uuid.UUID `json:"store_id" gorm:"column:store_id;primaryKey"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// StoreWithRating — строка выдачи списка магазинов.
// AverageRating nil, когда оценок нет (в JSON отдаем null, а не 0).
// UserRating — собственная оценка вызывающего, если он аутентифицирован.
type StoreWithRating struct {
	ID            uuid.UUID  `json:"id" gorm:"column:id"`
	Name          string     `json:"name" gorm:"column:name"`
	Email         string     `json:"email" gorm:"column:email"`
	Address       string     `json:"address" gorm:"column:address"`
	OwnerID       *uuid.UUID `json:"owner_id" gorm:"column:owner_id"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	AverageRating *float64   `json:"average_rating" gorm:"column:average_rating"`
	UserRating    *int       `json:"user_rating,omitempty" gorm:"column:user_rating"`
}

// UserWithRating — строка выдачи списка пользователей.
// AverageRating заполняется только для владельцев магазинов.
type UserWithRating struct {
	ID            uuid.UUID `json:"id" gorm:"column:id"`
	Name          string    `json:"name" gorm:"column:name"`
	Email         string    `json:"email" gorm:"column:email"`
	Address       string    `json:"address" gorm:"column:address"`
	Role          Role      `json:"role" gorm:"column:role"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	AverageRating *float64  `json:"average_rating" gorm:"column:average_rating"`
}

// StoreRater — запись об оценившем пользователе для дашборда владельца
// и списка оценок магазина
type StoreRater struct {
	UserID    uuid.UUID `json:"user_id" gorm:"column:user_id"`
	Name      string    `json:"name" gorm:"column:name"`
	Email     string    `json:"email" gorm:"column:email"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// DashboardStats — агрегированные счетчики для админского дашборда
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// RatingEvent — событие об оценке, отправляемое в Kafka
type RatingEvent struct {
	EventType string    `json:"event_type"` // RATING_CREATED или RATING_UPDATED
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
