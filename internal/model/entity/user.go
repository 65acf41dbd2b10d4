package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	Id        int64           `gorm:"column:id;primary_key;" json:"id"`
	Email     string          `gorm:"column:email;uniqueIndex;size:128" json:"email"`
	Nickname  string          `gorm:"column:nickname;size:64" json:"nickname"`
	Password  string          `gorm:"column:password;size:128" json:"-"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(32,14);not null" json:"balance"` // USD余额
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
