package entity

import "time"

// 交易标的是开放的字典表，新上币种不需要改代码
type Symbol struct {
	Id        int64     `gorm:"column:id;primary_key;" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;size:32" json:"name"`
	Status    int       `gorm:"column:status" json:"status"` // 1 可交易
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Symbol) TableName() string {
	return "symbols"
}
