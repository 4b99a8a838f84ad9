package types

import (
	"time"
)

// Memo is one row of calendar_memos. Rows are hard-deleted so the unique
// date index never collides with a tombstone.
type Memo struct {
	ID        uint      `gorm:"primaryKey" json:"-" yaml:"-"`
	Date      string    `gorm:"column:date;uniqueIndex;not null" json:"date" yaml:"date"`
	Text      string    `gorm:"column:memo;not null" json:"memo" yaml:"memo"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at" yaml:"updated_at"`
}

func (Memo) TableName() string {
	return "calendar_memos"
}
