package models

import (
	"time"
)

type Fair struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Date        time.Time `json:"date" gorm:"type:date;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	Current     bool      `json:"current" gorm:"not null;default:false"`
}
