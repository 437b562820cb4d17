package models

import (
	"time"
)

type Invoice struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Status    int        `json:"status" gorm:"not null;default:0"`
	Reference string     `json:"reference" gorm:"type:text;index"`
	Amount    int64      `json:"amount" gorm:"not null;default:0"`
	Sent      *time.Time `json:"sent" gorm:"type:timestamp with time zone"`
	Paid      *time.Time `json:"paid" gorm:"type:timestamp with time zone"`
	Cancelled *time.Time `json:"cancelled" gorm:"type:timestamp with time zone"`
	Banked    *time.Time `json:"banked" gorm:"type:timestamp with time zone"`
	CDate     time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
