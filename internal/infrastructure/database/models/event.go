package models

import (
	"time"
)

type Player struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	PersonID uint   `json:"personId" gorm:"uniqueIndex;not null"`
	Person   Person `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UserName string `json:"userName" gorm:"type:text;not null;uniqueIndex"`
	Status   int    `json:"status" gorm:"not null;default:0"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Event struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	Status         int           `json:"status" gorm:"not null;default:0"`
	Name           string        `json:"name" gorm:"type:text;not null"`
	Description    string        `json:"description" gorm:"type:text"`
	OwnerID        uint          `json:"ownerId" gorm:"not null"`
	Owner          Player        `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	FairID         *uint         `json:"fairId" gorm:"index"`
	Fair           *Fair         `json:"-" gorm:"constraint:OnDelete:SET NULL;"`
	MasterID       *uint         `json:"masterId" gorm:"index"`
	OrganisationID *uint         `json:"organisationId"`
	Organisation   *Organisation `json:"-" gorm:"constraint:OnDelete:SET NULL;"`
	Date           time.Time     `json:"date" gorm:"type:date;not null;index"`
	Time           *time.Time    `json:"time"`
	EndDate        *time.Time    `json:"endDate" gorm:"type:date"`
	EndTime        *time.Time    `json:"endTime"`
	Location       string        `json:"location" gorm:"type:text"`
	CDate          time.Time     `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Actor struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	PersonID uint   `json:"personId" gorm:"index;not null"`
	Person   Person `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	EventID  uint   `json:"eventId" gorm:"index;not null"`
	Event    Event  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Role     string `json:"role" gorm:"type:text"`
	Status   int    `json:"status" gorm:"not null;default:0"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type EventComment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	AuthorID uint   `json:"authorId" gorm:"not null"`
	Author   Player `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	EventID  uint   `json:"eventId" gorm:"index;not null"`
	Event    Event  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Text     string `json:"text" gorm:"type:text;not null"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type EventApplication struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	PersonID uint   `json:"personId" gorm:"uniqueIndex:idx_applications_person_event;not null"`
	Person   Person `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	EventID  uint   `json:"eventId" gorm:"uniqueIndex:idx_applications_person_event;not null"`
	Event    Event  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Status   int    `json:"status" gorm:"not null;default:0"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
