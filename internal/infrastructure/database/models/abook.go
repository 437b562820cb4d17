package models

import (
	"time"
)

// Contactable carries the type tag, shared status and cached basic name for
// every address book entry. The concrete row lives in persons,
// organisations or members.
type Contactable struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      int       `json:"type" gorm:"index;not null"`
	Status    int       `json:"status" gorm:"not null;default:0"`
	BasicName string    `json:"basicName" gorm:"type:text;index"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Person struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ContactableID uint        `json:"contactableId" gorm:"uniqueIndex;not null"`
	Contactable   Contactable `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Title         int         `json:"title" gorm:"default:-1"`
	FirstName     string      `json:"firstName" gorm:"type:text;not null"`
	MiddleName    string      `json:"middleName" gorm:"type:text"`
	LastName      string      `json:"lastName" gorm:"type:text;not null;index"`
	Nickname      string      `json:"nickname" gorm:"type:text"`
}

// PersonAlter links a person to another who can be contacted instead.
type PersonAlter struct {
	PersonID uint `json:"personId" gorm:"primaryKey"`
	AlterID  uint `json:"alterId" gorm:"primaryKey"`
}

type Organisation struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ContactableID uint        `json:"contactableId" gorm:"uniqueIndex;not null"`
	Contactable   Contactable `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Name          string      `json:"name" gorm:"type:text;not null;index"`
	Nickname      string      `json:"nickname" gorm:"type:text"`
}

type Member struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	ContactableID  uint         `json:"contactableId" gorm:"uniqueIndex;not null"`
	Contactable    Contactable  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	OrganisationID uint         `json:"organisationId" gorm:"uniqueIndex:idx_members_org_person;not null"`
	Organisation   Organisation `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	PersonID       uint         `json:"personId" gorm:"uniqueIndex:idx_members_org_person;not null"`
	Person         Person       `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Title          string       `json:"title" gorm:"type:text"`
}

type Contact struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ContactableID uint        `json:"contactableId" gorm:"index;not null"`
	Contactable   Contactable `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Status        int         `json:"status" gorm:"not null;default:0"`
	Line1         string      `json:"line1" gorm:"type:text"`
	Line2         string      `json:"line2" gorm:"type:text"`
	Line3         string      `json:"line3" gorm:"type:text"`
	Town          string      `json:"town" gorm:"type:text"`
	Postcode      string      `json:"postcode" gorm:"type:text"`
	Country       string      `json:"country" gorm:"type:text"`
	Email         string      `json:"email" gorm:"type:text"`
	Website       string      `json:"website" gorm:"type:text"`
	Telephone     string      `json:"telephone" gorm:"type:text"`
	Mobile        string      `json:"mobile" gorm:"type:text"`
	Fax           string      `json:"fax" gorm:"type:text"`
	AddrOrder     int         `json:"addrOrder" gorm:"not null;default:0"`
	AddrSuborder  int         `json:"addrSuborder" gorm:"not null;default:0"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
