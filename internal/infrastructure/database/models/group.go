package models

type Board struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Status      int    `json:"status" gorm:"not null;default:0"`
	Name        string `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
}

// Group rows with a non-nil BoardID are pinned snapshots. ParentID points at
// the next newer version in the chain.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:text;not null;index"`
	Description string `json:"description" gorm:"type:text"`
	FairID      *uint  `json:"fairId" gorm:"index"`
	Fair        *Fair  `json:"-" gorm:"constraint:OnDelete:SET NULL;"`
	BoardID     *uint  `json:"boardId" gorm:"index"`
	Board       *Board `json:"-" gorm:"constraint:OnDelete:RESTRICT;"`
	ParentID    *uint  `json:"parentId" gorm:"index"`
}

type Role struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ContactableID uint        `json:"contactableId" gorm:"index;not null"`
	Contactable   Contactable `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	GroupID       uint        `json:"groupId" gorm:"index;not null"`
	Group         Group       `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Role          string      `json:"role" gorm:"type:text"`
}
