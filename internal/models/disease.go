package models

import (
	"time"
)

// Disease is a single catalog entry. UserID is nullable at the schema
// level to tolerate legacy rows without an owner; every write path sets
// it from the authenticated session.
type Disease struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	UserID      *uint64    `gorm:"index" json:"user_id,omitempty"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Symptoms    string     `gorm:"type:varchar(255)" json:"symptoms"`
	Description string     `gorm:"type:text" json:"description"`
	Prevention  string     `gorm:"type:text" json:"prevention"`
	Cause       string     `gorm:"type:text" json:"cause"`
	Doctor      string     `gorm:"type:varchar(255)" json:"doctor"`
	Link        string     `gorm:"type:varchar(255)" json:"link"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Tags []Tag `gorm:"many2many:disease_tags" json:"tags"`
}
