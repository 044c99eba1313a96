package models

// Tag labels diseases for filtering. Names are unique per owner, not
// globally; the composite index backs the get-or-create resolver.
type Tag struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	Name   string `gorm:"type:varchar(255);not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID uint64 `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"-"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Diseases []Disease `gorm:"many2many:disease_tags" json:"-"`
}
