package model

type Group struct {
	BaseModel
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"size:150" json:"description,omitempty"`
	OwnerID     string `gorm:"index;size:128" json:"-"`
}
