package model

import "time"

// swagger:model Survey
type Survey struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatorID   string     `gorm:"type:varchar(36);index;not null" json:"creatorId"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Paused      bool       `gorm:"not null;default:false" json:"paused"`
	Anonymous   bool       `gorm:"not null;default:false" json:"anonymous"`
	Greeting    string     `gorm:"type:text" json:"greeting,omitempty"`
	Farewell    string     `gorm:"type:text" json:"farewell,omitempty"`

	Items []Item `gorm:"foreignKey:SurveyID" json:"items,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}
