package model

// swagger:model Creator
type Creator struct {
	UUIDBase
	Email    string `gorm:"size:320;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Phone    string `gorm:"size:18" json:"phone,omitempty"`

	Surveys      []Survey      `gorm:"foreignKey:CreatorID" json:"-"`
	Interviewees []Interviewee `gorm:"many2many:creators_interviewees" json:"-"`
}

func (Creator) TableName() string {
	return "creators"
}
