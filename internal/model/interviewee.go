package model

// swagger:model Interviewee
type Interviewee struct {
	UUIDBase
	Email     string `gorm:"size:320;index;not null" json:"email"`
	FirstName string `gorm:"size:63" json:"firstName,omitempty"`
	LastName  string `gorm:"size:63" json:"lastName,omitempty"`
}

func (Interviewee) TableName() string {
	return "interviewees"
}
