package model

// swagger:model Option
type Option struct {
	UUIDBase
	ItemID  string `gorm:"type:varchar(36);index;not null" json:"itemId"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (Option) TableName() string {
	return "options"
}
