package model

// Question 条目内的一个具体问题，携带问卷内全局唯一且连续的 order。
// swagger:model Question
type Question struct {
	UUIDBase
	ItemID string `gorm:"type:varchar(36);index;not null" json:"itemId"`
	Order  int    `gorm:"column:order;not null" json:"order"`
	Value  string `gorm:"type:text;not null" json:"value"`
}

func (Question) TableName() string {
	return "questions"
}
