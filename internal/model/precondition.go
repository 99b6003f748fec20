package model

// Precondition 条件跳转边：回答 item 时选中 expected_option，则下一个展示 next_item。
// swagger:model Precondition
type Precondition struct {
	UUIDBase
	ItemID           string `gorm:"type:varchar(36);index;not null" json:"itemId"`
	ExpectedOptionID string `gorm:"type:varchar(36);not null" json:"expectedOptionId"`
	NextItemID       string `gorm:"type:varchar(36);not null" json:"nextItemId"`
}

func (Precondition) TableName() string {
	return "preconditions"
}
