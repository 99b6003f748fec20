package model

// Section 问卷内一段命名的连续条目区间，以起止条目标识。
// 区间边界由条目第一个问题的 order 解析，问卷内各区间不得重叠。
// swagger:model Section
type Section struct {
	UUIDBase
	StartItemID string `gorm:"type:varchar(36);index;not null" json:"startItemId"`
	EndItemID   string `gorm:"type:varchar(36);not null" json:"endItemId"`
	Title       string `gorm:"size:255" json:"title,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
