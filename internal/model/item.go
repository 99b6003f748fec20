package model

// Item 一个问卷条目。网格类条目包含多个子问题，普通条目恰好一个。
// 条目在问卷中的位置由其第一个问题的 order 推导，不单独存储。
// swagger:model Item
type Item struct {
	UUIDBase
	SurveyID string     `gorm:"type:varchar(36);index;not null" json:"surveyId"`
	Type     AnswerType `gorm:"type:smallint;not null" json:"type"`
	Required bool       `gorm:"not null;default:false" json:"required"`

	Questions []Question `gorm:"foreignKey:ItemID" json:"questions,omitempty"`
	Options   []Option   `gorm:"foreignKey:ItemID" json:"options,omitempty"`
}

func (Item) TableName() string {
	return "items"
}
