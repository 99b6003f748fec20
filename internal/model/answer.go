package model

// Answer 一次提交中对单个问题的回答。
// 三个载荷字段按条目类型家族恰好填充一个；数值 0 是合法取值，因此使用指针区分缺省。
// swagger:model Answer
type Answer struct {
	UUIDBase
	QuestionID       string  `gorm:"type:varchar(36);index;not null" json:"questionId"`
	SubmissionID     string  `gorm:"type:varchar(36);index;not null" json:"submissionId"`
	OptionID         *string `gorm:"type:varchar(36)" json:"optionId,omitempty"`
	ContentNumeric   *int    `json:"contentNumeric,omitempty"`
	ContentCharacter *string `gorm:"type:text" json:"contentCharacter,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
