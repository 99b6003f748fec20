package model

import "time"

// SurveySent 发送记录。主键即匿名访问令牌：sha256(survey_id, email)，
// 相同输入得到相同令牌，重复发送会命中唯一约束而不会产生第二行。
// swagger:model SurveySent
type SurveySent struct {
	ID       string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	SurveyID string    `gorm:"type:varchar(36);index;not null;uniqueIndex:idx_sent_survey_email" json:"surveyId"`
	Email    string    `gorm:"size:320;not null;uniqueIndex:idx_sent_survey_email" json:"email"`
	SentAt   time.Time `gorm:"autoCreateTime" json:"sentAt"`
}

func (SurveySent) TableName() string {
	return "survey_sent"
}
