package model

import "time"

// Submission 一位受访者对一份问卷的一次作答，(survey, interviewee) 唯一。
// 匿名问卷的提交不关联受访者。
// swagger:model Submission
type Submission struct {
	UUIDBase
	SurveyID      string    `gorm:"type:varchar(36);index;not null" json:"surveyId"`
	IntervieweeID *string   `gorm:"type:varchar(36);index" json:"intervieweeId,omitempty"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "survey_submissions"
}
