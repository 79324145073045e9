package model

import "time"

// swagger:model
type SurveyResponse struct {
	UUIDBase
	SurveyID    string         `gorm:"type:varchar(36);index;not null" json:"surveyId"`
	SubmittedAt time.Time      `json:"submittedAt"`
	TotalScore  int            `json:"totalScore"`
	Items       []ResponseItem `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"items"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// swagger:model
type ResponseItem struct {
	UUIDBase
	ResponseID        string     `gorm:"type:varchar(36);index;not null" json:"responseId"`
	QuestionID        string     `gorm:"type:varchar(36);not null" json:"questionId"`
	FreeText          string     `gorm:"type:text" json:"freeText,omitempty"`
	SelectedOptionIDs StringList `gorm:"type:json" json:"selectedOptionIds,omitempty"`
	Score             int        `json:"score"`
}
