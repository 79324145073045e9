package database

import (
	"log"
	"survey_tool_backend/internal/model"

	"gorm.io/gorm"
)

// SeedDemoSurvey 数据库为空时插入示例问卷（CAP Index 兴趣调查）
func SeedDemoSurvey(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Survey{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	surveyID := model.GenerateUUID()

	q1ID := model.GenerateUUID()
	q1OptA := model.GenerateUUID()
	q1OptB := model.GenerateUUID()

	q6ID := model.GenerateUUID()
	q6Web := model.GenerateUUID()

	survey := &model.Survey{
		UUIDBase:    model.UUIDBase{ID: surveyID},
		Title:       "CAP Index Interest & Use Survey",
		Description: "Help us understand how you might use CAP Index crime risk intelligence across your organization.",
		Questions: []model.Question{
			{
				UUIDBase: model.UUIDBase{ID: q1ID},
				SurveyID: surveyID,
				Text:     "How familiar are you with CAP Index and CRIMECAST reports?",
				Type:     model.SingleChoice,
				Order:    1,
				Seq:      1,
				Options: []model.AnswerOption{
					{UUIDBase: model.UUIDBase{ID: q1OptA}, QuestionID: q1ID, Text: "Very familiar – active user", Weight: 4, Seq: 1},
					{UUIDBase: model.UUIDBase{ID: q1OptB}, QuestionID: q1ID, Text: "Heard of it – exploring", Weight: 2, Seq: 2},
				},
			},
			{
				SurveyID: surveyID,
				Text:     "Which CAP Index solutions interest you? (Select all)",
				Type:     model.MultipleChoice,
				Order:    2,
				Seq:      2,
				ParentQuestionID: q1ID,
				Rule: &model.VisibilityRule{
					ParentQuestionID: q1ID,
					VisibleWhenSelectedOptionIDs: model.StringList{q1OptA, q1OptB},
				},
				Options: []model.AnswerOption{
					{Text: "CRIMECAST® site-specific risk reports", Weight: 4, Seq: 1},
					{Text: "Risk data integrations for GIS/BI systems", Weight: 3, Seq: 2},
					{Text: "Custom analytics & benchmarking", Weight: 5, Seq: 3},
				},
			},
			{
				SurveyID: surveyID,
				Text:     "If you're evaluating CAP Index based on a peer recommendation, what stood out?",
				Type:     model.FreeText,
				Order:    3,
				Seq:      3,
				ParentQuestionID: q1ID,
				Rule: &model.VisibilityRule{
					ParentQuestionID: q1ID,
					VisibleWhenSelectedOptionIDs: model.StringList{q1OptB},
				},
			},
			{
				SurveyID: surveyID,
				Text:     "Where would you apply CAP Index risk intelligence first?",
				Type:     model.SingleChoice,
				Order:    4,
				Seq:      4,
				Options: []model.AnswerOption{
					{Text: "Physical security planning", Weight: 5, Seq: 1},
					{Text: "Real estate & site selection", Weight: 4, Seq: 2},
					{Text: "Loss prevention & operations", Weight: 3, Seq: 3},
				},
			},
			{
				SurveyID: surveyID,
				Text:     "Which industries best describe your footprint? (Select all)",
				Type:     model.MultipleChoice,
				Order:    5,
				Seq:      5,
				Options: []model.AnswerOption{
					{Text: "Retail / Restaurants", Weight: 4, Seq: 1},
					{Text: "Financial Services / Insurance", Weight: 4, Seq: 2},
					{Text: "Hospitals & Healthcare", Weight: 3, Seq: 3},
					{Text: "Logistics / Delivery & Utilities", Weight: 3, Seq: 4},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: q6ID},
				SurveyID: surveyID,
				Text:     "How would you prefer to access CAP Index data?",
				Type:     model.SingleChoice,
				Order:    6,
				Seq:      6,
				Options: []model.AnswerOption{
					{UUIDBase: model.UUIDBase{ID: q6Web}, QuestionID: q6ID, Text: "CRIMECAST web platform", Weight: 4, Seq: 1},
					{Text: "Data feed / API into GIS or BI", Weight: 5, Seq: 2},
					{Text: "Consulting engagement", Weight: 3, Seq: 3},
				},
			},
			{
				SurveyID: surveyID,
				Text:     "Describe one decision you'd like to make with objective, site-specific crime risk data",
				Type:     model.FreeText,
				Order:    7,
				Seq:      7,
			},
			{
				SurveyID: surveyID,
				Text:     "Which CRIMECAST report would you try first?",
				Type:     model.SingleChoice,
				Order:    8,
				Seq:      8,
				ParentQuestionID: q6ID,
				Rule: &model.VisibilityRule{
					ParentQuestionID: q6ID,
					VisibleWhenSelectedOptionIDs: model.StringList{q6Web},
				},
				Options: []model.AnswerOption{
					{Text: "Single-site risk score report", Weight: 3, Seq: 1},
					{Text: "Portfolio benchmarking dashboard", Weight: 4, Seq: 2},
					{Text: "Executive summary for stakeholders", Weight: 2, Seq: 3},
				},
			},
		},
	}

	if err := db.Create(survey).Error; err != nil {
		return err
	}

	log.Println("Seeded demo survey:", survey.Title)
	return nil
}
