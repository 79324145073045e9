package service

import (
	"survey_tool_backend/internal/model"
	"survey_tool_backend/internal/util"
	"time"
)

// SurveyStore 提交流程只需要按 ID 读取完整问卷快照
type SurveyStore interface {
	FindByID(id string) (*model.Survey, error)
}

// ResponseStore 回答持久化，Create 必须整体写入（回答 + 条目）
type ResponseStore interface {
	Create(response *model.SurveyResponse) error
	FindByID(surveyID, responseID string) (*model.SurveyResponse, error)
	ListBySurvey(surveyID string, page, limit int) ([]model.SurveyResponse, int64, error)
}

type ResponseService struct {
	Surveys   SurveyStore
	Responses ResponseStore
}

func NewResponseService(surveys SurveyStore, responses ResponseStore) *ResponseService {
	return &ResponseService{Surveys: surveys, Responses: responses}
}

type SubmitAnswerItem struct {
	QuestionID        string   `json:"questionId" binding:"required"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
	FreeText          string   `json:"freeText"`
}

type SubmitResponseRequest struct {
	Answers []SubmitAnswerItem `json:"answers"`
}

type SubmitResponseResult struct {
	ResponseID string `json:"responseId"`
	TotalScore int    `json:"totalScore"`
}

// Submit 校验并计分一次问卷提交。
// 流程固定：取问卷 → 未知问题检查 → 可见性解析 → 可见性检查 →
// 分题型校验 → 按 order 计分 → 整体落库。任一校验失败立即返回，
// 不汇总多个错误。
func (s *ResponseService) Submit(surveyID string, req SubmitResponseRequest) (*SubmitResponseResult, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, util.ErrSurveyNotFound
	}

	questionByID := make(map[string]*model.Question, len(survey.Questions))
	for i := range survey.Questions {
		questionByID[survey.Questions[i].ID] = &survey.Questions[i]
	}

	// 同一问题出现多个答案时后者覆盖前者
	answersByQuestion := make(map[string]SubmitAnswerItem, len(req.Answers))
	for _, ans := range req.Answers {
		answersByQuestion[ans.QuestionID] = ans
	}

	for _, ans := range req.Answers {
		if _, ok := questionByID[ans.QuestionID]; !ok {
			return nil, util.NewValidationError("Answer references unknown question")
		}
	}

	visible := ComputeVisible(survey, answersByQuestion)

	for _, ans := range req.Answers {
		if _, ok := visible[ans.QuestionID]; !ok {
			return nil, util.NewValidationError("Answer provided for hidden question")
		}
		if err := validateAnswerForType(questionByID[ans.QuestionID], ans); err != nil {
			return nil, err
		}
	}

	response := &model.SurveyResponse{
		UUIDBase:    model.UUIDBase{ID: model.GenerateUUID()},
		SurveyID:    surveyID,
		SubmittedAt: time.Now().UTC(),
		Items:       []model.ResponseItem{},
	}

	total := 0
	for _, q := range sortQuestions(survey.Questions) {
		if _, ok := visible[q.ID]; !ok {
			continue
		}
		ans, ok := answersByQuestion[q.ID]
		if !ok {
			// 可见但未作答的问题不产生条目
			continue
		}

		itemScore := scoreAnswer(&q, ans)
		total += itemScore

		selected := ans.SelectedOptionIDs
		if selected == nil {
			selected = []string{}
		}
		response.Items = append(response.Items, model.ResponseItem{
			UUIDBase:          model.UUIDBase{ID: model.GenerateUUID()},
			ResponseID:        response.ID,
			QuestionID:        q.ID,
			SelectedOptionIDs: model.StringList(selected),
			FreeText:          ans.FreeText,
			Score:             itemScore,
		})
	}

	response.TotalScore = total
	if err := s.Responses.Create(response); err != nil {
		return nil, err
	}

	return &SubmitResponseResult{ResponseID: response.ID, TotalScore: total}, nil
}

func (s *ResponseService) GetResponse(surveyID, responseID string) (*model.SurveyResponse, error) {
	response, err := s.Responses.FindByID(surveyID, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, util.ErrResponseNotFound
	}
	return response, nil
}

func (s *ResponseService) ListResponses(surveyID string, page, limit int) ([]model.SurveyResponse, int64, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, 0, err
	}
	if survey == nil {
		return nil, 0, util.ErrSurveyNotFound
	}
	return s.Responses.ListBySurvey(surveyID, page, limit)
}

func validateAnswerForType(q *model.Question, ans SubmitAnswerItem) error {
	if q.Type == model.FreeText {
		if len(ans.SelectedOptionIDs) > 0 {
			return util.NewValidationError("FreeText question cannot contain selected options")
		}
		return nil
	}

	if len(ans.SelectedOptionIDs) == 0 {
		return util.NewValidationError("Choice question requires selected options")
	}

	optionIDs := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		optionIDs[opt.ID] = struct{}{}
	}
	for _, id := range ans.SelectedOptionIDs {
		if _, ok := optionIDs[id]; !ok {
			return util.NewValidationError("Answer references unknown option")
		}
	}

	if q.Type == model.SingleChoice && len(ans.SelectedOptionIDs) != 1 {
		return util.NewValidationError("SingleChoice requires exactly one selected option")
	}
	return nil
}

func scoreAnswer(q *model.Question, ans SubmitAnswerItem) int {
	switch q.Type {
	case model.FreeText:
		return 0
	case model.SingleChoice:
		for _, opt := range q.Options {
			if opt.ID == ans.SelectedOptionIDs[0] {
				return opt.Weight
			}
		}
		return 0
	case model.MultipleChoice:
		score := 0
		for _, id := range ans.SelectedOptionIDs {
			for _, opt := range q.Options {
				if opt.ID == id {
					score += opt.Weight
					break
				}
			}
		}
		return score
	}
	return 0
}
