package service

import (
	"fmt"
	"sort"
	"survey_tool_backend/internal/model"
	"survey_tool_backend/internal/util"
)

// SurveyRepository 问卷 CRUD 存储
type SurveyRepository interface {
	FindByID(id string) (*model.Survey, error)
	List(page, limit int) ([]model.Survey, int64, error)
	Create(survey *model.Survey) error
	Update(survey *model.Survey) error
	Delete(id string) (bool, error)
}

type SurveyService struct {
	Repo SurveyRepository
}

func NewSurveyService(repo SurveyRepository) *SurveyService {
	return &SurveyService{Repo: repo}
}

// AnswerOptionUpsert 的 ID 是客户端侧占位符，仅用于同一请求内
// 可见性规则的引用，落库时统一换成新生成的 UUID
type AnswerOptionUpsert struct {
	ID     string `json:"id"`
	Text   string `json:"text" binding:"required"`
	Weight int    `json:"weight"`
}

type QuestionUpsert struct {
	ID                           string               `json:"id"`
	Text                         string               `json:"text" binding:"required"`
	Type                         model.QuestionType   `json:"type" binding:"required"`
	Order                        int                  `json:"order"`
	ParentQuestionID             string               `json:"parentQuestionId"`
	VisibleWhenSelectedOptionIDs []string             `json:"visibleWhenSelectedOptionIds"`
	Options                      []AnswerOptionUpsert `json:"options"`
}

type UpsertSurveyRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Questions   []QuestionUpsert `json:"questions"`
}

type SurveySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *SurveyService) Create(req UpsertSurveyRequest) (string, error) {
	if err := validateUpsert(req); err != nil {
		return "", err
	}

	survey := buildSurvey(model.GenerateUUID(), req)
	if err := s.Repo.Create(survey); err != nil {
		return "", err
	}
	return survey.ID, nil
}

func (s *SurveyService) Get(id string) (*model.Survey, error) {
	survey, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, util.ErrSurveyNotFound
	}
	return survey, nil
}

func (s *SurveyService) List(page, limit int) ([]SurveySummary, int64, error) {
	surveys, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]SurveySummary, len(surveys))
	for i, survey := range surveys {
		summaries[i] = SurveySummary{ID: survey.ID, Title: survey.Title}
	}
	return summaries, total, nil
}

// Update 以删除并重建的方式替换问卷内容。问卷 ID 不变，
// 问题和选项全部拿到新 UUID，规则引用按占位符映射重写。
func (s *SurveyService) Update(id string, req UpsertSurveyRequest) error {
	if err := validateUpsert(req); err != nil {
		return err
	}

	existing, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return util.ErrSurveyNotFound
	}

	survey := buildSurvey(id, req)
	return s.Repo.Update(survey)
}

func (s *SurveyService) Delete(id string) error {
	deleted, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrSurveyNotFound
	}
	return nil
}

func validateUpsert(req UpsertSurveyRequest) error {
	for _, q := range req.Questions {
		if !q.Type.Valid() {
			return util.NewValidationError(fmt.Sprintf("Question type must be one of %s, %s, %s",
				model.SingleChoice, model.MultipleChoice, model.FreeText))
		}
		if q.Type != model.FreeText && len(q.Options) == 0 {
			return util.NewValidationError("Choice questions must have at least one option")
		}
	}
	return nil
}

// buildSurvey 把 upsert 请求物化为带新 UUID 的实体树。
// 先为所有问题和选项生成新 ID，再把 ParentQuestionID 和触发选项
// 里的客户端占位符重写成新 ID；映射不到的引用原样保留，
// 这样的规则永远不会触发，但不视为错误。
func buildSurvey(surveyID string, req UpsertSurveyRequest) *model.Survey {
	newQuestionIDs := make([]string, len(req.Questions))
	newOptionIDs := make([][]string, len(req.Questions))
	questionIDMap := make(map[string]string, len(req.Questions))
	optionIDMap := make(map[string]string)

	for i, q := range req.Questions {
		newQuestionIDs[i] = model.GenerateUUID()
		if q.ID != "" {
			questionIDMap[q.ID] = newQuestionIDs[i]
		}
		newOptionIDs[i] = make([]string, len(q.Options))
		for j, opt := range q.Options {
			newOptionIDs[i][j] = model.GenerateUUID()
			if opt.ID != "" {
				optionIDMap[opt.ID] = newOptionIDs[i][j]
			}
		}
	}

	remapQuestion := func(id string) string {
		if mapped, ok := questionIDMap[id]; ok {
			return mapped
		}
		return id
	}
	remapOption := func(id string) string {
		if mapped, ok := optionIDMap[id]; ok {
			return mapped
		}
		return id
	}

	// 按 order 升序落库，Seq 记录落库次序
	indices := make([]int, len(req.Questions))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return req.Questions[indices[a]].Order < req.Questions[indices[b]].Order
	})

	survey := &model.Survey{
		UUIDBase:    model.UUIDBase{ID: surveyID},
		Title:       req.Title,
		Description: req.Description,
	}

	for seq, i := range indices {
		q := req.Questions[i]
		questionID := newQuestionIDs[i]

		question := model.Question{
			UUIDBase: model.UUIDBase{ID: questionID},
			SurveyID: surveyID,
			Text:     q.Text,
			Type:     q.Type,
			Order:    q.Order,
			Seq:      seq + 1,
		}

		if q.ParentQuestionID != "" {
			question.ParentQuestionID = remapQuestion(q.ParentQuestionID)
			if q.VisibleWhenSelectedOptionIDs != nil {
				triggers := make(model.StringList, len(q.VisibleWhenSelectedOptionIDs))
				for k, optID := range q.VisibleWhenSelectedOptionIDs {
					triggers[k] = remapOption(optID)
				}
				question.Rule = &model.VisibilityRule{
					ParentQuestionID:             question.ParentQuestionID,
					VisibleWhenSelectedOptionIDs: triggers,
				}
			}
		}

		for j, opt := range q.Options {
			question.Options = append(question.Options, model.AnswerOption{
				UUIDBase:   model.UUIDBase{ID: newOptionIDs[i][j]},
				QuestionID: questionID,
				Text:       opt.Text,
				Weight:     opt.Weight,
				Seq:        j + 1,
			})
		}

		survey.Questions = append(survey.Questions, question)
	}

	return survey
}
