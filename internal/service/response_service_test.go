package service

import (
	"errors"
	"survey_tool_backend/internal/model"
	"survey_tool_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSurveyStore struct {
	mock.Mock
}

func (m *mockSurveyStore) FindByID(id string) (*model.Survey, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*model.Survey), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResponseStore struct {
	mock.Mock
	saved *model.SurveyResponse
}

func (m *mockResponseStore) Create(response *model.SurveyResponse) error {
	m.saved = response
	args := m.Called(response)
	return args.Error(0)
}

func (m *mockResponseStore) FindByID(surveyID, responseID string) (*model.SurveyResponse, error) {
	args := m.Called(surveyID, responseID)
	if r := args.Get(0); r != nil {
		return r.(*model.SurveyResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResponseStore) ListBySurvey(surveyID string, page, limit int) ([]model.SurveyResponse, int64, error) {
	args := m.Called(surveyID, page, limit)
	if r := args.Get(0); r != nil {
		return r.([]model.SurveyResponse), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func question(id string, qType model.QuestionType, order int, options ...model.AnswerOption) model.Question {
	return model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Text:     "question " + id,
		Type:     qType,
		Order:    order,
		Seq:      order,
		Options:  options,
	}
}

func option(id string, weight int) model.AnswerOption {
	return model.AnswerOption{
		UUIDBase: model.UUIDBase{ID: id},
		Text:     "option " + id,
		Weight:   weight,
	}
}

// Q1 单选 A=3 B=1；Q2 多选，父问题 Q1，触发选项 [A]，X=2 Y=4
func branchingSurvey() *model.Survey {
	q1 := question("q1", model.SingleChoice, 1, option("optA", 3), option("optB", 1))
	q2 := question("q2", model.MultipleChoice, 2, option("optX", 2), option("optY", 4))
	q2.ParentQuestionID = "q1"
	q2.Rule = &model.VisibilityRule{
		ParentQuestionID:             "q1",
		VisibleWhenSelectedOptionIDs: model.StringList{"optA"},
	}

	return &model.Survey{
		UUIDBase:  model.UUIDBase{ID: "s1"},
		Title:     "branching survey",
		Questions: []model.Question{q1, q2},
	}
}

func newResponseService(survey *model.Survey) (*ResponseService, *mockResponseStore) {
	surveys := new(mockSurveyStore)
	surveys.On("FindByID", mock.Anything).Return(survey, nil)

	responses := new(mockResponseStore)
	responses.On("Create", mock.Anything).Return(nil)

	return NewResponseService(surveys, responses), responses
}

func TestSubmitScoresBranchingSurvey(t *testing.T) {
	svc, responses := newResponseService(branchingSurvey())

	result, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA"}},
			{QuestionID: "q2", SelectedOptionIDs: []string{"optX", "optY"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 9, result.TotalScore)
	assert.NotEmpty(t, result.ResponseID)

	assert.Equal(t, "s1", responses.saved.SurveyID)
	assert.Equal(t, 9, responses.saved.TotalScore)
	assert.Len(t, responses.saved.Items, 2)
	assert.Equal(t, "q1", responses.saved.Items[0].QuestionID)
	assert.Equal(t, 3, responses.saved.Items[0].Score)
	assert.Equal(t, "q2", responses.saved.Items[1].QuestionID)
	assert.Equal(t, 6, responses.saved.Items[1].Score)
}

func TestSubmitRejectsAnswerForHiddenQuestion(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	// optB 不触发 q2 的显示规则
	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optB"}},
			{QuestionID: "q2", SelectedOptionIDs: []string{"optX"}},
		},
	})

	assert.EqualError(t, err, "Answer provided for hidden question")
	assert.True(t, util.IsValidation(err))
}

func TestSubmitRejectsUnansweredParent(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q2", SelectedOptionIDs: []string{"optX"}},
		},
	})

	assert.EqualError(t, err, "Answer provided for hidden question")
}

func TestSubmitSurveyNotFound(t *testing.T) {
	surveys := new(mockSurveyStore)
	surveys.On("FindByID", "missing").Return(nil, nil)
	svc := NewResponseService(surveys, new(mockResponseStore))

	_, err := svc.Submit("missing", SubmitResponseRequest{})

	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestSubmitEmptyAnswersSucceedsWithZeroScore(t *testing.T) {
	svc, responses := newResponseService(branchingSurvey())

	result, err := svc.Submit("s1", SubmitResponseRequest{Answers: []SubmitAnswerItem{}})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalScore)
	assert.Empty(t, responses.saved.Items)
}

func TestSubmitRejectsUnknownQuestion(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "nope", SelectedOptionIDs: []string{"optA"}},
		},
	})

	assert.EqualError(t, err, "Answer references unknown question")
}

func TestSubmitRejectsUnknownOption(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"not-an-option"}},
		},
	})

	assert.EqualError(t, err, "Answer references unknown option")
}

func TestSubmitSingleChoiceCardinality(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA", "optB"}},
		},
	})
	assert.EqualError(t, err, "SingleChoice requires exactly one selected option")

	_, err = svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{}},
		},
	})
	assert.EqualError(t, err, "Choice question requires selected options")
}

func TestSubmitFreeTextScoresZeroAndRejectsOptions(t *testing.T) {
	survey := branchingSurvey()
	survey.Questions = append(survey.Questions, question("q3", model.FreeText, 3))
	svc, responses := newResponseService(survey)

	result, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA"}},
			{QuestionID: "q3", FreeText: "long form feedback"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalScore)
	assert.Len(t, responses.saved.Items, 2)
	assert.Equal(t, 0, responses.saved.Items[1].Score)
	assert.Equal(t, "long form feedback", responses.saved.Items[1].FreeText)

	_, err = svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q3", SelectedOptionIDs: []string{"optA"}},
		},
	})
	assert.EqualError(t, err, "FreeText question cannot contain selected options")
}

func TestSubmitVisibleUnansweredQuestionProducesNoItem(t *testing.T) {
	svc, responses := newResponseService(branchingSurvey())

	result, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalScore)
	assert.Len(t, responses.saved.Items, 1)
}

func TestSubmitDuplicateAnswersLastWins(t *testing.T) {
	svc, _ := newResponseService(branchingSurvey())

	result, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optB"}},
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA"}},
			{QuestionID: "q2", SelectedOptionIDs: []string{"optX"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, result.TotalScore)
}

func TestSubmitPersistFailurePropagates(t *testing.T) {
	surveys := new(mockSurveyStore)
	surveys.On("FindByID", "s1").Return(branchingSurvey(), nil)
	responses := new(mockResponseStore)
	responses.On("Create", mock.Anything).Return(errors.New("db down"))
	svc := NewResponseService(surveys, responses)

	_, err := svc.Submit("s1", SubmitResponseRequest{
		Answers: []SubmitAnswerItem{
			{QuestionID: "q1", SelectedOptionIDs: []string{"optA"}},
		},
	})

	assert.EqualError(t, err, "db down")
}

func TestGetResponseNotFound(t *testing.T) {
	surveys := new(mockSurveyStore)
	responses := new(mockResponseStore)
	responses.On("FindByID", "s1", "r404").Return(nil, nil)
	svc := NewResponseService(surveys, responses)

	_, err := svc.GetResponse("s1", "r404")

	assert.ErrorIs(t, err, util.ErrResponseNotFound)
}

func TestListResponsesRequiresExistingSurvey(t *testing.T) {
	surveys := new(mockSurveyStore)
	surveys.On("FindByID", "missing").Return(nil, nil)
	svc := NewResponseService(surveys, new(mockResponseStore))

	_, _, err := svc.ListResponses("missing", 1, 20)

	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}
