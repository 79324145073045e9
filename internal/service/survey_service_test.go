package service

import (
	"survey_tool_backend/internal/model"
	"survey_tool_backend/internal/util"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSurveyRepo struct {
	mock.Mock
	created *model.Survey
	updated *model.Survey
}

func (m *mockSurveyRepo) FindByID(id string) (*model.Survey, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*model.Survey), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSurveyRepo) List(page, limit int) ([]model.Survey, int64, error) {
	args := m.Called(page, limit)
	if s := args.Get(0); s != nil {
		return s.([]model.Survey), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockSurveyRepo) Create(survey *model.Survey) error {
	m.created = survey
	args := m.Called(survey)
	return args.Error(0)
}

func (m *mockSurveyRepo) Update(survey *model.Survey) error {
	m.updated = survey
	args := m.Called(survey)
	return args.Error(0)
}

func (m *mockSurveyRepo) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func upsertFixture() UpsertSurveyRequest {
	return UpsertSurveyRequest{
		Title: "onboarding survey",
		Questions: []QuestionUpsert{
			{
				ID:    "c1",
				Text:  "pick one",
				Type:  model.SingleChoice,
				Order: 1,
				Options: []AnswerOptionUpsert{
					{ID: "o1", Text: "first", Weight: 3},
					{ID: "o2", Text: "second", Weight: 1},
				},
			},
			{
				ID:                           "c2",
				Text:                         "follow-up",
				Type:                         model.FreeText,
				Order:                        2,
				ParentQuestionID:             "c1",
				VisibleWhenSelectedOptionIDs: []string{"o1"},
			},
		},
	}
}

func TestCreateSurveyRemapsRuleReferences(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("Create", mock.Anything).Return(nil)
	svc := NewSurveyService(repo)

	id, err := svc.Create(upsertFixture())

	assert.NoError(t, err)
	assert.True(t, isUUID(id))

	survey := repo.created
	assert.Equal(t, id, survey.ID)
	assert.Len(t, survey.Questions, 2)

	q1, q2 := survey.Questions[0], survey.Questions[1]
	// 客户端占位符全部换成新 UUID
	assert.True(t, isUUID(q1.ID))
	assert.True(t, isUUID(q1.Options[0].ID))
	assert.True(t, isUUID(q2.ID))

	// 规则引用跟随重映射
	assert.Equal(t, q1.ID, q2.ParentQuestionID)
	assert.Equal(t, q1.ID, q2.Rule.ParentQuestionID)
	assert.Equal(t, model.StringList{q1.Options[0].ID}, q2.Rule.VisibleWhenSelectedOptionIDs)
}

func TestCreateSurveySortsQuestionsByOrder(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("Create", mock.Anything).Return(nil)
	svc := NewSurveyService(repo)

	req := UpsertSurveyRequest{
		Title: "out of order",
		Questions: []QuestionUpsert{
			{Text: "third", Type: model.FreeText, Order: 3},
			{Text: "first", Type: model.FreeText, Order: 1},
			{Text: "second", Type: model.FreeText, Order: 2},
		},
	}

	_, err := svc.Create(req)

	assert.NoError(t, err)
	assert.Equal(t, "first", repo.created.Questions[0].Text)
	assert.Equal(t, "second", repo.created.Questions[1].Text)
	assert.Equal(t, "third", repo.created.Questions[2].Text)
	assert.Equal(t, 1, repo.created.Questions[0].Seq)
	assert.Equal(t, 3, repo.created.Questions[2].Seq)
}

func TestCreateSurveyValidatesQuestionType(t *testing.T) {
	svc := NewSurveyService(new(mockSurveyRepo))

	_, err := svc.Create(UpsertSurveyRequest{
		Title: "bad type",
		Questions: []QuestionUpsert{
			{Text: "q", Type: "dropdown"},
		},
	})

	assert.True(t, util.IsValidation(err))
}

func TestCreateSurveyRequiresChoiceOptions(t *testing.T) {
	svc := NewSurveyService(new(mockSurveyRepo))

	_, err := svc.Create(UpsertSurveyRequest{
		Title: "no options",
		Questions: []QuestionUpsert{
			{Text: "q", Type: model.SingleChoice},
		},
	})

	assert.EqualError(t, err, "Choice questions must have at least one option")
}

func TestCreateSurveyKeepsUnmappedRuleReferences(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("Create", mock.Anything).Return(nil)
	svc := NewSurveyService(repo)

	// 引用了请求里不存在的父问题：保留原样，规则永不触发
	_, err := svc.Create(UpsertSurveyRequest{
		Title: "orphan rule",
		Questions: []QuestionUpsert{
			{
				Text:                         "q",
				Type:                         model.FreeText,
				ParentQuestionID:             "ghost",
				VisibleWhenSelectedOptionIDs: []string{"ghost-opt"},
			},
		},
	})

	assert.NoError(t, err)
	q := repo.created.Questions[0]
	assert.Equal(t, "ghost", q.ParentQuestionID)
	assert.Equal(t, model.StringList{"ghost-opt"}, q.Rule.VisibleWhenSelectedOptionIDs)
}

func TestUpdateSurveyKeepsSurveyID(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("FindByID", "s1").Return(&model.Survey{UUIDBase: model.UUIDBase{ID: "s1"}}, nil)
	repo.On("Update", mock.Anything).Return(nil)
	svc := NewSurveyService(repo)

	err := svc.Update("s1", upsertFixture())

	assert.NoError(t, err)
	assert.Equal(t, "s1", repo.updated.ID)
	assert.True(t, isUUID(repo.updated.Questions[0].ID))
}

func TestUpdateSurveyNotFound(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("FindByID", "missing").Return(nil, nil)
	svc := NewSurveyService(repo)

	err := svc.Update("missing", upsertFixture())

	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestDeleteSurveyNotFound(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("Delete", "missing").Return(false, nil)
	svc := NewSurveyService(repo)

	err := svc.Delete("missing")

	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestGetSurveyNotFound(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("FindByID", "missing").Return(nil, nil)
	svc := NewSurveyService(repo)

	_, err := svc.Get("missing")

	assert.ErrorIs(t, err, util.ErrSurveyNotFound)
}

func TestListSurveysMapsSummaries(t *testing.T) {
	repo := new(mockSurveyRepo)
	repo.On("List", 1, 20).Return([]model.Survey{
		{UUIDBase: model.UUIDBase{ID: "s1"}, Title: "one"},
		{UUIDBase: model.UUIDBase{ID: "s2"}, Title: "two"},
	}, int64(2), nil)
	svc := NewSurveyService(repo)

	summaries, total, err := svc.List(1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []SurveySummary{{ID: "s1", Title: "one"}, {ID: "s2", Title: "two"}}, summaries)
}
