package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	FreeText       QuestionType = "free_text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, FreeText:
		return true
	}
	return false
}

// StringList 以 JSON 存储的字符串数组列
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

// swagger:model
type Survey struct {
	UUIDBase
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Questions   []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions"`
}

// swagger:model
type Question struct {
	UUIDBase
	SurveyID string       `gorm:"type:varchar(36);index;not null" json:"surveyId"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	Type     QuestionType `gorm:"type:varchar(20);not null" json:"type"`
	Order    int          `json:"order"`
	Seq      int          `json:"seq"` // 同 Order 值时保持创建顺序

	// ParentQuestionID 非空表示条件问题；没有对应 Rule 时该问题永不可见
	ParentQuestionID string          `gorm:"type:varchar(36)" json:"parentQuestionId,omitempty"`
	Rule             *VisibilityRule `gorm:"embedded;embeddedPrefix:rule_" json:"visibilityRule,omitempty"`

	Options []AnswerOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
}

// IsRoot 无父问题，始终可见
func (q *Question) IsRoot() bool {
	return q.ParentQuestionID == ""
}

// HasRule 判断问题是否带有可见性规则。
// gorm 加载嵌入指针时可能返回零值结构体，因此不能只判 nil。
func (q *Question) HasRule() bool {
	return q.Rule != nil && q.Rule.ParentQuestionID != ""
}

// VisibilityRule 条件显示规则：父问题选中任一触发选项时问题可见
type VisibilityRule struct {
	ParentQuestionID             string     `gorm:"type:varchar(36)" json:"parentQuestionId"`
	VisibleWhenSelectedOptionIDs StringList `gorm:"type:json" json:"visibleWhenSelectedOptionIds"`
}

// swagger:model
type AnswerOption struct {
	UUIDBase
	QuestionID string `gorm:"type:varchar(36);index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Weight     int    `json:"weight"`
	Seq        int    `json:"seq"`
}
