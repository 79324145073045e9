package service

import (
	"sort"
	"survey_tool_backend/internal/model"
)

// ComputeVisible 按 order 升序单趟解析可见问题集合。
// 无父问题的问题始终可见；有父问题但没有规则的问题永不可见；
// 其余问题在父问题的已提交答案命中任一触发选项时可见。
// 解析只看答案集合，不看父问题自身是否可见，也不做不动点迭代，
// 因此对同一输入是纯函数且幂等。
func ComputeVisible(survey *model.Survey, answers map[string]SubmitAnswerItem) map[string]struct{} {
	visible := make(map[string]struct{}, len(survey.Questions))

	for _, q := range sortQuestions(survey.Questions) {
		if q.IsRoot() {
			visible[q.ID] = struct{}{}
			continue
		}
		if !q.HasRule() {
			// 死分支：声明了父问题却没有显示规则
			continue
		}

		parentAnswer, ok := answers[q.Rule.ParentQuestionID]
		if !ok {
			continue
		}

		if intersects(parentAnswer.SelectedOptionIDs, q.Rule.VisibleWhenSelectedOptionIDs) {
			visible[q.ID] = struct{}{}
		}
	}
	return visible
}

// sortQuestions 返回按 order 升序的副本，Seq 保证相同 order 的稳定次序
func sortQuestions(questions []model.Question) []model.Question {
	sorted := make([]model.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Seq < sorted[j].Seq
	})
	return sorted
}

func intersects(selected []string, triggers model.StringList) bool {
	if len(selected) == 0 || len(triggers) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(triggers))
	for _, t := range triggers {
		set[t] = struct{}{}
	}
	for _, s := range selected {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
