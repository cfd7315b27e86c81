package service

import (
	"sort"
	"strings"

	"quizbank_backend/internal/model"
	"quizbank_backend/internal/util"
)

// answerKey 每种题型一种比较规则，构造后只做纯比较
type answerKey interface {
	Matches(submitted string) bool
}

// exactKey 单选/判断：严格相等，大小写敏感，不做trim，
// 需要归一化的调用方自行处理
type exactKey string

func (k exactKey) Matches(submitted string) bool {
	return string(k) == submitted
}

// tokenSetKey 多选：逗号分隔的选项集合，排序后整体比较。
// 注意不去重："A,A" 与 "A" 不匹配
type tokenSetKey string

func (k tokenSetKey) Matches(submitted string) bool {
	return sortTokens(string(k)) == sortTokens(submitted)
}

func sortTokens(s string) string {
	tokens := strings.Split(s, ",")
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}

// containsKey 填空/问答：提交内容包含标准答案即判对。
// 有意放宽的包含匹配，夹带多余文字也能通过，属已知限制
type containsKey string

func (k containsKey) Matches(submitted string) bool {
	return strings.Contains(submitted, string(k))
}

func answerKeyFor(t model.QuestionType, canonical string) (answerKey, error) {
	switch t {
	case model.SingleChoice, model.TrueFalse:
		return exactKey(canonical), nil
	case model.MultipleChoice:
		return tokenSetKey(canonical), nil
	case model.FillBlank, model.Essay:
		return containsKey(canonical), nil
	default:
		return nil, util.ErrUnrecognizedQuestionType
	}
}

// EvaluateAnswer 判题入口。纯函数，无副作用。
// 题型不在枚举范围内时返回错误，而不是默默判错，
// 否则 type 字段被写坏的题目会永远判错且没有任何信号
func EvaluateAnswer(t model.QuestionType, canonical, submitted string) (bool, error) {
	key, err := answerKeyFor(t, canonical)
	if err != nil {
		return false, err
	}
	return key.Matches(submitted), nil
}
