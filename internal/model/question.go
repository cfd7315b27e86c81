package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionType 题型枚举，与题库导入格式保持一致
type QuestionType string

const (
	SingleChoice   QuestionType = "single"
	MultipleChoice QuestionType = "multiple"
	TrueFalse      QuestionType = "true-false"
	FillBlank      QuestionType = "fill"
	Essay          QuestionType = "essay"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// StringList JSON列上的字符串数组
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Question 题目记录
// 选择题的 Answer 为选项内容；多选题为逗号分隔的选项集合
// swagger:model Question
type Question struct {
	BaseModel
	Type         QuestionType `gorm:"size:20;not null;index" json:"type"`
	Content      string       `gorm:"type:text;not null" json:"question"`
	Images       StringList   `gorm:"type:json" json:"images"`
	Options      StringList   `gorm:"type:json" json:"options"`
	OptionImages StringList   `gorm:"type:json" json:"optionImages"`
	Answer       string       `gorm:"type:text;not null" json:"answer"`
	Explanation  string       `gorm:"type:text" json:"explanation"`
	Difficulty   Difficulty   `gorm:"size:10;default:'medium'" json:"difficulty"`
	Tags         StringList   `gorm:"type:json" json:"tags"`
	CreatedByID  uint         `gorm:"index" json:"createdById"`
	CreatedBy    *User        `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
