package model

import "time"

// ScoreEntry 判题台账记录，一次提交对应一条，创建后不再修改或删除
// 没有 UpdatedAt/DeletedAt 字段：台账只有追加这一种写路径
// swagger:model ScoreEntry
type ScoreEntry struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	Score      int       `gorm:"not null" json:"score"` // 1=答对 0=答错
	CreatedAt  time.Time `json:"createdAt"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (ScoreEntry) TableName() string {
	return "score_entries"
}

// UserScoreRow 台账全量扫描时关联用户信息的一行，供排行榜聚合使用
type UserScoreRow struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}
