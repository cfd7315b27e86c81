package repository

import (
	"quizbank_backend/internal/model"

	"gorm.io/gorm"
)

// ScoreRepository 判题台账的持久化层。台账只追加：
// 这里只有单行INSERT和只读扫描，不存在整段读出再写回的路径，
// 同一用户并发提交不会互相覆盖
type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Append(entry *model.ScoreEntry) error {
	return r.DB.Create(entry).Error
}

// FindByUser 按插入顺序返回某用户的全部台账记录，附带题目详情
func (r *ScoreRepository) FindByUser(userID uint) ([]model.ScoreEntry, error) {
	var entries []model.ScoreEntry
	err := r.DB.
		Where("user_id = ?", userID).
		Preload("Question").
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// ScanAll 台账全量扫描，关联用户名供排行榜聚合
func (r *ScoreRepository) ScanAll() ([]model.UserScoreRow, error) {
	var rows []model.UserScoreRow
	err := r.DB.Model(&model.ScoreEntry{}).
		Select("score_entries.user_id AS user_id, users.username AS username, users.name AS name, score_entries.score AS score").
		Joins("JOIN users ON users.id = score_entries.user_id").
		Order("score_entries.id ASC").
		Scan(&rows).Error
	return rows, err
}
