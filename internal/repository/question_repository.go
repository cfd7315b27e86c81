package repository

import (
	"quizbank_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// List 全量列表，附带出题人信息用于展示
func (r *QuestionRepository) List() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "name")
		}).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) BulkCreate(questions []model.Question) error {
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) DeleteByIDs(ids []uint) (int64, error) {
	result := r.DB.Delete(&model.Question{}, ids)
	return result.RowsAffected, result.Error
}
