package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizbank_backend/internal/model"
	"quizbank_backend/internal/util"
	"quizbank_backend/pkg/logger"
	"quizbank_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionStore 题目持久化接口，由 repository.QuestionRepository 实现
type QuestionStore interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
	List() ([]model.Question, error)
	BulkCreate(questions []model.Question) error
	DeleteByIDs(ids []uint) (int64, error)
}

// ScoreStore 判题台账接口，由 repository.ScoreRepository 实现
type ScoreStore interface {
	Append(entry *model.ScoreEntry) error
	FindByUser(userID uint) ([]model.ScoreEntry, error)
	ScanAll() ([]model.UserScoreRow, error)
}

const (
	appendAttempts   = 3
	appendRetryDelay = 100 * time.Millisecond
)

type QuizService struct {
	Questions QuestionStore
	Scores    ScoreStore
	rdb       *redis.Client
}

func NewQuizService(questions QuestionStore, scores ScoreStore, rdb *redis.Client) *QuizService {
	return &QuizService{
		Questions: questions,
		Scores:    scores,
		rdb:       rdb,
	}
}

// SubmissionResult 判题结果，答错也是正常返回而不是错误
type SubmissionResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// SubmitAnswer 提交答案：查题 -> 判题 -> 追加台账 -> 返回结果。
// 每次成功调用恰好追加一条台账；追加之前任何一步失败都不落盘
func (s *QuizService) SubmitAnswer(userID, questionID uint, answer string) (*SubmissionResult, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	correct, err := EvaluateAnswer(question.Type, question.Answer, answer)
	if err != nil {
		return nil, err
	}

	entry := &model.ScoreEntry{
		UserID:     userID,
		QuestionID: question.ID,
	}
	if correct {
		entry.Score = 1
	}

	// 台账必须落盘：瞬时存储故障时有限次重试，静默丢分比慢响应更糟
	if err := s.appendWithRetry(entry); err != nil {
		return nil, err
	}

	monitoring.ObserveSubmission(string(question.Type), correct)
	s.invalidateLeaderboard()

	return &SubmissionResult{
		IsCorrect:     correct,
		CorrectAnswer: question.Answer,
		Explanation:   question.Explanation,
	}, nil
}

// permanentAppendError 约束冲突类错误重试也不会成功
func permanentAppendError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		errors.Is(err, gorm.ErrInvalidData)
}

func (s *QuizService) appendWithRetry(entry *model.ScoreEntry) error {
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(appendRetryDelay)
		}
		if err = s.Scores.Append(entry); err == nil {
			return nil
		}
		if permanentAppendError(err) {
			return err
		}
		logger.Log.Warn("score append failed",
			zap.Uint("user_id", entry.UserID),
			zap.Uint("question_id", entry.QuestionID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
}

// invalidateLeaderboard 每次台账追加后删除排行榜缓存，
// 这是缓存唯一的失效规则；缓存不可用时降级为实时聚合
func (s *QuizService) invalidateLeaderboard() {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), leaderboardCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate leaderboard cache", zap.Error(err))
	}
}

func validateQuestion(question *model.Question) error {
	if _, err := answerKeyFor(question.Type, question.Answer); err != nil {
		return fmt.Errorf("%w: 不支持的题型 %q", util.ErrValidation, question.Type)
	}
	if question.Content == "" {
		return fmt.Errorf("%w: 题干不能为空", util.ErrValidation)
	}
	if question.Answer == "" {
		return fmt.Errorf("%w: 答案不能为空", util.ErrValidation)
	}

	// 选择题的答案必须指向已有选项
	if question.Type == model.SingleChoice || question.Type == model.MultipleChoice {
		options := make(map[string]bool, len(question.Options))
		for _, o := range question.Options {
			options[o] = true
		}
		for _, token := range strings.Split(question.Answer, ",") {
			if !options[token] {
				return fmt.Errorf("%w: 答案 %q 不在选项中", util.ErrValidation, token)
			}
		}
	}

	return nil
}

func (s *QuizService) CreateQuestion(question *model.Question) error {
	if question.Difficulty == "" {
		question.Difficulty = model.Medium
	}
	if err := validateQuestion(question); err != nil {
		return err
	}
	return s.Questions.Create(question)
}

func (s *QuizService) GetQuestions() ([]model.Question, error) {
	return s.Questions.List()
}

func (s *QuizService) UpdateQuestion(id uint, updated *model.Question) (*model.Question, error) {
	question, err := s.Questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question.Type = updated.Type
	question.Content = updated.Content
	question.Images = updated.Images
	question.Options = updated.Options
	question.OptionImages = updated.OptionImages
	question.Answer = updated.Answer
	question.Explanation = updated.Explanation
	question.Tags = updated.Tags
	if updated.Difficulty != "" {
		question.Difficulty = updated.Difficulty
	}

	if err := validateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.Questions.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(id uint) error {
	if _, err := s.Questions.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.Questions.Delete(id)
}

// ImportQuestions 批量导入，逐题校验，全部合法才写入
func (s *QuizService) ImportQuestions(questions []model.Question, createdByID uint) (int, error) {
	if len(questions) == 0 {
		return 0, fmt.Errorf("%w: 题目数组不能为空", util.ErrValidation)
	}
	for i := range questions {
		if questions[i].Difficulty == "" {
			questions[i].Difficulty = model.Medium
		}
		questions[i].CreatedByID = createdByID
		if err := validateQuestion(&questions[i]); err != nil {
			return 0, fmt.Errorf("第%d题: %w", i+1, err)
		}
	}
	if err := s.Questions.BulkCreate(questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

func (s *QuizService) DeleteQuestions(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: 请提供要删除的题目ID数组", util.ErrValidation)
	}
	return s.Questions.DeleteByIDs(ids)
}
