package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"quizbank_backend/internal/model"
	"quizbank_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardCacheKey = "quizbank:leaderboard:top10"
	leaderboardCacheTTL = 10 * time.Minute
	leaderboardLimit    = 10
)

// LeaderboardEntry 排行榜条目，字段与前端约定保持一致
type LeaderboardEntry struct {
	UserID       uint   `json:"userId"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	TotalScore   int    `json:"totalScore"`
	TotalQuizzes int    `json:"totalQuizzes"`
}

type ScoreService struct {
	Scores ScoreStore
	rdb    *redis.Client
}

func NewScoreService(scores ScoreStore, rdb *redis.Client) *ScoreService {
	return &ScoreService{Scores: scores, rdb: rdb}
}

// GetUserScores 按提交顺序返回用户全部成绩，附带题目详情
func (s *ScoreService) GetUserScores(userID uint) ([]model.ScoreEntry, error) {
	return s.Scores.FindByUser(userID)
}

// Leaderboard 排行榜：每次调用全量扫描台账重新聚合。
// 同分用户按用户ID升序排列，保证结果可复现。
// 仅 top10 结果走缓存，失效规则见 QuizService.invalidateLeaderboard
func (s *ScoreService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = leaderboardLimit
	}

	if cached, ok := s.cachedLeaderboard(limit); ok {
		return cached, nil
	}

	rows, err := s.Scores.ScanAll()
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]*LeaderboardEntry)
	for _, row := range rows {
		entry, exists := totals[row.UserID]
		if !exists {
			entry = &LeaderboardEntry{
				UserID:   row.UserID,
				Username: row.Username,
				Name:     row.Name,
			}
			totals[row.UserID] = entry
		}
		entry.TotalScore += row.Score
		entry.TotalQuizzes++
	}

	ranking := make([]LeaderboardEntry, 0, len(totals))
	for _, entry := range totals {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TotalScore != ranking[j].TotalScore {
			return ranking[i].TotalScore > ranking[j].TotalScore
		}
		return ranking[i].UserID < ranking[j].UserID
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	s.storeLeaderboard(limit, ranking)
	return ranking, nil
}

func (s *ScoreService) cachedLeaderboard(limit int) ([]LeaderboardEntry, bool) {
	if s.rdb == nil || limit != leaderboardLimit {
		return nil, false
	}
	raw, err := s.rdb.Get(context.Background(), leaderboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var ranking []LeaderboardEntry
	if err := json.Unmarshal(raw, &ranking); err != nil {
		return nil, false
	}
	return ranking, true
}

func (s *ScoreService) storeLeaderboard(limit int, ranking []LeaderboardEntry) {
	if s.rdb == nil || limit != leaderboardLimit {
		return
	}
	raw, err := json.Marshal(ranking)
	if err != nil {
		return
	}
	// TTL 只是兜底，正常路径靠追加时的主动失效
	if err := s.rdb.Set(context.Background(), leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
		logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
	}
}
