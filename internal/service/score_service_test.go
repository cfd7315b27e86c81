package service

import (
	"errors"
	"testing"

	"quizbank_backend/internal/model"
)

// rowStore 直接返回预设的台账扫描结果
type rowStore struct {
	rows []model.UserScoreRow
	err  error
}

func (s *rowStore) Append(*model.ScoreEntry) error { return nil }

func (s *rowStore) FindByUser(uint) ([]model.ScoreEntry, error) { return nil, nil }

func (s *rowStore) ScanAll() ([]model.UserScoreRow, error) { return s.rows, s.err }

func TestLeaderboardAggregation(t *testing.T) {
	store := &rowStore{rows: []model.UserScoreRow{
		{UserID: 1, Username: "alice", Name: "Alice", Score: 1},
		{UserID: 2, Username: "bob", Name: "Bob", Score: 1},
		{UserID: 1, Username: "alice", Name: "Alice", Score: 0},
		{UserID: 1, Username: "alice", Name: "Alice", Score: 1},
		{UserID: 2, Username: "bob", Name: "Bob", Score: 1},
		{UserID: 3, Username: "carol", Name: "Carol", Score: 1},
	}}
	svc := NewScoreService(store, nil)

	ranking, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(ranking) != 3 {
		t.Fatalf("len(ranking) = %d, want 3", len(ranking))
	}

	want := []LeaderboardEntry{
		{UserID: 1, Username: "alice", Name: "Alice", TotalScore: 2, TotalQuizzes: 3},
		{UserID: 2, Username: "bob", Name: "Bob", TotalScore: 2, TotalQuizzes: 2},
		{UserID: 3, Username: "carol", Name: "Carol", TotalScore: 1, TotalQuizzes: 1},
	}
	for i, w := range want {
		if ranking[i] != w {
			t.Fatalf("ranking[%d] = %+v, want %+v", i, ranking[i], w)
		}
	}
}

// 同分用户按用户ID升序，重复调用结果一致
func TestLeaderboardTieBreakDeterministic(t *testing.T) {
	store := &rowStore{rows: []model.UserScoreRow{
		{UserID: 9, Username: "u9", Score: 1},
		{UserID: 2, Username: "u2", Score: 1},
		{UserID: 5, Username: "u5", Score: 1},
	}}
	svc := NewScoreService(store, nil)

	first, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	wantOrder := []uint{2, 5, 9}
	for i, id := range wantOrder {
		if first[i].UserID != id {
			t.Fatalf("position %d: UserID = %d, want %d", i, first[i].UserID, id)
		}
	}

	second, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ranking not stable across calls: %+v vs %+v", first[i], second[i])
		}
	}
}

func TestLeaderboardLimitTruncates(t *testing.T) {
	var rows []model.UserScoreRow
	for id := uint(1); id <= 15; id++ {
		rows = append(rows, model.UserScoreRow{UserID: id, Score: 1})
	}
	svc := NewScoreService(&rowStore{rows: rows}, nil)

	ranking, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(ranking) != 10 {
		t.Fatalf("len(ranking) = %d, want 10", len(ranking))
	}

	ranking, err = svc.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(ranking) != 10 {
		t.Fatalf("default limit: len(ranking) = %d, want 10", len(ranking))
	}
}

func TestLeaderboardEmptyLedger(t *testing.T) {
	svc := NewScoreService(&rowStore{}, nil)
	ranking, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(ranking) != 0 {
		t.Fatalf("empty ledger must yield empty ranking, got %d entries", len(ranking))
	}
}

func TestLeaderboardPropagatesScanError(t *testing.T) {
	scanErr := errors.New("scan failed")
	svc := NewScoreService(&rowStore{err: scanErr}, nil)
	if _, err := svc.Leaderboard(10); !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

// 台账一经追加即不可变：后续题目编辑不影响已有得分
func TestLedgerImmuneToQuestionEdits(t *testing.T) {
	questions := newFakeQuestionStore()
	scores := &fakeScoreStore{}
	quizSvc := NewQuizService(questions, scores, nil)
	q := seedQuestion(t, questions, model.SingleChoice, "B")

	if _, err := quizSvc.SubmitAnswer(1, q.ID, "B"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	updated := *q
	updated.Answer = "C"
	if _, err := quizSvc.UpdateQuestion(q.ID, &updated); err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}

	entries, err := scores.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 1 {
		t.Fatalf("recorded score changed after question edit: %+v", entries)
	}
}
