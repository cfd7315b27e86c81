package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"quizbank_backend/internal/middleware"
	"quizbank_backend/internal/model"
	"quizbank_backend/internal/service"
	"quizbank_backend/internal/util"
	"quizbank_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type memQuestionStore struct {
	questions map[uint]*model.Question
	nextID    uint
}

func newMemQuestionStore() *memQuestionStore {
	return &memQuestionStore{questions: make(map[uint]*model.Question), nextID: 1}
}

func (s *memQuestionStore) Create(q *model.Question) error {
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return nil
}

func (s *memQuestionStore) FindByID(id uint) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *q
	return &copied, nil
}

func (s *memQuestionStore) Update(q *model.Question) error {
	s.questions[q.ID] = q
	return nil
}

func (s *memQuestionStore) Delete(id uint) error {
	delete(s.questions, id)
	return nil
}

func (s *memQuestionStore) List() ([]model.Question, error) {
	out := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (s *memQuestionStore) BulkCreate(questions []model.Question) error {
	for i := range questions {
		q := questions[i]
		s.Create(&q)
	}
	return nil
}

func (s *memQuestionStore) DeleteByIDs(ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.questions[id]; ok {
			delete(s.questions, id)
			n++
		}
	}
	return n, nil
}

type memScoreStore struct {
	entries []model.ScoreEntry
}

func (s *memScoreStore) Append(entry *model.ScoreEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memScoreStore) FindByUser(userID uint) ([]model.ScoreEntry, error) {
	var out []model.ScoreEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memScoreStore) ScanAll() ([]model.UserScoreRow, error) { return nil, nil }

// asUser 模拟认证中间件放入上下文的用户身份
func asUser(userID uint, role model.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("user", &util.Claims{UserID: userID, Role: role, Username: "tester"})
		ctx.Next()
	}
}

func newSubmitRouter(t *testing.T, authed bool) (*gin.Engine, *memQuestionStore, *memScoreStore) {
	t.Helper()
	questions := newMemQuestionStore()
	scores := &memScoreStore{}
	quizController := NewQuizController(service.NewQuizService(questions, scores, nil))

	router := gin.New()
	group := router.Group("/api/quiz")
	if authed {
		group.Use(asUser(7, model.Student))
	}
	group.POST("/:id/submit", quizController.SubmitAnswer)
	return router, questions, scores
}

func postSubmit(router *gin.Engine, questionID uint, answer string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"answer": answer})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", questionID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	router, questions, scores := newSubmitRouter(t, true)
	q := &model.Question{
		Type:        model.SingleChoice,
		Content:     "1+1=?",
		Options:     model.StringList{"1", "2", "3"},
		Answer:      "2",
		Explanation: "基础算术",
	}
	questions.Create(q)

	w := postSubmit(router, q.ID, "2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int                      `json:"code"`
		Data service.SubmissionResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Data.IsCorrect {
		t.Fatal("expected isCorrect true")
	}
	if resp.Data.CorrectAnswer != "2" || resp.Data.Explanation != "基础算术" {
		t.Fatalf("unexpected payload %+v", resp.Data)
	}
	if len(scores.entries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(scores.entries))
	}
}

func TestSubmitAnswerEndpointIncorrectIs200(t *testing.T) {
	router, questions, _ := newSubmitRouter(t, true)
	q := &model.Question{Type: model.SingleChoice, Content: "1+1=?", Options: model.StringList{"1", "2"}, Answer: "2"}
	questions.Create(q)

	w := postSubmit(router, q.ID, "1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Data service.SubmissionResult `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.IsCorrect {
		t.Fatal("expected isCorrect false")
	}
}

func TestSubmitAnswerEndpointNotFound(t *testing.T) {
	router, _, scores := newSubmitRouter(t, true)

	w := postSubmit(router, 999, "2")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if len(scores.entries) != 0 {
		t.Fatalf("no entry for missing question, got %d", len(scores.entries))
	}
}

func TestSubmitAnswerEndpointUnauthorized(t *testing.T) {
	router, questions, _ := newSubmitRouter(t, false)
	q := &model.Question{Type: model.SingleChoice, Content: "x", Options: model.StringList{"A"}, Answer: "A"}
	questions.Create(q)

	w := postSubmit(router, q.ID, "A")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// 题库管理列表带标准答案，只有管理员能访问
func TestQuestionBankListingRequiresAdmin(t *testing.T) {
	questions := newMemQuestionStore()
	quizController := NewQuizController(service.NewQuizService(questions, &memScoreStore{}, nil))
	questions.Create(&model.Question{
		Type:    model.SingleChoice,
		Content: "x",
		Options: model.StringList{"A", "B"},
		Answer:  "A",
	})

	newRouter := func(role model.UserRole) *gin.Engine {
		router := gin.New()
		group := router.Group("/api/quiz")
		group.Use(asUser(1, role))
		admin := group.Group("")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		admin.GET("/questions", quizController.GetQuestions)
		return router
	}

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/questions", nil)

	w := httptest.NewRecorder()
	newRouter(model.Student).ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("student status = %d, want 403", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte(`"answer"`)) {
		t.Fatal("forbidden response must not leak answers")
	}

	w = httptest.NewRecorder()
	newRouter(model.Admin).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", w.Code)
	}
}

func TestSubmitAnswerEndpointBadRequest(t *testing.T) {
	router, questions, _ := newSubmitRouter(t, true)
	q := &model.Question{Type: model.SingleChoice, Content: "x", Options: model.StringList{"A"}, Answer: "A"}
	questions.Create(q)

	// answer 字段缺失
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", q.ID), bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// 非数字ID
	req = httptest.NewRequest(http.MethodPost, "/api/quiz/abc/submit", bytes.NewReader([]byte(`{"answer":"A"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
