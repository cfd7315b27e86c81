package controller

import (
	"errors"
	"fmt"
	"strconv"

	"quizbank_backend/internal/model"
	"quizbank_backend/internal/service"
	"quizbank_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuestionRequest 题目创建/更新请求
// swagger:model QuestionRequest
type QuestionRequest struct {
	Type         model.QuestionType `json:"type" binding:"required"`
	Question     string             `json:"question" binding:"required"`
	Images       []string           `json:"images"`
	Options      []string           `json:"options"`
	OptionImages []string           `json:"optionImages"`
	Answer       string             `json:"answer" binding:"required"`
	Explanation  string             `json:"explanation"`
	Difficulty   model.Difficulty   `json:"difficulty"`
	Tags         []string           `json:"tags"`
}

func (r *QuestionRequest) toModel() *model.Question {
	return &model.Question{
		Type:         r.Type,
		Content:      r.Question,
		Images:       r.Images,
		Options:      r.Options,
		OptionImages: r.OptionImages,
		Answer:       r.Answer,
		Explanation:  r.Explanation,
		Difficulty:   r.Difficulty,
		Tags:         r.Tags,
	}
}

func questionIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return 0, false
	}
	return uint(id), true
}

// GetQuizzes godoc
// @Summary 获取所有题目
// @Description 返回全部题目列表，附带出题人信息
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/quiz [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	questions, err := c.QuizService.GetQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// CreateQuiz godoc
// @Summary 创建新题目
// @Description 创建题目（仅管理员）
// @Tags 题库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuestionRequest true "题目内容"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "校验失败"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/quiz [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := req.toModel()
	question.CreatedByID = user.UserID

	if err := c.QuizService.CreateQuestion(question); err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// UpdateQuiz godoc
// @Summary 更新题目
// @Description 更新题目（仅管理员）
// @Tags 题库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body QuestionRequest true "题目内容"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quiz/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, ok := questionIDParam(ctx)
	if !ok {
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(id, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrValidation):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// DeleteQuiz godoc
// @Summary 删除题目
// @Description 删除题目（仅管理员）。已有台账记录不受影响
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quiz/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := questionIDParam(ctx)
	if !ok {
		return
	}

	if err := c.QuizService.DeleteQuestion(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "删除成功"})
}

// SubmitRequest 答案提交请求
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 对指定题目判题并记录成绩，答错也是正常响应
// @Tags 题库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body SubmitRequest true "提交的答案"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response "提交内容非法或题型无法识别"
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 503 {object} util.Response "成绩暂时无法写入"
// @Router /api/quiz/{id}/submit [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := questionIDParam(ctx)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswer(user.UserID, id, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrUnrecognizedQuestionType):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrStorageUnavailable):
			util.ServiceUnavailable(ctx, "成绩写入失败，请稍后重试")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetQuestions godoc
// @Summary 题库管理列表
// @Description 题库管理接口（仅管理员）
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/quiz/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.GetQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// BatchImport godoc
// @Summary 批量导入题目
// @Description 批量导入题目数组（仅管理员），逐题校验
// @Tags 题库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []QuestionRequest true "题目数组"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "校验失败"
// @Router /api/quiz/batch [post]
func (c *QuizController) BatchImport(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var reqs []QuestionRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, "请求体必须是题目数组")
		return
	}

	questions := make([]model.Question, len(reqs))
	for i := range reqs {
		questions[i] = *reqs[i].toModel()
	}

	count, err := c.QuizService.ImportQuestions(questions, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"message": fmt.Sprintf("成功导入 %d 道题目", count)})
}

// BatchDeleteRequest 批量删除请求
// swagger:model BatchDeleteRequest
type BatchDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BatchDelete godoc
// @Summary 批量删除题目
// @Description 按ID数组批量删除题目（仅管理员）
// @Tags 题库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BatchDeleteRequest true "题目ID数组"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/quiz/batch-delete [post]
func (c *QuizController) BatchDelete(ctx *gin.Context) {
	var req BatchDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请提供要删除的题目ID数组")
		return
	}

	deleted, err := c.QuizService.DeleteQuestions(req.IDs)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": fmt.Sprintf("成功删除 %d 道题目", deleted), "deletedCount": deleted})
}
