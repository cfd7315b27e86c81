package controller

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"quizbank_backend/internal/service"
	"quizbank_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageSize = 5 << 20 // 5MB
	maxBatchSize = 10
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

type uploadedFile struct {
	URL      string `json:"url"`
	ID       string `json:"id"`
	Filename string `json:"filename"`
	QuizID   string `json:"quizId,omitempty"`
}

func (c *UploadController) storeImage(ctx *gin.Context, header *multipart.FileHeader, quizID string) (*uploadedFile, string) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "只能上传图片文件"
	}
	if header.Size > maxImageSize {
		return nil, "图片大小不能超过5MB"
	}

	file, err := header.Open()
	if err != nil {
		return nil, "无法读取上传文件"
	}
	defer file.Close()

	// 随机对象名，避免原始文件名冲突或注入路径
	objectName := uuid.New().String() + filepath.Ext(header.Filename)

	if _, err := c.StorageService.Upload(ctx.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		return nil, "文件上传失败"
	}

	return &uploadedFile{
		URL:      "/api/image/" + objectName,
		ID:       objectName,
		Filename: objectName,
		QuizID:   quizID,
	}, ""
}

// Upload godoc
// @Summary 上传单个图片
// @Description 上传题目配图，返回可解析的图片引用
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "图片文件"
// @Param quizId formData string false "关联题目ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失或类型不符"
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "请选择要上传的文件")
		return
	}

	result, msg := c.storeImage(ctx, header, ctx.PostForm("quizId"))
	if msg != "" {
		util.BadRequest(ctx, msg)
		return
	}

	util.Success(ctx, result)
}

// UploadMultiple godoc
// @Summary 上传多个图片
// @Description 一次最多上传10个图片文件
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param files formData file true "图片文件列表"
// @Param quizId formData string false "关联题目ID"
// @Success 200 {object} util.Response{data=[]object}
// @Failure 400 {object} util.Response "文件缺失或数量超限"
// @Router /api/upload/multiple [post]
func (c *UploadController) UploadMultiple(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "请选择要上传的文件")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		util.BadRequest(ctx, "请选择要上传的文件")
		return
	}
	if len(headers) > maxBatchSize {
		util.BadRequest(ctx, "一次最多上传10个文件")
		return
	}

	quizID := ctx.PostForm("quizId")
	files := make([]uploadedFile, 0, len(headers))
	for _, header := range headers {
		result, msg := c.storeImage(ctx, header, quizID)
		if msg != "" {
			util.BadRequest(ctx, msg)
			return
		}
		files = append(files, *result)
	}

	util.Success(ctx, files)
}

// GetImage godoc
// @Summary 获取图片
// @Description 按对象名流式返回图片内容
// @Tags 上传
// @Produce image/*
// @Param id path string true "图片ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response "找不到图片"
// @Router /api/image/{id} [get]
func (c *UploadController) GetImage(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" || strings.Contains(id, "/") || strings.Contains(id, "..") {
		util.BadRequest(ctx, "无效的图片ID")
		return
	}

	reader, contentType, size, err := c.StorageService.Fetch(ctx.Request.Context(), id)
	if err != nil {
		util.NotFound(ctx, "找不到图片")
		return
	}
	defer reader.Close()

	if !strings.HasPrefix(contentType, "image/") {
		util.BadRequest(ctx, "不是图片文件")
		return
	}

	ctx.DataFromReader(200, size, contentType, reader, nil)
}
