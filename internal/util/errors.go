package util

import "errors"

var (
	ErrUserNotFound             = errors.New("用户不存在")
	ErrQuestionNotFound         = errors.New("题目不存在")
	ErrEmailRegistered          = errors.New("该邮箱已被注册")
	ErrUsernameTaken            = errors.New("该用户名已被注册")
	ErrInvalidCredentials       = errors.New("用户名或密码错误")
	ErrValidation               = errors.New("validation failed")
	ErrUnrecognizedQuestionType = errors.New("unrecognized question type")
	ErrStorageUnavailable       = errors.New("storage temporarily unavailable")
)
