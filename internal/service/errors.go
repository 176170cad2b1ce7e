package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUnknownKeywordType = errors.New("未知的关键词类型")
	ErrKeywordNotFound    = errors.New("关键词不存在")
	ErrUploadInProgress   = errors.New("该周期正在上传中，请稍后重试")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserExist          = errors.New("邮箱已注册")
	ErrPasswordIncorrect  = errors.New("密码错误")
	ErrSubscriberNotFound = errors.New("订阅记录不存在")
	ErrRateLimited        = errors.New("请求过于频繁，请稍后重试")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUnknownKeywordType: BadRequest,
	ErrKeywordNotFound:    NotFound,
	ErrUploadInProgress:   BadRequest,
	ErrUserNotFound:       NotFound,
	ErrUserExist:          BadRequest,
	ErrPasswordIncorrect:  Unauthorized,
	ErrSubscriberNotFound: NotFound,
	ErrRateLimited:        TooManyRequests,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}
