package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeBotError   = "BOT_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeService    = "SERVICE_ERROR"
)

// Kind classifies a failure so it can be mapped to a single user message at the
// presentation boundary.
type Kind string

const (
	KindConfiguration   Kind = "configuration"
	KindUnauthenticated Kind = "unauthenticated"
	KindResolutionMiss  Kind = "resolution_miss"
	KindRemoteFailure   Kind = "remote_failure"
	KindShapingFailure  Kind = "shaping_failure"
	KindResourceMissing Kind = "resource_missing"
	KindStorage         Kind = "storage"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindEmpty           Kind = "empty"
	KindUnknown         Kind = "unknown"
)

func (k Kind) String() string {
	return string(k)
}

var userMessages = map[Kind]string{
	KindConfiguration:   "获取接口信息失败",
	KindUnauthenticated: "系统未配置API访问Token",
	KindResolutionMiss:  "未查询到该用户，请确认输入正确的角色或营地ID",
	KindRemoteFailure:   "获取接口信息失败",
	KindShapingFailure:  "处理接口返回信息时出错",
	KindResourceMissing: "系统错误：模板文件不存在",
	KindStorage:         "角色数据读写失败",
	KindValidation:      "王者营地ID格式不正确",
	KindNotFound:        "没有当前ID",
	KindEmpty:           "未找到角色数据",
	KindUnknown:         "猪脑过载，请稍后再试",
}

// UserMessage returns the user-facing text for a failure kind.
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

type BotError struct {
	Message    string
	Code       string
	Kind       Kind
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

func (e *BotError) WithCause(cause error) *BotError {
	e.Cause = cause
	return e
}

// New creates a kind-tagged error for pipeline steps.
func New(kind Kind, message string, cause error) *BotError {
	return &BotError{
		Message:    message,
		Code:       CodeBotError,
		Kind:       kind,
		StatusCode: 500,
		Cause:      cause,
	}
}

// KindOf walks the wrap chain and returns the first kind found.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be *BotError
	if stderrors.As(err, &be) && be.Kind != "" {
		return be.Kind
	}
	return KindUnknown
}

type APIError struct {
	*BotError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeAPIError,
			Kind:       KindRemoteFailure,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

func (e *APIError) Unwrap() error {
	return e.BotError
}

type ValidationError struct {
	*BotError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			Kind:       KindValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

func (e *ValidationError) Unwrap() error {
	return e.BotError
}

type ServiceError struct {
	*BotError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeService,
			Kind:       KindStorage,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

func (e *ServiceError) Unwrap() error {
	return e.BotError
}
