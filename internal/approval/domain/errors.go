package domain

import (
	"errors"
	"fmt"
)

// 错误码，硬错误会中止整个迁移调用
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeIncompletePayload = "INCOMPLETE_PAYLOAD"
	CodePersistence       = "PERSISTENCE_FAILURE"
	CodeNotify            = "NOTIFY_FAILURE"
)

// WorkflowError 工作流错误，携带错误码与可直接面向用户的消息，
// 不暴露持久层内部细节。
type WorkflowError struct {
	Code    string
	Message string
	cause   error
}

// Error 实现 error 接口
func (e *WorkflowError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *WorkflowError) Unwrap() error {
	return e.cause
}

// Is 按错误码匹配，使 errors.Is 可用于携带 cause 的实例
func (e *WorkflowError) Is(target error) bool {
	var we *WorkflowError
	if errors.As(target, &we) {
		return e.Code == we.Code
	}
	return false
}

// WithCause 返回携带底层错误的副本
func (e *WorkflowError) WithCause(cause error) *WorkflowError {
	return &WorkflowError{Code: e.Code, Message: e.Message, cause: cause}
}

// WithMessage 返回替换了用户消息的副本
func (e *WorkflowError) WithMessage(msg string) *WorkflowError {
	return &WorkflowError{Code: e.Code, Message: msg, cause: e.cause}
}

// 预定义的工作流错误
var (
	// ErrUnauthorized 调用者不具备管理员能力
	ErrUnauthorized = &WorkflowError{Code: CodeUnauthorized, Message: "administrator privileges are required for this action"}
	// ErrNotFound 实体不存在
	ErrNotFound = &WorkflowError{Code: CodeNotFound, Message: "the requested record does not exist"}
	// ErrInvalidTransition 当前状态下该动作不合法（含并发抢先的情形）
	ErrInvalidTransition = &WorkflowError{Code: CodeInvalidTransition, Message: "this request has already been processed by another administrator"}
	// ErrIncompletePayload 动作所需字段缺失或非法
	ErrIncompletePayload = &WorkflowError{Code: CodeIncompletePayload, Message: "required fields for this action are missing or invalid"}
	// ErrPersistence 原子单元提交失败，已完整回滚
	ErrPersistence = &WorkflowError{Code: CodePersistence, Message: "the operation could not be saved, please try again"}
	// ErrNotify 软失败：迁移已生效，仅通知投递失败
	ErrNotify = &WorkflowError{Code: CodeNotify, Message: "the request was processed but the notification could not be delivered"}
)
