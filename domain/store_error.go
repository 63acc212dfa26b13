package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind 存储层错误分类，用于向管理端输出可操作的诊断信息
type ErrorKind string

const (
	ErrKindMissingIndex     ErrorKind = "MISSING_INDEX"
	ErrKindPermissionDenied ErrorKind = "PERMISSION_DENIED"
	ErrKindUnavailable      ErrorKind = "UNAVAILABLE"
	ErrKindNotFound         ErrorKind = "NOT_FOUND"
	ErrKindUnknown          ErrorKind = "UNKNOWN"
)

// StoreError 规范化后的存储错误，保留原始错误便于排查
type StoreError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ConfigurationError 查询参数组合非法，任何存储调用之前就应失败
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "CONFIGURATION_ERROR: " + e.Message
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// MongoDB服务端错误码
const (
	codeUnauthorized         = 13
	codeNoQueryExecutionPlan = 291
)

// 缺失索引的已知报文片段。基于报文嗅探本身是脆弱的，
// 集中在这里并用单元测试钉住已知形态（见 store_error_test.go）
var missingIndexFragments = []string{
	"no query execution plans",
	"no query solutions",
	"requires an index",
	"needs an index",
}

// IsMissingIndexError 判断存储错误是否由复合索引缺失引起：
// 优先看结构化错误码，其次匹配已知报文片段
func IsMissingIndexError(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == codeNoQueryExecutionPlan {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range missingIndexFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func isPermissionError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == codeUnauthorized {
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "not authorized")
}

func isUnavailableError(err error) bool {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), "server selection error")
}

// ClassifyStoreError 将驱动/网络错误归并为固定分类。
// queryContext 描述触发错误的过滤与排序组合，缺索引时原样带出，
// 方便运维按提示补建索引
func ClassifyStoreError(err error, queryContext string) *StoreError {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &StoreError{Kind: ErrKindNotFound, Message: "document not found", Err: err}
	case IsMissingIndexError(err):
		return &StoreError{
			Kind:    ErrKindMissingIndex,
			Message: fmt.Sprintf("query requires a composite index that does not exist (%s); create the index and retry", queryContext),
			Err:     err,
		}
	case isPermissionError(err):
		return &StoreError{Kind: ErrKindPermissionDenied, Message: "store rejected the operation: permission denied", Err: err}
	case isUnavailableError(err):
		return &StoreError{Kind: ErrKindUnavailable, Message: "store unreachable, check network or server status", Err: err}
	default:
		return &StoreError{Kind: ErrKindUnknown, Message: err.Error(), Err: err}
	}
}
