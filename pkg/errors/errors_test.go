package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("plain")))
	assert.Equal(t, KindConfiguration, KindOf(New(KindConfiguration, "missing key", nil)))

	wrapped := fmt.Errorf("call: %w", NewAPIError("bad status", 502, nil))
	assert.Equal(t, KindRemoteFailure, KindOf(wrapped))
	assert.Equal(t, KindValidation, KindOf(NewValidationError("bad id", "gokid", 1)))
	assert.Equal(t, KindStorage, KindOf(NewServiceError("insert failed", "roster", "insert", nil)))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "系统未配置API访问Token", UserMessage(KindUnauthenticated))
	assert.Equal(t, "未查询到该用户，请确认输入正确的角色或营地ID", UserMessage(KindResolutionMiss))
	assert.Equal(t, "猪脑过载，请稍后再试", UserMessage(Kind("made-up")))
}

func TestCauseIsReachable(t *testing.T) {
	root := stderrors.New("connection refused")
	err := NewAPIError("request failed", 0, nil).WithCause(root)
	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "connection refused")
}
