package domain

import (
	"testing"

	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeFailClearsPayload(t *testing.T) {
	out := NewOutcome()
	out.Payload["data"] = []int{1}
	out.Template = "x.html"
	out.Commentary = &Commentary{Enabled: true}

	out.Fail(errors.KindRemoteFailure)

	assert.False(t, out.OK())
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, errors.UserMessage(errors.KindRemoteFailure), out.Message)
	assert.Empty(t, out.Payload)
	assert.False(t, out.HasTemplate())
	assert.Nil(t, out.Commentary)
}

func TestOutcomeTextRoundTrip(t *testing.T) {
	out := NewOutcome().SetText("hello").Succeed()

	assert.True(t, out.OK())
	assert.Equal(t, "hello", out.Text())
	assert.Empty(t, out.Message)
}

func TestPendingOutcomeIsNotOK(t *testing.T) {
	out := NewOutcome()
	assert.Equal(t, StatusPending, out.Status)
	assert.False(t, out.OK())
}
