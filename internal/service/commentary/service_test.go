package commentary

import (
	"context"
	"errors"
	"testing"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name   string
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func records() []map[string]any {
	return []map[string]any{{"killcnt": 0, "deadcnt": 12, "gameresult": 2}}
}

func TestCommentUsesRequestedProvider(t *testing.T) {
	gemini := &fakeProvider{name: "Gemini", reply: "g"}
	openai := &fakeProvider{name: "openai", reply: "o"}
	svc := NewService(nil, gemini, openai)

	text, err := svc.Comment(context.Background(), &domain.Commentary{
		Records: records(), Provider: "OpenAI", Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "o", text)
	assert.Zero(t, gemini.calls)
	assert.Contains(t, openai.prompt, `"deadcnt":12`)
	assert.Contains(t, openai.prompt, "gradeGame 字段 系统给的评分，满分16分")
}

func TestCommentFallsBackToFirstProvider(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, reply: "g"}
	svc := NewService(nil, gemini)

	text, err := svc.Comment(context.Background(), &domain.Commentary{
		Records: records(), Provider: "claude", Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "g", text)
}

func TestCommentDisabledSkipsProvider(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini}
	svc := NewService(nil, gemini)

	text, err := svc.Comment(context.Background(), &domain.Commentary{Records: records()})
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Zero(t, gemini.calls)
}

func TestCommentWithoutProviders(t *testing.T) {
	svc := NewService(nil)
	assert.False(t, svc.Available())

	_, err := svc.Comment(context.Background(), &domain.Commentary{Records: records(), Enabled: true})
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestCommentWrapsProviderError(t *testing.T) {
	boom := errors.New("quota")
	svc := NewService(nil, &fakeProvider{name: ProviderGemini, err: boom})

	_, err := svc.Comment(context.Background(), &domain.Commentary{Records: records(), Enabled: true})
	assert.ErrorIs(t, err, boom)
}

func TestCommentSkipsProviderWithOpenBreaker(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, err: errors.New("503")}
	openai := &fakeProvider{name: ProviderOpenAI, reply: "o"}
	svc := NewService(nil, gemini, openai)
	req := &domain.Commentary{Records: records(), Provider: ProviderGemini, Enabled: true}

	for i := 0; i < 3; i++ {
		_, err := svc.Comment(context.Background(), req)
		require.Error(t, err)
	}

	text, err := svc.Comment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "o", text)
	assert.Equal(t, 3, gemini.calls)
}

func TestCommentAllBreakersOpen(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, err: errors.New("503")}
	svc := NewService(nil, gemini)
	req := &domain.Commentary{Records: records(), Enabled: true}

	for i := 0; i < 3; i++ {
		_, _ = svc.Comment(context.Background(), req)
	}
	_, err := svc.Comment(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, gemini.calls)
}
