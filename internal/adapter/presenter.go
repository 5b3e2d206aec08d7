package adapter

import (
	"context"
	"fmt"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Sender delivers replies to a chat room.
type Sender interface {
	SendText(ctx context.Context, room, text string) error
	SendImage(ctx context.Context, room string, image []byte) error
}

// Renderer turns a template plus payload into an image.
type Renderer interface {
	Render(ctx context.Context, tmpl string, data map[string]any) ([]byte, error)
}

// Commentator produces LLM commentary for an outcome.
type Commentator interface {
	Comment(ctx context.Context, c *domain.Commentary) (string, error)
}

// Presenter sends an Outcome back to chat. A failed outcome always produces
// its Message as text; presenter-side failures produce a fixed fallback.
type Presenter struct {
	sender      Sender
	renderer    Renderer
	commentator Commentator
	logger      *zap.Logger
}

func NewPresenter(sender Sender, renderer Renderer, commentator Commentator, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{
		sender:      sender,
		renderer:    renderer,
		commentator: commentator,
		logger:      logger,
	}
}

// Text sends the outcome's plain-text payload.
func (p *Presenter) Text(ctx context.Context, room string, out *domain.Outcome) error {
	if !out.OK() {
		return p.failure(ctx, room, out)
	}

	text := out.Text()
	if text == "" {
		return p.fallback(ctx, room, fmt.Errorf("outcome has no text payload"))
	}
	return p.sender.SendText(ctx, room, text)
}

// Image renders the outcome's template with its payload and sends the image.
func (p *Presenter) Image(ctx context.Context, room string, out *domain.Outcome) error {
	if !out.OK() {
		return p.failure(ctx, room, out)
	}
	if !out.HasTemplate() {
		return p.fallback(ctx, room, fmt.Errorf("outcome has no template"))
	}
	if p.renderer == nil {
		return p.fallback(ctx, room, fmt.Errorf("renderer not configured"))
	}

	image, err := p.renderer.Render(ctx, out.Template, out.Payload)
	if err != nil {
		return p.fallback(ctx, room, err)
	}
	if err := p.sender.SendImage(ctx, room, image); err != nil {
		return p.fallback(ctx, room, err)
	}
	return nil
}

// ImageWithCommentary sends the rendered image and then, when the outcome
// asks for it, one line of LLM commentary. Commentary failures never retract
// the image.
func (p *Presenter) ImageWithCommentary(ctx context.Context, room string, out *domain.Outcome) error {
	if err := p.Image(ctx, room, out); err != nil {
		return err
	}
	if !out.OK() || out.Commentary == nil || !out.Commentary.Enabled {
		return nil
	}
	if p.commentator == nil {
		p.logger.Debug("Commentary requested but no commentator configured")
		return nil
	}

	text, err := p.commentator.Comment(ctx, out.Commentary)
	if err != nil {
		return p.fallback(ctx, room, err)
	}
	if text == "" {
		return nil
	}
	if err := p.sender.SendText(ctx, room, text); err != nil {
		return p.fallback(ctx, room, err)
	}
	return nil
}

func (p *Presenter) failure(ctx context.Context, room string, out *domain.Outcome) error {
	message := errors.UserMessage(errors.KindUnknown)
	if out != nil && out.Message != "" {
		message = out.Message
	}
	return p.sender.SendText(ctx, room, message)
}

func (p *Presenter) fallback(ctx context.Context, room string, cause error) error {
	p.logger.Error("Failed to present outcome",
		zap.String("room", room),
		zap.Error(cause),
	)
	if err := p.sender.SendText(ctx, room, errors.UserMessage(errors.KindUnknown)); err != nil {
		return fmt.Errorf("fallback reply failed: %w", err)
	}
	return nil
}
