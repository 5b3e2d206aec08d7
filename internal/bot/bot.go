// Package bot connects the chat listener to the command registry and runs each
// command on a bounded worker pool.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/gok-stats-bot-go/internal/adapter"
	"github.com/kapu/gok-stats-bot-go/internal/chat"
	"github.com/kapu/gok-stats-bot-go/internal/command"
	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/metrics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// FailureReply is sent when a command cannot be bound or executed.
const FailureReply = "参数错误或执行失败"

// Listener is the inbound side of the chat bridge. See chat.Listener.
type Listener interface {
	OnMessage(h chat.Handler)
	Start(ctx context.Context) error
	Stop(timeout time.Duration)
}

// TextSender sends plain replies. See chat.Client.
type TextSender interface {
	SendText(ctx context.Context, room, text string) error
}

type Dependencies struct {
	Listener     Listener
	Sender       TextSender
	Adapter      *adapter.MessageAdapter
	Registry     *command.Registry
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Workers      int
	AllowedRooms []string
	// Closers run in reverse order after in-flight commands finish.
	Closers []func()
}

type Bot struct {
	listener Listener
	sender   TextSender
	adapter  *adapter.MessageAdapter
	registry *command.Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
	rooms    map[string]struct{}
	closers  []func()

	mu       sync.Mutex
	pool     *pool.Pool
	ctx      context.Context
	stopped  bool
	shutOnce sync.Once
	// submitting counts HandleMessage calls between the stopped check and
	// pool.Go, so Shutdown never waits on the pool while a Go is pending.
	submitting sync.WaitGroup
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	if deps.Listener == nil || deps.Sender == nil || deps.Adapter == nil || deps.Registry == nil {
		return nil, fmt.Errorf("listener, sender, adapter and registry are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = 8
	}

	rooms := make(map[string]struct{}, len(deps.AllowedRooms))
	for _, r := range deps.AllowedRooms {
		rooms[r] = struct{}{}
	}

	return &Bot{
		listener: deps.Listener,
		sender:   deps.Sender,
		adapter:  deps.Adapter,
		registry: deps.Registry,
		metrics:  deps.Metrics,
		logger:   logger,
		rooms:    rooms,
		closers:  deps.Closers,
		pool:     pool.New().WithMaxGoroutines(workers),
		ctx:      context.Background(),
	}, nil
}

// Start connects the listener and returns once messages are flowing. Commands
// run with ctx until Shutdown.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	b.listener.OnMessage(b.HandleMessage)
	if err := b.listener.Start(ctx); err != nil {
		return fmt.Errorf("failed to start chat listener: %w", err)
	}

	b.logger.Info("Bot started",
		zap.Int("commands", b.registry.Count()),
		zap.Int("rooms", len(b.rooms)),
	)
	return nil
}

// HandleMessage filters and parses msg and schedules the command. It blocks
// only while every worker is busy.
func (b *Bot) HandleMessage(msg *chat.Message) {
	if msg == nil {
		return
	}
	if len(b.rooms) > 0 {
		if _, ok := b.rooms[msg.Room]; !ok {
			b.logger.Debug("Ignoring message from room", zap.String("room", msg.Room))
			return
		}
	}

	parsed := b.adapter.ParseMessage(msg)
	if parsed == nil {
		return
	}
	if _, ok := b.registry.Lookup(parsed.Name); !ok {
		return
	}

	cmdCtx := domain.NewCommandContext(uuid.NewString(), msg.Room, msg.SenderName(), parsed.RawMessage)

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	ctx := b.ctx
	b.submitting.Add(1)
	b.mu.Unlock()

	defer b.submitting.Done()
	b.pool.Go(func() {
		b.run(ctx, cmdCtx, parsed)
	})
}

func (b *Bot) run(ctx context.Context, cmdCtx *domain.CommandContext, parsed *adapter.ParsedCommand) {
	logger := b.logger.With(
		zap.String("request_id", cmdCtx.RequestID),
		zap.String("command", parsed.Name),
		zap.String("room", cmdCtx.Room),
	)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Command panicked", zap.Any("panic", r))
			b.metrics.IncCommand(parsed.Name, "panic")
			b.reply(ctx, cmdCtx.Room, FailureReply)
		}
	}()

	if err := b.registry.Execute(ctx, cmdCtx, parsed.Name, parsed.Args); err != nil {
		logger.Warn("Command failed", zap.Error(err), zap.Strings("args", parsed.Args))
		b.metrics.IncCommand(parsed.Name, "error")
		b.reply(ctx, cmdCtx.Room, FailureReply)
		return
	}

	b.metrics.IncCommand(parsed.Name, "ok")
	logger.Debug("Command executed", zap.Duration("elapsed", time.Since(start)))
}

func (b *Bot) reply(ctx context.Context, room, text string) {
	if err := b.sender.SendText(ctx, room, text); err != nil {
		b.logger.Error("Failed to send failure reply", zap.String("room", room), zap.Error(err))
	}
}

// Shutdown stops the listener, waits for in-flight commands and releases
// resources in reverse order of acquisition.
func (b *Bot) Shutdown(ctx context.Context) error {
	var err error
	b.shutOnce.Do(func() {
		b.mu.Lock()
		b.stopped = true
		p := b.pool
		b.mu.Unlock()

		b.listener.Stop(constants.ShutdownConfig.ListenerStopTimeout)

		done := make(chan struct{})
		go func() {
			b.submitting.Wait()
			p.Wait()
			close(done)
		}()

		select {
		case <-done:
			b.logger.Info("In-flight commands finished")
		case <-ctx.Done():
			err = fmt.Errorf("timed out waiting for commands: %w", ctx.Err())
		}

		for i := len(b.closers) - 1; i >= 0; i-- {
			b.closers[i]()
		}
	})
	return err
}
