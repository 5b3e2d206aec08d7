package command

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/util"
)

// ErrUnknownCommand is returned when a command dispatch is attempted for an
// unregistered key.
var ErrUnknownCommand = errors.New("unknown command")

// Registry stores command handlers keyed by their canonical names and aliases.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[string]Command
	aliasKeys map[string]string
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[string]Command),
		aliasKeys: make(map[string]string),
	}
}

// Register adds a handler under its name and aliases. Keys are lowercased so
// ASCII aliases match case-insensitively.
func (r *Registry) Register(handler Command) {
	if handler == nil {
		return
	}

	name := util.Normalize(handler.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.handlers[name] = handler
	for _, alias := range handler.Aliases() {
		r.aliasKeys[util.Normalize(alias)] = name
	}
}

// Lookup resolves a name or alias to its handler.
func (r *Registry) Lookup(key string) (Command, bool) {
	if r == nil || key == "" {
		return nil, false
	}
	key = util.Normalize(key)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if handler, ok := r.handlers[key]; ok {
		return handler, true
	}
	if name, ok := r.aliasKeys[key]; ok {
		handler, ok := r.handlers[name]
		return handler, ok
	}
	return nil, false
}

// Execute binds args to the handler's parameters and runs it.
func (r *Registry) Execute(ctx context.Context, cmdCtx *domain.CommandContext, key string, args []string) error {
	if r == nil {
		return fmt.Errorf("command registry is nil")
	}

	handler, ok := r.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}

	params, err := Bind(handler.Params(), args)
	if err != nil {
		return fmt.Errorf("%s: %w", handler.Name(), err)
	}
	return handler.Execute(ctx, cmdCtx, params)
}

// Count returns the number of registered command handlers.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Names lists canonical command names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
