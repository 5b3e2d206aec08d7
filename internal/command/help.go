package command

import (
	"context"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return domain.CommandHelp.String()
}

func (c *HelpCommand) Aliases() []string {
	return []string{"功能", "help"}
}

func (c *HelpCommand) Description() string {
	return "查看功能列表"
}

func (c *HelpCommand) Params() []Param {
	return nil
}

func (c *HelpCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	out := c.deps.Operations.Help(ctx)
	return c.deps.Presenter.Image(ctx, cmdCtx.Room, out)
}
