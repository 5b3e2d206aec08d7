package command

import (
	"context"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
)

type RosterAllCommand struct {
	deps *Dependencies
}

func NewRosterAllCommand(deps *Dependencies) *RosterAllCommand {
	return &RosterAllCommand{deps: deps}
}

func (c *RosterAllCommand) Name() string { return domain.CommandRosterAll.String() }
func (c *RosterAllCommand) Aliases() []string { return []string{"roster"} }
func (c *RosterAllCommand) Description() string { return "查看所有已登记角色" }
func (c *RosterAllCommand) Params() []Param { return nil }

func (c *RosterAllCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	return c.deps.Presenter.Image(ctx, cmdCtx.Room, c.deps.Operations.RosterAll(ctx))
}

type RosterSearchCommand struct {
	deps *Dependencies
}

func NewRosterSearchCommand(deps *Dependencies) *RosterSearchCommand {
	return &RosterSearchCommand{deps: deps}
}

func (c *RosterSearchCommand) Name() string { return domain.CommandRosterSearch.String() }
func (c *RosterSearchCommand) Aliases() []string { return []string{"roster-search"} }
func (c *RosterSearchCommand) Description() string { return "按名称或营地ID模糊查询角色" }

func (c *RosterSearchCommand) Params() []Param {
	return []Param{{Name: "token", Kind: KindString}}
}

func (c *RosterSearchCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	out := c.deps.Operations.RosterSearch(ctx, stringParam(params, "token"))
	return c.deps.Presenter.Image(ctx, cmdCtx.Room, out)
}

type RosterAddCommand struct {
	deps *Dependencies
}

func NewRosterAddCommand(deps *Dependencies) *RosterAddCommand {
	return &RosterAddCommand{deps: deps}
}

func (c *RosterAddCommand) Name() string { return domain.CommandRosterAdd.String() }
func (c *RosterAddCommand) Aliases() []string { return []string{"roster-add"} }
func (c *RosterAddCommand) Description() string { return "登记角色：营地ID 名称" }

func (c *RosterAddCommand) Params() []Param {
	return []Param{
		{Name: "gokid", Kind: KindInt},
		{Name: "name", Kind: KindString},
	}
}

func (c *RosterAddCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	gokID, _ := intParam(params, "gokid")
	out := c.deps.Operations.RosterAdd(ctx, gokID, stringParam(params, "name"))
	return c.deps.Presenter.Text(ctx, cmdCtx.Room, out)
}

type RosterUpdateCommand struct {
	deps *Dependencies
}

func NewRosterUpdateCommand(deps *Dependencies) *RosterUpdateCommand {
	return &RosterUpdateCommand{deps: deps}
}

func (c *RosterUpdateCommand) Name() string { return domain.CommandRosterUpdate.String() }
func (c *RosterUpdateCommand) Aliases() []string { return []string{"roster-update"} }
func (c *RosterUpdateCommand) Description() string { return "修改角色名称：营地ID 新名称" }

func (c *RosterUpdateCommand) Params() []Param {
	return []Param{
		{Name: "gokid", Kind: KindInt},
		{Name: "name", Kind: KindString},
	}
}

func (c *RosterUpdateCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	gokID, _ := intParam(params, "gokid")
	out := c.deps.Operations.RosterUpdate(ctx, gokID, stringParam(params, "name"))
	return c.deps.Presenter.Text(ctx, cmdCtx.Room, out)
}

type RosterDeleteCommand struct {
	deps *Dependencies
}

func NewRosterDeleteCommand(deps *Dependencies) *RosterDeleteCommand {
	return &RosterDeleteCommand{deps: deps}
}

func (c *RosterDeleteCommand) Name() string { return domain.CommandRosterDelete.String() }
func (c *RosterDeleteCommand) Aliases() []string { return []string{"roster-delete"} }
func (c *RosterDeleteCommand) Description() string { return "删除角色：营地ID" }

func (c *RosterDeleteCommand) Params() []Param {
	return []Param{{Name: "gokid", Kind: KindInt}}
}

func (c *RosterDeleteCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	gokID, _ := intParam(params, "gokid")
	out := c.deps.Operations.RosterDelete(ctx, gokID)
	return c.deps.Presenter.Text(ctx, cmdCtx.Room, out)
}
