package command

import (
	"context"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
)

// MatchHistoryCommand: 王者战绩 <名称|营地ID> [类型]
type MatchHistoryCommand struct {
	deps *Dependencies
}

func NewMatchHistoryCommand(deps *Dependencies) *MatchHistoryCommand {
	return &MatchHistoryCommand{deps: deps}
}

func (c *MatchHistoryCommand) Name() string {
	return domain.CommandMatchHistory.String()
}

func (c *MatchHistoryCommand) Aliases() []string {
	return []string{"战绩", "zhanji"}
}

func (c *MatchHistoryCommand) Description() string {
	return "查询最近对局战绩"
}

func (c *MatchHistoryCommand) Params() []Param {
	return []Param{
		{Name: "name", Kind: KindString},
		{Name: "option", Kind: KindString, Default: constants.CommandDefaults.MatchOption},
	}
}

func (c *MatchHistoryCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	out := c.deps.Operations.MatchHistory(ctx, stringParam(params, "name"), stringParam(params, "option"))
	return c.deps.Presenter.ImageWithCommentary(ctx, cmdCtx.Room, out)
}

// ProfileCommand: 王者资料 <名称|营地ID>
type ProfileCommand struct {
	deps *Dependencies
}

func NewProfileCommand(deps *Dependencies) *ProfileCommand {
	return &ProfileCommand{deps: deps}
}

func (c *ProfileCommand) Name() string {
	return domain.CommandProfile.String()
}

func (c *ProfileCommand) Aliases() []string {
	return []string{"资料", "ziliao"}
}

func (c *ProfileCommand) Description() string {
	return "查看营地资料卡"
}

func (c *ProfileCommand) Params() []Param {
	return []Param{{Name: "name", Kind: KindString}}
}

func (c *ProfileCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	out := c.deps.Operations.Profile(ctx, stringParam(params, "name"))
	return c.deps.Presenter.Image(ctx, cmdCtx.Room, out)
}

// HeroPowerCommand: 上榜战力 <英雄> [大区]
type HeroPowerCommand struct {
	deps *Dependencies
}

func NewHeroPowerCommand(deps *Dependencies) *HeroPowerCommand {
	return &HeroPowerCommand{deps: deps}
}

func (c *HeroPowerCommand) Name() string {
	return domain.CommandHeroPower.String()
}

func (c *HeroPowerCommand) Aliases() []string {
	return []string{"战力", "zhanli"}
}

func (c *HeroPowerCommand) Description() string {
	return "查询英雄最低上榜战力"
}

func (c *HeroPowerCommand) Params() []Param {
	return []Param{
		{Name: "hero", Kind: KindString},
		{Name: "type", Kind: KindString, Default: constants.CommandDefaults.HeroRegion},
	}
}

func (c *HeroPowerCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	out := c.deps.Operations.HeroPower(ctx, stringParam(params, "hero"), stringParam(params, "type"))
	return c.deps.Presenter.Text(ctx, cmdCtx.Room, out)
}
