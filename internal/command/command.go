package command

import (
	"context"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
)

type Command interface {
	Name() string
	Aliases() []string
	Description() string
	Params() []Param
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// Operations is the business surface commands call into. See gok.Service.
type Operations interface {
	Help(ctx context.Context) *domain.Outcome
	MatchHistory(ctx context.Context, name, option string) *domain.Outcome
	Profile(ctx context.Context, name string) *domain.Outcome
	HeroPower(ctx context.Context, hero, region string) *domain.Outcome
	RosterAll(ctx context.Context) *domain.Outcome
	RosterSearch(ctx context.Context, token string) *domain.Outcome
	RosterAdd(ctx context.Context, gokID int64, name string) *domain.Outcome
	RosterUpdate(ctx context.Context, gokID int64, name string) *domain.Outcome
	RosterDelete(ctx context.Context, gokID int64) *domain.Outcome
}

// Presenter delivers an outcome in one of three styles. See adapter.Presenter.
type Presenter interface {
	Text(ctx context.Context, room string, out *domain.Outcome) error
	Image(ctx context.Context, room string, out *domain.Outcome) error
	ImageWithCommentary(ctx context.Context, room string, out *domain.Outcome) error
}

type Dependencies struct {
	Operations Operations
	Presenter  Presenter
}

// All builds every command in help order.
func All(deps *Dependencies) []Command {
	return []Command{
		NewHelpCommand(deps),
		NewMatchHistoryCommand(deps),
		NewProfileCommand(deps),
		NewHeroPowerCommand(deps),
		NewRosterAllCommand(deps),
		NewRosterAddCommand(deps),
		NewRosterUpdateCommand(deps),
		NewRosterDeleteCommand(deps),
		NewRosterSearchCommand(deps),
	}
}
