package gok

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/template"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Help renders the command overview.
func (s *Service) Help(ctx context.Context) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("help", out, time.Now())

	if !s.attachTemplate(ctx, out, template.Help) {
		return out
	}
	return out.Succeed()
}

// RosterAll lists every registered player.
func (s *Service) RosterAll(ctx context.Context) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("roster_all", out, time.Now())

	entries, err := s.store.All(ctx)
	if err != nil {
		s.logger.Error("Failed to list roster", zap.Error(err))
		return out.Fail(errors.KindStorage)
	}
	return s.rosterTable(ctx, out, entries)
}

// RosterSearch lists players whose ID or nickname contains token.
func (s *Service) RosterSearch(ctx context.Context, token string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("roster_search", out, time.Now())

	entries, err := s.resolver.Search(ctx, token)
	if err != nil {
		s.logger.Error("Failed to search roster",
			zap.String("token", token),
			zap.Error(err),
		)
		return out.Fail(errors.KindStorage)
	}
	return s.rosterTable(ctx, out, entries)
}

func (s *Service) rosterTable(ctx context.Context, out *domain.Outcome, entries []domain.RosterEntry) *domain.Outcome {
	if len(entries) == 0 {
		return out.Fail(errors.KindEmpty)
	}
	if !s.attachTemplate(ctx, out, template.Roster) {
		return out
	}

	lists := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		lists = append(lists, e.ToMap())
	}
	out.Payload["lists"] = lists
	return out.Succeed()
}

// RosterAdd registers a nickname for a canonical ID. Duplicate IDs are allowed.
func (s *Service) RosterAdd(ctx context.Context, gokID int64, name string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("roster_add", out, time.Now())

	if gokID < domain.CanonicalIDThreshold || name == "" {
		return out.Fail(errors.KindValidation)
	}

	if err := s.store.Insert(ctx, domain.RosterEntry{GokID: gokID, Name: name}); err != nil {
		s.logger.Error("Failed to add roster entry",
			zap.Int64("gokid", gokID),
			zap.Error(err),
		)
		return out.Fail(errors.KindStorage)
	}

	out.SetText(fmt.Sprintf("角色添加成功\n王者营地ID：%d\n角色名称：%s\n", gokID, name))
	return out.Succeed()
}

// RosterUpdate renames every row registered under gokID.
func (s *Service) RosterUpdate(ctx context.Context, gokID int64, name string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("roster_update", out, time.Now())

	if !s.rosterHas(ctx, out, gokID) {
		return out
	}

	if err := s.store.UpdateName(ctx, gokID, name); err != nil {
		s.logger.Error("Failed to update roster entry",
			zap.Int64("gokid", gokID),
			zap.Error(err),
		)
		return out.Fail(errors.KindStorage)
	}

	out.SetText(fmt.Sprintf("角色修改成功\n王者营地ID：%d\n角色名称：%s\n", gokID, name))
	return out.Succeed()
}

// RosterDelete removes every row registered under gokID.
func (s *Service) RosterDelete(ctx context.Context, gokID int64) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("roster_delete", out, time.Now())

	if !s.rosterHas(ctx, out, gokID) {
		return out
	}

	if err := s.store.Delete(ctx, gokID); err != nil {
		s.logger.Error("Failed to delete roster entry",
			zap.Int64("gokid", gokID),
			zap.Error(err),
		)
		return out.Fail(errors.KindStorage)
	}

	out.SetText(fmt.Sprintf("角色删除成功。王者营地ID：%d", gokID))
	return out.Succeed()
}

// rosterHas checks that gokID is registered before a mutation.
func (s *Service) rosterHas(ctx context.Context, out *domain.Outcome, gokID int64) bool {
	entry, err := s.store.FindByID(ctx, gokID)
	if err != nil {
		s.logger.Error("Failed to look up roster entry",
			zap.Int64("gokid", gokID),
			zap.Error(err),
		)
		out.Fail(errors.KindStorage)
		return false
	}
	if entry == nil {
		out.Fail(errors.KindNotFound)
		return false
	}
	return true
}
