package gok

import (
	"context"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/shape"
	"github.com/kapu/gok-stats-bot-go/internal/template"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// matchFields are the per-match fields the match history card renders.
var matchFields = []string{
	"gametime", "killcnt", "deadcnt", "assistcnt", "gameresult", "mvpcnt", "losemvp", "mapName",
	"oldMasterMatchScore", "newMasterMatchScore", "usedTime", "winNum", "failNum", "roleJobName", "stars", "desc",
	"gradeGame", "heroIcon", "godLikeCnt", "firstBlood", "hero1TripleKillCnt", "hero1UltraKillCnt", "hero1RampageCnt",
	"evaluateUrlV3", "mvpUrlV3",
}

// commentaryFields are handed to the LLM; the prompt explains each one.
var commentaryFields = []string{
	"gametime", "killcnt", "deadcnt", "assistcnt", "gameresult", "mvpcnt", "losemvp", "gradeGame",
}

// MatchHistory fetches recent matches for name (nickname or canonical ID).
// option selects the match category and defaults to "0".
func (s *Service) MatchHistory(ctx context.Context, name, option string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("match_history", out, time.Now())

	if s.cfg.YTAPIToken == "" {
		return out.Fail(errors.KindUnauthenticated)
	}
	if option == "" {
		option = constants.CommandDefaults.MatchOption
	}

	gokID, ok := s.resolver.Resolve(ctx, name)
	if !ok {
		return out.Fail(errors.KindResolutionMiss)
	}

	params := map[string]string{"id": gokID, "option": option, "key": s.cfg.YTAPIToken}
	data, ok := s.fetch(ctx, out, constants.EndpointKeys.MatchHistory, params, "data")
	if !ok {
		return out
	}

	var rows, comments []map[string]any
	err := shapeSafely(func() error {
		var err error
		rows, comments, err = s.shapeMatches(data)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to shape match history",
			zap.String("gokid", gokID),
			zap.Error(err),
		)
		return out.Fail(errors.KindShapingFailure)
	}

	if !s.attachTemplate(ctx, out, template.MatchHistory) {
		return out
	}

	out.Payload["data"] = rows
	if s.cfg.CommentEnabled {
		out.Commentary = &domain.Commentary{
			Records:  comments,
			Provider: s.cfg.CommentProvider,
			Enabled:  true,
		}
	}
	return out.Succeed()
}

// shapeMatches projects the response "list" onto the card and commentary
// allowlists and derives time_str from usedTime.
func (s *Service) shapeMatches(data any) ([]map[string]any, []map[string]any, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, nil, errors.New(errors.KindShapingFailure, "match history data is not an object", nil)
	}
	list, ok := obj["list"]
	if !ok {
		return nil, nil, errors.New(errors.KindShapingFailure, "match history data has no list", nil)
	}

	rows := shape.Truncate(shape.Extract(list, matchFields), constants.ResultLimits.MatchHistoryRows)
	for _, row := range rows {
		seconds, ok := shape.Int(row["usedTime"])
		if !ok {
			return nil, nil, errors.New(errors.KindShapingFailure, "usedTime is not numeric", nil)
		}
		row["time_str"] = shape.FormatDuration(seconds)
	}

	var comments []map[string]any
	if s.cfg.CommentEnabled {
		comments = shape.Truncate(shape.Extract(list, commentaryFields), constants.ResultLimits.CommentaryRows)
	}
	return rows, comments, nil
}
