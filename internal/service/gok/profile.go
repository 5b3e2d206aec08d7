package gok

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/template"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Profile fetches the profile card image for name and embeds it as base64.
func (s *Service) Profile(ctx context.Context, name string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("profile", out, time.Now())

	if s.cfg.YTAPIToken == "" {
		return out.Fail(errors.KindUnauthenticated)
	}

	gokID, ok := s.resolver.Resolve(ctx, name)
	if !ok {
		return out.Fail(errors.KindResolutionMiss)
	}

	params := map[string]string{"id": gokID, "key": s.cfg.YTAPIToken}
	data, ok := s.fetch(ctx, out, constants.EndpointKeys.Profile, params, "")
	if !ok {
		return out
	}

	raw, ok := data.([]byte)
	if !ok {
		s.logger.Error("Profile response is not binary",
			zap.String("gokid", gokID),
		)
		return out.Fail(errors.KindShapingFailure)
	}

	if !s.attachTemplate(ctx, out, template.Profile) {
		return out
	}

	out.Payload["img_base64"] = base64.StdEncoding.EncodeToString(raw)
	return out.Succeed()
}
