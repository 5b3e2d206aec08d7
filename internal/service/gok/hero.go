package gok

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/shape"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// HeroPower reports the lowest combat power that still places hero on the
// province, city and district boards of region.
func (s *Service) HeroPower(ctx context.Context, hero, region string) *domain.Outcome {
	out := domain.NewOutcome()
	defer s.observe("hero_power", out, time.Now())

	if s.cfg.NYAPIToken == "" {
		return out.Fail(errors.KindUnauthenticated)
	}
	if region == "" {
		region = constants.CommandDefaults.HeroRegion
	}

	params := map[string]string{"hero": hero, "type": region, "apikey": s.cfg.NYAPIToken}
	data, ok := s.fetch(ctx, out, constants.EndpointKeys.HeroPower, params, "data")
	if !ok {
		return out
	}

	var power domain.HeroPower
	err := shapeSafely(func() error {
		var err error
		power, err = parseHeroPower(data)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to shape hero power",
			zap.String("hero", hero),
			zap.String("region", region),
			zap.Error(err),
		)
		return out.Fail(errors.KindShapingFailure)
	}

	out.SetText(formatHeroPower(power))
	return out.Succeed()
}

func parseHeroPower(data any) (domain.HeroPower, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return domain.HeroPower{}, errors.New(errors.KindShapingFailure, "hero power data is not an object", nil)
	}
	info, ok := obj["info"].(map[string]any)
	if !ok {
		return domain.HeroPower{}, errors.New(errors.KindShapingFailure, "hero power data has no info object", nil)
	}

	var missing []string
	field := func(key string) string {
		v, present := info[key]
		if !present {
			missing = append(missing, key)
			return ""
		}
		if v == nil {
			return ""
		}
		if text, ok := shape.String(v); ok {
			return text
		}
		return fmt.Sprint(v)
	}

	power := domain.HeroPower{
		Name:          field("name"),
		Province:      field("province"),
		ProvincePower: field("provincePower"),
		City:          field("city"),
		CityPower:     field("cityPower"),
		Area:          field("area"),
		AreaPower:     field("areaPower"),
		UpdateTime:    field("updatetime"),
	}
	if len(missing) > 0 {
		return domain.HeroPower{}, errors.New(errors.KindShapingFailure,
			"hero power info missing "+strings.Join(missing, ","), nil)
	}
	return power, nil
}

func formatHeroPower(p domain.HeroPower) string {
	var sb strings.Builder
	sb.WriteString("英雄的最低上榜地区战力\n")
	fmt.Fprintf(&sb, "英雄：%s\n", p.Name)
	fmt.Fprintf(&sb, "省标：%s--战力：%s\n", p.Province, p.ProvincePower)
	fmt.Fprintf(&sb, "市标：%s--战力：%s\n", p.City, p.CityPower)
	fmt.Fprintf(&sb, "区标：%s--战力：%s\n", p.Area, p.AreaPower)
	fmt.Fprintf(&sb, "数据更新时间：%s\n", p.UpdateTime)
	return sb.String()
}
