package gok

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/service/database"
	"github.com/kapu/gok-stats-bot-go/internal/service/roster"
	"github.com/kapu/gok-stats-bot-go/internal/template"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	responses map[string]any
	errs      map[string]error
	calls     int
	params    map[string]string
	field     string
}

func (f *fakeFetcher) Call(_ context.Context, key, _ string, params map[string]string, field string) (any, error) {
	f.calls++
	f.params = params
	f.field = field
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.responses[key], nil
}

type fakeTemplates struct {
	missing map[string]bool
}

func (f fakeTemplates) Load(_ context.Context, name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("%w: %s", template.ErrNotFound, name)
	}
	return "<html>" + name + "</html>", nil
}

type fixture struct {
	svc     *Service
	fetcher *fakeFetcher
	store   roster.Store
}

func newFixture(t *testing.T, cfg Config, tmpl fakeTemplates) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "roster.db"), zap.NewNop())
	require.NoError(t, err)
	store, err := roster.NewGormStore(db, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	fetcher := &fakeFetcher{responses: map[string]any{}, errs: map[string]error{}}
	svc := NewService(Dependencies{
		Config:    cfg,
		Resolver:  roster.NewResolver(store, zap.NewNop()),
		Store:     store,
		Fetcher:   fetcher,
		Templates: tmpl,
	})
	return &fixture{svc: svc, fetcher: fetcher, store: store}
}

func tokens() Config {
	return Config{YTAPIToken: "yt", NYAPIToken: "ny"}
}

func match(usedTime any) map[string]any {
	return map[string]any{
		"gametime":   "10-01 20:00",
		"killcnt":    float64(5),
		"deadcnt":    float64(2),
		"assistcnt":  float64(7),
		"gameresult": float64(1),
		"usedTime":   usedTime,
		"extra":      "dropped",
	}
}

func TestHelp(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	out := f.svc.Help(context.Background())
	require.True(t, out.OK())
	assert.Contains(t, out.Template, template.Help)
}

func TestHelpTemplateMissing(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{missing: map[string]bool{template.Help: true}})
	out := f.svc.Help(context.Background())
	assert.False(t, out.OK())
	assert.Equal(t, errors.KindResourceMissing, out.Kind)
	assert.Equal(t, "系统错误：模板文件不存在", out.Message)
}

func TestMatchHistoryWithoutTokenMakesNoCalls(t *testing.T) {
	f := newFixture(t, Config{}, fakeTemplates{})

	out := f.svc.MatchHistory(context.Background(), "123456789", "")
	assert.False(t, out.OK())
	assert.Equal(t, errors.KindUnauthenticated, out.Kind)
	assert.Zero(t, f.fetcher.calls)

	out = f.svc.Profile(context.Background(), "123456789")
	assert.Equal(t, errors.KindUnauthenticated, out.Kind)
	out = f.svc.HeroPower(context.Background(), "李白", "")
	assert.Equal(t, errors.KindUnauthenticated, out.Kind)
	assert.Zero(t, f.fetcher.calls)
}

func TestMatchHistoryResolutionMiss(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	out := f.svc.MatchHistory(context.Background(), "nobody", "0")
	assert.Equal(t, errors.KindResolutionMiss, out.Kind)
	assert.Zero(t, f.fetcher.calls)
}

func TestMatchHistoryShapesRows(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	ctx := context.Background()
	require.NoError(t, f.store.Insert(ctx, domain.RosterEntry{GokID: 123456789, Name: "阿离"}))

	list := make([]any, 0, 30)
	for i := 0; i < 30; i++ {
		list = append(list, match(float64(125)))
	}
	f.fetcher.responses["gok_zhanji"] = map[string]any{"list": list}

	out := f.svc.MatchHistory(ctx, "阿离", "")
	require.True(t, out.OK(), out.Message)
	assert.Equal(t, map[string]string{"id": "123456789", "option": "0", "key": "yt"}, f.fetcher.params)
	assert.Equal(t, "data", f.fetcher.field)

	rows, ok := out.Payload["data"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, rows, 25)
	assert.Equal(t, "2:05", rows[0]["time_str"])
	assert.Len(t, rows[0], len(matchFields)+1)
	assert.NotContains(t, rows[0], "extra")
	assert.Nil(t, out.Commentary)
}

func TestMatchHistoryCommentary(t *testing.T) {
	cfg := tokens()
	cfg.CommentEnabled = true
	cfg.CommentProvider = "gemini"
	f := newFixture(t, cfg, fakeTemplates{})

	list := make([]any, 0, 12)
	for i := 0; i < 12; i++ {
		list = append(list, match(float64(61)))
	}
	f.fetcher.responses["gok_zhanji"] = map[string]any{"list": list}

	out := f.svc.MatchHistory(context.Background(), "123456789", "1")
	require.True(t, out.OK())
	require.NotNil(t, out.Commentary)
	assert.True(t, out.Commentary.Enabled)
	assert.Equal(t, "gemini", out.Commentary.Provider)
	assert.Len(t, out.Commentary.Records, 10)
	assert.Len(t, out.Commentary.Records[0], len(commentaryFields))
	assert.Equal(t, "1", f.fetcher.params["option"])
}

func TestMatchHistoryShapingFailures(t *testing.T) {
	cases := map[string]any{
		"no list":           map[string]any{"total": float64(0)},
		"not an object":     []any{"x"},
		"usedTime missing":  map[string]any{"list": []any{map[string]any{"killcnt": float64(1)}}},
		"usedTime string":   map[string]any{"list": []any{match("125")}},
		"usedTime fraction": map[string]any{"list": []any{match(125.5)}},
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, tokens(), fakeTemplates{})
			f.fetcher.responses["gok_zhanji"] = resp

			out := f.svc.MatchHistory(context.Background(), "123456789", "0")
			assert.Equal(t, errors.KindShapingFailure, out.Kind)
			assert.Equal(t, "处理接口返回信息时出错", out.Message)
			assert.Empty(t, out.Payload)
		})
	}
}

func TestMatchHistoryRemoteFailure(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.errs["gok_zhanji"] = errors.NewAPIError("boom", 502, nil)

	out := f.svc.MatchHistory(context.Background(), "123456789", "0")
	assert.Equal(t, errors.KindRemoteFailure, out.Kind)
	assert.Equal(t, "获取接口信息失败", out.Message)
}

func TestMatchHistoryEmptyData(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.responses["gok_zhanji"] = map[string]any{}

	out := f.svc.MatchHistory(context.Background(), "123456789", "0")
	assert.Equal(t, errors.KindRemoteFailure, out.Kind)
}

func TestMatchHistoryTemplateMissing(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{missing: map[string]bool{template.MatchHistory: true}})
	f.fetcher.responses["gok_zhanji"] = map[string]any{"list": []any{match(float64(30))}}

	out := f.svc.MatchHistory(context.Background(), "123456789", "0")
	assert.Equal(t, errors.KindResourceMissing, out.Kind)
	assert.Empty(t, out.Template)
}

func TestProfileEncodesImage(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.responses["gok_ziliao"] = []byte{0x89, 'P', 'N', 'G'}

	out := f.svc.Profile(context.Background(), "123456789")
	require.True(t, out.OK())
	assert.Equal(t, "", f.fetcher.field)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'}), out.Payload["img_base64"])
	assert.Contains(t, out.Template, template.Profile)
}

func TestHeroPowerText(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.responses["gok_zhanli"] = map[string]any{"info": map[string]any{
		"name": "李白", "province": "广东省", "provincePower": float64(9527),
		"city": "深圳市", "cityPower": "6000", "area": "南山区", "areaPower": "4000",
		"updatetime": "2024-01-01",
	}}

	out := f.svc.HeroPower(context.Background(), "李白", "")
	require.True(t, out.OK())
	assert.Equal(t, map[string]string{"hero": "李白", "type": "aqq", "apikey": "ny"}, f.fetcher.params)
	assert.Equal(t, "英雄的最低上榜地区战力\n"+
		"英雄：李白\n"+
		"省标：广东省--战力：9527\n"+
		"市标：深圳市--战力：6000\n"+
		"区标：南山区--战力：4000\n"+
		"数据更新时间：2024-01-01\n", out.Text())
}

func TestHeroPowerMissingInfo(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.responses["gok_zhanli"] = map[string]any{"info": map[string]any{"name": "李白"}}

	out := f.svc.HeroPower(context.Background(), "李白", "wx")
	assert.Equal(t, errors.KindShapingFailure, out.Kind)
}

func TestHeroPowerNullFieldRendersEmpty(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	f.fetcher.responses["gok_zhanli"] = map[string]any{"info": map[string]any{
		"name": "李白", "province": "广东省", "provincePower": float64(9527),
		"city": "深圳市", "cityPower": "6000", "area": nil, "areaPower": nil,
		"updatetime": "2024-01-01",
	}}

	out := f.svc.HeroPower(context.Background(), "李白", "")
	require.True(t, out.OK())
	assert.Contains(t, out.Text(), "区标：--战力：\n")
	assert.NotContains(t, out.Text(), "<nil>")
}

func TestRosterAllEmpty(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	out := f.svc.RosterAll(context.Background())
	assert.Equal(t, errors.KindEmpty, out.Kind)
	assert.Equal(t, "未找到角色数据", out.Message)
}

func TestRosterAddListSearch(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	ctx := context.Background()

	out := f.svc.RosterAdd(ctx, 123456789, "阿离")
	require.True(t, out.OK())
	assert.Equal(t, "角色添加成功\n王者营地ID：123456789\n角色名称：阿离\n", out.Text())
	require.True(t, f.svc.RosterAdd(ctx, 987654321, "小乔").OK())

	out = f.svc.RosterAll(ctx)
	require.True(t, out.OK())
	assert.Len(t, out.Payload["lists"], 2)
	assert.Contains(t, out.Template, template.Roster)

	out = f.svc.RosterSearch(ctx, "乔")
	require.True(t, out.OK())
	lists := out.Payload["lists"].([]map[string]any)
	require.Len(t, lists, 1)
	assert.Equal(t, "小乔", lists[0]["name"])

	out = f.svc.RosterSearch(ctx, "nobody")
	assert.Equal(t, errors.KindEmpty, out.Kind)
}

func TestRosterAddRejectsShortID(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	out := f.svc.RosterAdd(context.Background(), 12345, "阿离")
	assert.Equal(t, errors.KindValidation, out.Kind)

	n, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRosterUpdateMissingLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	ctx := context.Background()
	require.NoError(t, f.store.Insert(ctx, domain.RosterEntry{GokID: 123456789, Name: "阿离"}))

	out := f.svc.RosterUpdate(ctx, 999999999, "小乔")
	assert.Equal(t, errors.KindNotFound, out.Kind)
	assert.Equal(t, "没有当前ID", out.Message)

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	found, err := f.store.FindByID(ctx, 123456789)
	require.NoError(t, err)
	assert.Equal(t, "阿离", found.Name)
}

func TestRosterUpdateAndDelete(t *testing.T) {
	f := newFixture(t, tokens(), fakeTemplates{})
	ctx := context.Background()
	require.NoError(t, f.store.Insert(ctx, domain.RosterEntry{GokID: 123456789, Name: "阿离"}))

	out := f.svc.RosterUpdate(ctx, 123456789, "公孙离")
	require.True(t, out.OK())
	assert.Equal(t, "角色修改成功\n王者营地ID：123456789\n角色名称：公孙离\n", out.Text())

	out = f.svc.RosterDelete(ctx, 123456789)
	require.True(t, out.OK())
	assert.Equal(t, "角色删除成功。王者营地ID：123456789", out.Text())

	out = f.svc.RosterDelete(ctx, 123456789)
	assert.Equal(t, errors.KindNotFound, out.Kind)
}

func TestShapeSafelyRecoversPanic(t *testing.T) {
	err := shapeSafely(func() error {
		var m map[string]any
		m["x"] = 1
		return nil
	})
	assert.Equal(t, errors.KindShapingFailure, errors.KindOf(err))
}
