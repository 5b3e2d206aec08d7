package constants

import "time"

var EndpointKeys = struct {
	MatchHistory string
	Profile      string
	HeroPower    string
}{
	MatchHistory: "gok_zhanji",
	Profile:      "gok_ziliao",
	HeroPower:    "gok_zhanli",
}

var ResultLimits = struct {
	MatchHistoryRows int
	CommentaryRows   int
}{
	MatchHistoryRows: 25, // rows rendered on the match history card
	CommentaryRows:   10, // matches handed to the LLM for commentary
}

var CommandDefaults = struct {
	MatchOption string
	HeroRegion  string
	Prefix      string
}{
	MatchOption: "0",
	HeroRegion:  "aqq",
	Prefix:      "王者",
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	HandshakeTimeout     time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
	HandshakeTimeout:     10 * time.Second,
}

var HTTPConfig = struct {
	ChatTimeout   time.Duration
	RenderTimeout time.Duration
	StatsTimeout  time.Duration
}{
	ChatTimeout:   10 * time.Second,
	RenderTimeout: 30 * time.Second,
	StatsTimeout:  15 * time.Second,
}

var CommentaryConfig = struct {
	Temperature      float32
	MaxOutputTokens  int
	Timeout          time.Duration
	BreakerThreshold int
	BreakerReset     time.Duration
}{
	Temperature:      0.9,
	MaxOutputTokens:  1024,
	Timeout:          30 * time.Second,
	BreakerThreshold: 3,
	BreakerReset:     2 * time.Minute,
}

var ShutdownConfig = struct {
	ListenerStopTimeout time.Duration
}{
	ListenerStopTimeout: 5 * time.Second,
}
