package constants

import "time"

const Version = "0.3.1"

// API roots. Both resolve against the configured server origin:
// resource endpoints live under /api/v1, auth endpoints under /api.
const (
	ResourceRoot = "/api/v1"
	AuthRoot     = "/api"
)

// Auth endpoints (relative to AuthRoot).
const (
	EndpointSignUp  = "/auth/signup"
	EndpointSignIn  = "/auth/signin"
	EndpointRefresh = "/auth/refresh"
	EndpointLogout  = "/auth/logout"
)

// Network defaults
const (
	DefaultServerURL   = "http://localhost:8080"
	HTTPTimeout        = 15 * time.Second
	WSHandshakeTimeout = 10 * time.Second
	WSBufferSize       = 4096
	MaxWSMessageSize   = 1 << 20 // room events are small JSON
)

// Realtime session settings. The server expects a literal "ping" text
// frame as the liveness probe; reconnects use a fixed delay, no backoff.
const (
	PingInterval   = 30 * time.Second
	PingPayload    = "ping"
	ReconnectDelay = 3 * time.Second
)

// Credential storage
const (
	TokenFileName = "access_token"
	RedisTokenKey = "access_token"
	RedisPrefix   = "voteroom:"
)

// Time formats
const (
	TimeFormatShort = "15:04:05"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
)
