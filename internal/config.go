package internal

import "time"

type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL,required=true"`
	APIToken       string        `env:"API_TOKEN"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=30s"`

	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	HistoryTTL     time.Duration `env:"HISTORY_TTL,default=24h"`

	ErrorDismissAfter time.Duration `env:"ERROR_DISMISS_AFTER,default=10s"`
	ThinkingHintAfter time.Duration `env:"THINKING_HINT_AFTER,default=3s"`

	CharWarningThreshold int `env:"CHAR_WARNING_THRESHOLD,default=800"`

	LogLevel  string `env:"LOG_LEVEL,required=true"`
	DebugPort int    `env:"DEBUG_PORT"`
}
