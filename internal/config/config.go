// Package config loads the handler-wide prompting defaults for promptcast.
// Sources are layered with the usual precedence: environment variables
// (PROMPTCAST_ prefix) over a local .env file over an explicit config file
// over built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"promptcast/internal/logger"
	"promptcast/pkg/argtypes"
)

// Settings is the loaded handler configuration.
type Settings struct {
	LogLevel string
	LogFile  string

	Retries        int
	TimeoutSeconds int
	CancelWord     string
	StopWord       string
	Breakout       bool
	InfiniteLimit  int
}

// Load reads settings from the given config file (optional), the local
// .env, and the environment.
func Load(configFile string) (*Settings, error) {
	// A missing .env is not an error, it is simply absent
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded local .env")
	}

	v := viper.New()
	v.SetDefault("log-level", "")
	v.SetDefault("log-file", "")
	v.SetDefault("prompt.retries", 1)
	v.SetDefault("prompt.timeout-seconds", 30)
	v.SetDefault("prompt.cancel-word", "cancel")
	v.SetDefault("prompt.stop-word", "stop")
	v.SetDefault("prompt.breakout", true)
	v.SetDefault("prompt.infinite-limit", 0)

	v.SetEnvPrefix("PROMPTCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return &Settings{
		LogLevel:       v.GetString("log-level"),
		LogFile:        v.GetString("log-file"),
		Retries:        v.GetInt("prompt.retries"),
		TimeoutSeconds: v.GetInt("prompt.timeout-seconds"),
		CancelWord:     v.GetString("prompt.cancel-word"),
		StopWord:       v.GetString("prompt.stop-word"),
		Breakout:       v.GetBool("prompt.breakout"),
		InfiniteLimit:  v.GetInt("prompt.infinite-limit"),
	}, nil
}

// PromptConfig converts the loaded settings into the handler-wide
// PromptConfig layer.
func (s *Settings) PromptConfig() *argtypes.PromptConfig {
	return &argtypes.PromptConfig{
		Retries:    argtypes.Int(s.Retries),
		Time:       argtypes.Duration(time.Duration(s.TimeoutSeconds) * time.Second),
		CancelWord: argtypes.String(s.CancelWord),
		StopWord:   argtypes.String(s.StopWord),
		Breakout:   argtypes.Bool(s.Breakout),
		Limit:      argtypes.Int(s.InfiniteLimit),
	}
}
