package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var Config Configuration

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendPreview  = "preview"
)

type Configuration struct {
	LogLevel       string   `json:"logLevel"`
	LogFile        string   `json:"logFile"`
	Server         string   `json:"server"`
	Frontend       string   `json:"frontend"`
	Board          string   `json:"board"`
	PreviewAddr    string   `json:"previewAddr"`
	Tolerance      float64  `json:"tolerance"`
	BlinkDelay     Duration `json:"blinkDelay"`
	RequestTimeout Duration `json:"requestTimeout"`
	PollInterval   Duration `json:"pollInterval"`
	LogLines       int      `json:"logLines"`
}

// Duration reads "200ms" style strings or plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("duration: %s", b)
		}
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func Default() Configuration {
	return Configuration{
		LogLevel:       "info",
		Server:         "http://127.0.0.1:8000",
		Frontend:       FrontendWindow,
		PreviewAddr:    "127.0.0.1:5175",
		Tolerance:      40,
		BlinkDelay:     Duration(200 * time.Millisecond),
		RequestTimeout: Duration(10 * time.Second),
		LogLines:       50,
	}
}

// LoadConfig reads the JSON config at path (config.json when empty), then
// applies .env and environment overrides. A missing or broken file falls
// back to defaults.
func LoadConfig(path string) {
	c := Default()

	if path == "" {
		path = "config.json"
	}
	cf, err := os.ReadFile(path)
	if err != nil {
		log.Info().Str("path", path).Msg("failed to open config at path provided, using default config instead")
	} else if err := json.Unmarshal(cf, &c); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read configuration, using default config instead")
		c = Default()
	}

	_ = godotenv.Load()
	applyEnv(&c)

	Config = c
}

func applyEnv(c *Configuration) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("LOG_LEVEL", &c.LogLevel)
	str("DJIRGHA_LOG_FILE", &c.LogFile)
	str("DJIRGHA_SERVER", &c.Server)
	str("DJIRGHA_FRONTEND", &c.Frontend)
	str("DJIRGHA_BOARD", &c.Board)
	str("DJIRGHA_PREVIEW_ADDR", &c.PreviewAddr)

	if v := os.Getenv("DJIRGHA_POLL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = Duration(d)
		} else {
			log.Warn().Str("value", v).Msg("ignoring bad DJIRGHA_POLL")
		}
	}
	if v := os.Getenv("DJIRGHA_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Tolerance = f
		}
	}
}

func (c Configuration) Validate() error {
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal, FrontendPreview:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	if c.BlinkDelay < 0 || c.PollInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
