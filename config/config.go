package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Port int `mapstructure:"PORT" validate:"min=1,max=65535"`

	// Ordered list of provider names, earlier providers win on duplicate player ids.
	Providers []string `mapstructure:"PROVIDERS" validate:"min=1"`

	SleeperBase string `mapstructure:"SLEEPER_BASE" validate:"url"`

	SportsDataIOBase      string  `mapstructure:"SPORTSDATAIO_BASE" validate:"url"`
	SportsDataIOAPIKey    string  `mapstructure:"SPORTSDATAIO_API_KEY"`
	SportsDataIORateLimit float64 `mapstructure:"SPORTSDATAIO_RATE_LIMIT" validate:"gt=0"`

	SeasonType     string `mapstructure:"NFL_SEASON_TYPE" validate:"oneof=PRE REG POST"`
	SeasonOverride int    `mapstructure:"NFL_SEASON_NUM" validate:"min=0"`
	WeekOverride   int    `mapstructure:"NFL_WEEK" validate:"min=0"`

	CacheType     string `mapstructure:"CACHE_TYPE" validate:"oneof=memory redis"`
	CacheRedisURL string `mapstructure:"CACHE_REDIS_URL" validate:"required_if=CacheType redis"`

	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT" validate:"gt=0"`

	RefreshSchedule string   `mapstructure:"REFRESH_SCHEDULE" validate:"schedule"`
	WarmPositions   []string `mapstructure:"WARM_POSITIONS"`
	WarmWeek        int      `mapstructure:"WARM_WEEK" validate:"min=1"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=text json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("PROVIDERS", "sleeper")
	v.SetDefault("SLEEPER_BASE", "https://api.sleeper.app/v1")
	v.SetDefault("SPORTSDATAIO_BASE", "https://api.sportsdata.io/v3/nfl")
	v.SetDefault("SPORTSDATAIO_API_KEY", "")
	v.SetDefault("SPORTSDATAIO_RATE_LIMIT", 5.0)
	v.SetDefault("NFL_SEASON_TYPE", "REG")
	v.SetDefault("NFL_SEASON_NUM", 0)
	v.SetDefault("NFL_WEEK", 0)
	v.SetDefault("CACHE_TYPE", "memory")
	v.SetDefault("CACHE_REDIS_URL", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("REFRESH_SCHEDULE", "@hourly")
	v.SetDefault("WARM_POSITIONS", "RB")
	v.SetDefault("WARM_WEEK", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads a .env file if there is one, then the process environment.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// Lists come in from the environment as comma separated strings.
	c.Providers = splitList(v.GetString("PROVIDERS"), strings.ToLower)
	c.WarmPositions = splitList(v.GetString("WARM_POSITIONS"), strings.ToUpper)
	c.SeasonType = strings.ToUpper(strings.TrimSpace(c.SeasonType))
	c.SportsDataIOBase = strings.TrimRight(c.SportsDataIOBase, "/")
	c.SleeperBase = strings.TrimRight(c.SleeperBase, "/")
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("schedule", validateSchedule); err != nil {
		return fmt.Errorf("error registering schedule validation: %w", err)
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// validateSchedule accepts standard five field cron specs and descriptors such
// as @hourly or @every 30m.
func validateSchedule(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

func splitList(s string, normalize func(string) string) []string {
	var res []string
	for _, p := range strings.Split(s, ",") {
		p = normalize(strings.TrimSpace(p))
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
