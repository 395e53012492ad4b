package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

var ErrMissingSuperheroKey = errors.New("SUPERHERO_API_KEY is not set")

const (
	DefaultSuperheroBaseURL = "https://superheroapi.com/api"
	DefaultComicVineBaseURL = "https://comicvine.gamespot.com/api"
)

// Config is read once at startup and passed by value afterwards.
type Config struct {
	Env  string
	Port string

	LogLevel string

	SuperheroAPIKey  string
	SuperheroBaseURL string
	ComicVineAPIKey  string
	ComicVineBaseURL string

	ImageProxyURL   string
	UpstreamTimeout time.Duration
	FanOutLimit     int
	MediaLimit      int
	SortLocale      language.Tag

	GrpcAddr   string
	MirrorAddr string
	MirrorData string
}

// IsProduction reports whether internal error details must be hidden.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SuperheroURL is the upstream base with the api key path segment appended.
func (c Config) SuperheroURL() string {
	return strings.TrimRight(c.SuperheroBaseURL, "/") + "/" + c.SuperheroAPIKey
}

func (c Config) ComicVineConfigured() bool {
	return c.ComicVineAPIKey != ""
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SUPERHERO_BASE_URL", DefaultSuperheroBaseURL)
	v.SetDefault("COMICVINE_BASE_URL", DefaultComicVineBaseURL)
	v.SetDefault("IMAGE_PROXY_URL", DefaultImageProxyPrefix)
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("FANOUT_LIMIT", 6)
	v.SetDefault("MEDIA_LIMIT", 20)
	v.SetDefault("SORT_LOCALE", "en")
	v.SetDefault("GRPC_ADDR", ":50051")
	v.SetDefault("MIRROR_ADDR", ":9000")
	v.SetDefault("MIRROR_DATA", "data/mirror.json")
	return v
}

// LoadConfig reads .env (when present) and the process environment. It fails
// when the superhero api key is missing, since every superhero route needs it.
func LoadConfig() (Config, error) {
	cfg, err := LoadConfigUnchecked()
	if err != nil {
		return cfg, err
	}
	if cfg.SuperheroAPIKey == "" {
		return cfg, ErrMissingSuperheroKey
	}
	return cfg, nil
}

// LoadConfigUnchecked is LoadConfig without the api key requirement, for
// tools that never call the superhero api themselves.
func LoadConfigUnchecked() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := newViper()

	timeout, err := time.ParseDuration(v.GetString("UPSTREAM_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q", v.GetString("UPSTREAM_TIMEOUT"))
	}

	locale, err := language.Parse(v.GetString("SORT_LOCALE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SORT_LOCALE: %w", err)
	}

	cfg := Config{
		Env:              v.GetString("APP_ENV"),
		Port:             v.GetString("PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		SuperheroAPIKey:  strings.TrimSpace(v.GetString("SUPERHERO_API_KEY")),
		SuperheroBaseURL: v.GetString("SUPERHERO_BASE_URL"),
		ComicVineAPIKey:  strings.TrimSpace(v.GetString("COMICVINE_API_KEY")),
		ComicVineBaseURL: v.GetString("COMICVINE_BASE_URL"),
		ImageProxyURL:    v.GetString("IMAGE_PROXY_URL"),
		UpstreamTimeout:  timeout,
		FanOutLimit:      max(v.GetInt("FANOUT_LIMIT"), 1),
		MediaLimit:       max(v.GetInt("MEDIA_LIMIT"), 1),
		SortLocale:       locale,
		GrpcAddr:         v.GetString("GRPC_ADDR"),
		MirrorAddr:       v.GetString("MIRROR_ADDR"),
		MirrorData:       v.GetString("MIRROR_DATA"),
	}
	return cfg, nil
}
