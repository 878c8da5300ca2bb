package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from MOODSCALE_* environment variables.
type Config struct {
	Port string `default:"8080"`

	SpotifyID          string `split_words:"true"`
	SpotifySecret      string `split_words:"true"`
	SpotifyRedirectURL string `split_words:"true" default:"http://localhost:8080/auth/spotify/callback"`

	// StateSecret signs the OAuth state parameter.
	StateSecret string `split_words:"true"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4"`

	// TokenStore is one of memory, firestore, postgres or sqlite.
	TokenStore       string `split_words:"true" default:"memory"`
	DatabaseURL      string `split_words:"true"`
	SQLitePath       string `envconfig:"SQLITE_PATH" default:"moodscale.db"`
	FirestoreProject string `split_words:"true"`

	TopArtists   int `split_words:"true" default:"20"`
	TopGenres    int `split_words:"true" default:"10"`
	RecentTracks int `split_words:"true" default:"50"`

	MusicbrainzFallback bool `split_words:"true"`

	RateLimitPerMinute int `split_words:"true" default:"6"`
	// TrustProxy keys rate limits on X-Forwarded-For. Enable only behind a
	// proxy that sets the header.
	TrustProxy bool `split_words:"true"`
}

// Load processes the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("moodscale", &cfg)
	return cfg, err
}

func ProvideConfig() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}

var Options = ProvideConfig
