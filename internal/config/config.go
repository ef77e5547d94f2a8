package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/hub.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`
	RedisURL string     `env:"REDIS_URL"`

	PrimarySourceURL  string        `env:"PRIMARY_SOURCE_URL" envDefault:"./tournaments.json"`
	AppRootURL        string        `env:"APP_ROOT_URL" envDefault:"file:///"`
	FallbackSourceURL string        `env:"FALLBACK_SOURCE_URL" envDefault:"https://raw.githubusercontent.com/pawanxumang/pawanxumang.github.io/main/tournaments.json"`
	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	SyncInterval      time.Duration `env:"SYNC_INTERVAL" envDefault:"0s"`

	AdminPasscode   string        `env:"ADMIN_PASSCODE,required"`
	AdminSessionTTL time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"168h"`

	PayeeLabel     string `env:"PAYEE_LABEL" envDefault:"FFTournamentHub"`
	QRCodeEndpoint string `env:"QR_CODE_ENDPOINT" envDefault:"https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="`
}

// Load reads the given dotenv files (a missing file is not an error) and
// then parses the environment. Variables already set win over the files.
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
