package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Tables   TablesConfig   `yaml:"tables" mapstructure:"tables"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Metadata MetadataConfig `yaml:"metadata" mapstructure:"metadata"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig locates the two input spreadsheets. Sheet names only apply
// to .xlsx sources.
type SourceConfig struct {
	Cities     string `yaml:"cities" mapstructure:"cities" validate:"required"`
	Prices     string `yaml:"prices" mapstructure:"prices" validate:"required"`
	CitySheet  string `yaml:"city_sheet" mapstructure:"city_sheet"`
	PriceSheet string `yaml:"price_sheet" mapstructure:"price_sheet"`
}

// TablesConfig points at the lookup tables file. Empty uses the built-in tables.
type TablesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig lists the artifacts to write. Only Path is required; the
// others are written when set.
type OutputConfig struct {
	Path    string `yaml:"path" mapstructure:"path" validate:"required"`
	GeoJSON string `yaml:"geojson" mapstructure:"geojson"`
	Archive string `yaml:"archive" mapstructure:"archive"`
	SQLite  string `yaml:"sqlite" mapstructure:"sqlite"`
	Report  string `yaml:"report" mapstructure:"report"`
}

// MetadataConfig is stamped into the output document.
type MetadataConfig struct {
	Title       string `yaml:"title" mapstructure:"title"`
	Description string `yaml:"description" mapstructure:"description"`
	Version     string `yaml:"version" mapstructure:"version" validate:"required"`
}

// ServerConfig configures the read-only API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port" validate:"min=0,max=65535"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRADEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.cities", "data/대항해시대4-도시정보.csv")
	v.SetDefault("source.prices", "data/대항해시대4-Pk-시세표.csv")
	v.SetDefault("source.city_sheet", "")
	v.SetDefault("source.price_sheet", "")
	v.SetDefault("tables.path", "")
	v.SetDefault("output.path", "data/trade_database.json")
	v.SetDefault("output.geojson", "")
	v.SetDefault("output.archive", "")
	v.SetDefault("output.sqlite", "")
	v.SetDefault("output.report", "")
	v.SetDefault("metadata.title", "대항해시대4 PK 통합 교역 데이터베이스")
	v.SetDefault("metadata.description", "도시정보, 시세표, 지역 매핑을 포함한 완전한 교역 데이터")
	v.SetDefault("metadata.version", "2.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a generation run depends on.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return eris.Wrap(err, "config: validate")
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, e.Namespace()+" failed "+e.Tag())
		}
		return eris.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
