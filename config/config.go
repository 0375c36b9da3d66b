package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode string `mapstructure:"mode"`
	App  struct {
		Name                 string  `mapstructure:"name"`
		Version              string  `mapstructure:"version"`
		PricePerItinerary    float64 `mapstructure:"pricePerItinerary"`
		BufferFundPercentage int     `mapstructure:"bufferFundPercentage"`
	} `mapstructure:"app"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
		CorsOrigins string        `mapstructure:"corsOrigins"`
	} `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Security SecurityConfig `mapstructure:"security"`
	Export   ExportConfig   `mapstructure:"export"`
	RateLimit struct {
		GeneratePerMinute int `mapstructure:"generatePerMinute"`
	} `mapstructure:"ratelimit"`
}

type GeminiConfig struct {
	APIKey          string  `mapstructure:"apiKey"`
	Model           string  `mapstructure:"model"`
	Temperature     float32 `mapstructure:"temperature"`
	TopP            float32 `mapstructure:"topP"`
	TopK            float32 `mapstructure:"topK"`
	MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
}

type StripeConfig struct {
	SecretKey      string `mapstructure:"secretKey"`
	PublishableKey string `mapstructure:"publishableKey"`
	WebhookSecret  string `mapstructure:"webhookSecret"`
}

type SecurityConfig struct {
	SecretKey                string `mapstructure:"secretKey"`
	Algorithm                string `mapstructure:"algorithm"`
	AccessTokenExpireMinutes int    `mapstructure:"accessTokenExpireMinutes"`
}

type ExportConfig struct {
	PDFOutputDir   string `mapstructure:"pdfOutputDir"`
	RequirePayment bool   `mapstructure:"requirePayment"`
}

// InitConfig reads config.yml from the usual locations, falls back to the
// embedded copy and lets environment variables override any key
// (gemini.apiKey -> GEMINI_APIKEY, or the legacy names bound below).
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return Config{}, err
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// bindLegacyEnv keeps the flat variable names used by existing deployments
// (Render/Vercel dashboards) working next to the dotted viper keys.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"mode":                              {"APP_ENV", "ENVIRONMENT"},
		"app.pricePerItinerary":             {"PRICE_PER_ITINERARY"},
		"app.bufferFundPercentage":          {"BUFFER_FUND_PERCENTAGE"},
		"server.HTTPPort":                   {"PORT"},
		"server.corsOrigins":                {"CORS_ORIGINS"},
		"gemini.apiKey":                     {"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY"},
		"stripe.secretKey":                  {"STRIPE_SECRET_KEY"},
		"stripe.publishableKey":             {"STRIPE_PUBLISHABLE_KEY"},
		"stripe.webhookSecret":              {"STRIPE_WEBHOOK_SECRET"},
		"security.secretKey":                {"SECRET_KEY"},
		"security.algorithm":                {"ALGORITHM"},
		"security.accessTokenExpireMinutes": {"ACCESS_TOKEN_EXPIRE_MINUTES"},
		"export.pdfOutputDir":               {"PDF_OUTPUT_DIR"},
		"repositories.postgres.host":        {"POSTGRES_HOST"},
		"repositories.postgres.port":        {"POSTGRES_PORT"},
		"repositories.postgres.username":    {"POSTGRES_USER"},
		"repositories.postgres.password":    {"POSTGRES_PASSWORD"},
		"repositories.postgres.db":          {"POSTGRES_DB"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// CORSOrigins parses the comma separated origin list. A lone "*" allows all.
func (c *Config) CORSOrigins() []string {
	raw := strings.TrimSpace(c.Server.CorsOrigins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// PostgresEnabled reports whether a database was configured. Without one the
// service keeps itineraries in memory.
func (c *Config) PostgresEnabled() bool {
	return c.Repositories.Postgres.Host != ""
}

// PaymentsEnabled reports whether Stripe credentials are present.
func (c *Config) PaymentsEnabled() bool {
	return c.Stripe.SecretKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Mode == "" || c.Mode == "development"
}
