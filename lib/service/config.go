package service

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseUri             string   `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int      `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int      `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int      `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN               string   `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64  `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string   `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string   `envconfig:"LOG_FILE_PATH"`
	Host                    string   `envconfig:"HOST" default:"localhost:8000"`
	Port                    int      `envconfig:"PORT" default:"8000"`
	DefaultRateLimit        int      `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int      `envconfig:"STRICT_RATE_LIMIT" default:"2"`
	BurstRateLimit          int      `envconfig:"BURST_RATE_LIMIT" default:"1"`
	BodyLimit               string   `envconfig:"BODY_LIMIT" default:"10M"`
	CORSAllowOrigins        []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	EnablePrometheus        bool     `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int      `envconfig:"PROMETHEUS_PORT" default:"9092"`
	QRModuleSize            int      `envconfig:"QR_MODULE_SIZE" default:"10"` // pixels per module
	QRScanEnabled           bool     `envconfig:"QR_SCAN_ENABLED" default:"true"`
	RabbitMQUri             string   `envconfig:"RABBITMQ_URI"`
	RabbitMQAssetExchange   string   `envconfig:"RABBITMQ_ASSET_EXCHANGE" default:"assethub_asset"`
}

// LoadConfig reads the configuration from the environment. There are no
// built-in credentials: DATABASE_URI must always be provided.
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, err
	}
	return c, nil
}
