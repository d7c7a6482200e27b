package config

// Config holds all configuration for the application.
type Config struct {
	Port          string         `env:"PORT" envDefault:"8080"`
	BaseURL       string         `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel      string         `env:"LOG_LEVEL" envDefault:"info"`
	SessionSecret string         `env:"SESSION_SECRET,required"`
	SecureCookies bool           `env:"SECURE_COOKIES" envDefault:"true"`
	Database      DatabaseConfig `envPrefix:"DB_"`
	Slack         SlackConfig    `envPrefix:"SLACK_"`
	PubSub        PubSubConfig   `envPrefix:"PUBSUB_"`
	SES           SESConfig      `envPrefix:"SES_"`
}

type DatabaseConfig struct {
	Driver    string `env:"DRIVER" envDefault:"sqlite"`
	Path      string `env:"PATH" envDefault:"league.db"`
	URL       string `env:"URL"`
	AuthToken string `env:"AUTH_TOKEN"`
}

type SlackConfig struct {
	Token         string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	SigningSecret string `env:"SIGNING_SECRET"`
}

type PubSubConfig struct {
	ProjectID   string `env:"PROJECT_ID"`
	TopicPrefix string `env:"TOPIC_PREFIX" envDefault:"class-league-"`
}

type SESConfig struct {
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Region          string `env:"REGION"`
	Sender          string `env:"SENDER"`
}

// Enabled reports whether a Slack channel is configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

// Enabled reports whether a Pub/Sub project is configured.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != ""
}

// Enabled reports whether SES delivery is configured.
func (c SESConfig) Enabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Region != "" && c.Sender != ""
}

// DSN returns the data source for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" || c.Driver == "" {
		return c.Path
	}
	return c.URL
}
