package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation
const (
	DefaultBind            = "0.0.0.0:8000"
	DefaultUsername        = "admin"
	DefaultPassword        = "admin123"
	DefaultSessionTTLHours = 24
	DefaultProvider        = "qwen"
	DefaultContentCap      = 2000
	DefaultHistoryCSV      = "history/seo_history.csv"
	DefaultRatingsCSV      = "history/ratings.csv"
	DefaultMaxWebPFiles    = 20
	DefaultOutputDir       = "outputs"
	DefaultUploadDir       = "uploads"
	DefaultRequestTimeout  = 60 * time.Second
)

const (
	defaultDoubaoBaseURL   = "https://ark.cn-beijing.volces.com/api/v3"
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultQwenBaseURL     = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	defaultDoubaoModel   = "ep-20251214170039-ml795"
	defaultDeepSeekModel = "deepseek-chat"
	defaultQwenModel     = "qwen-turbo"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Session    SessionConfig    `yaml:"session"`
	Providers  ProviderConfig   `yaml:"providers"`
	Generation GenerationConfig `yaml:"generation"`
	History    HistoryConfig    `yaml:"history"`
	Uploads    UploadConfig     `yaml:"uploads"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig controls the HTTP listener and path layout.
type ServerConfig struct {
	Bind          string `yaml:"bind"`
	RootPath      string `yaml:"root_path"` // deployment prefix stripped before route matching
	StaticDir     string `yaml:"static_dir"`
	PublicMetrics bool   `yaml:"public_metrics"`
}

// AuthConfig holds the single configured credential pair.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SessionConfig controls session token lifetime.
type SessionConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// TTL returns the session lifetime as a duration.
func (s SessionConfig) TTL() time.Duration {
	hours := s.TTLHours
	if hours <= 0 {
		hours = DefaultSessionTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// ProviderConfig groups the AI backend settings.
type ProviderConfig struct {
	Doubao   ProviderSettings `yaml:"doubao"`
	DeepSeek ProviderSettings `yaml:"deepseek"`
	Qwen     ProviderSettings `yaml:"qwen"`
}

// ProviderSettings configures one AI backend.
type ProviderSettings struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// GenerationConfig controls orchestrator behavior.
type GenerationConfig struct {
	DefaultProvider string   `yaml:"default_provider"`
	Priority        []string `yaml:"priority"`
	ContentCap      int      `yaml:"content_cap"`
	TimeoutSeconds  int      `yaml:"timeout_seconds"`
}

// Timeout returns the per-provider request timeout.
func (g GenerationConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// HistoryConfig controls CSV history logging.
type HistoryConfig struct {
	Path        string `yaml:"path"`
	RatingsPath string `yaml:"ratings_path"`
}

// UploadConfig bounds file uploads.
type UploadConfig struct {
	MaxWebPFiles int    `yaml:"max_webp_files"`
	UploadDir    string `yaml:"upload_dir"`
	OutputDir    string `yaml:"output_dir"`
}

// LoggingConfig controls the structured log destination.
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// Default returns a configuration populated with defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Bind: DefaultBind,
		},
		Auth: AuthConfig{
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		Session: SessionConfig{
			TTLHours: DefaultSessionTTLHours,
		},
		Providers: ProviderConfig{
			Doubao:   ProviderSettings{BaseURL: defaultDoubaoBaseURL, Model: defaultDoubaoModel},
			DeepSeek: ProviderSettings{BaseURL: defaultDeepSeekBaseURL, Model: defaultDeepSeekModel},
			Qwen:     ProviderSettings{BaseURL: defaultQwenBaseURL, Model: defaultQwenModel},
		},
		Generation: GenerationConfig{
			DefaultProvider: DefaultProvider,
			Priority:        []string{"doubao", "deepseek", "qwen"},
			ContentCap:      DefaultContentCap,
			TimeoutSeconds:  int(DefaultRequestTimeout / time.Second),
		},
		History: HistoryConfig{
			Path:        DefaultHistoryCSV,
			RatingsPath: DefaultRatingsCSV,
		},
		Uploads: UploadConfig{
			MaxWebPFiles: DefaultMaxWebPFiles,
			UploadDir:    DefaultUploadDir,
			OutputDir:    DefaultOutputDir,
		},
		Logging: LoggingConfig{
			Dir:   "logs",
			Level: "info",
		},
	}
}

// Load reads configuration from the optional file path, then applies
// environment overrides. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration. The
// variable names match the original deployment surface so existing .env
// files keep working.
func (c *Config) applyEnv() {
	setString(&c.Server.Bind, "SEO_BIND")
	setString(&c.Server.RootPath, "ROOT_PATH")
	setString(&c.Auth.Username, "AUTH_USERNAME")
	setString(&c.Auth.Password, "AUTH_PASSWORD")
	setInt(&c.Session.TTLHours, "SESSION_EXPIRE_HOURS")

	setString(&c.Providers.Doubao.APIKey, "DOUBAO_API_KEY")
	setString(&c.Providers.Doubao.Model, "DOUBAO_MODEL")
	setString(&c.Providers.DeepSeek.APIKey, "DEEPSEEK_API_KEY")
	setString(&c.Providers.Qwen.APIKey, "DASHSCOPE_API_KEY")

	setString(&c.Generation.DefaultProvider, "AI_API_PROVIDER")
}

func setString(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*target = n
		}
	}
}

// KnownProviders lists the configured provider identifiers in priority order.
var KnownProviders = []string{"doubao", "deepseek", "qwen"}

// IsKnownProvider reports whether id names a configured backend.
func IsKnownProvider(id string) bool {
	for _, known := range KnownProviders {
		if id == known {
			return true
		}
	}
	return false
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Bind) == "" {
		return fmt.Errorf("server.bind must not be empty")
	}
	if strings.TrimSpace(c.Auth.Username) == "" || strings.TrimSpace(c.Auth.Password) == "" {
		return fmt.Errorf("auth.username and auth.password must not be empty")
	}
	if c.Session.TTLHours < 0 {
		return fmt.Errorf("session.ttl_hours must not be negative")
	}
	if c.Generation.DefaultProvider != "" && !IsKnownProvider(c.Generation.DefaultProvider) {
		// Unrecognized default falls back to priority order at generation
		// time; flag obvious typos at startup instead.
		return fmt.Errorf("generation.default_provider %q is not a known provider (%s)",
			c.Generation.DefaultProvider, strings.Join(KnownProviders, ", "))
	}
	for _, id := range c.Generation.Priority {
		if !IsKnownProvider(id) {
			return fmt.Errorf("generation.priority contains unknown provider %q", id)
		}
	}
	if c.Uploads.MaxWebPFiles <= 0 {
		c.Uploads.MaxWebPFiles = DefaultMaxWebPFiles
	}
	if c.Generation.ContentCap <= 0 {
		c.Generation.ContentCap = DefaultContentCap
	}
	return nil
}

// ProviderSettingsFor returns the settings block for a provider id.
func (c *Config) ProviderSettingsFor(id string) (ProviderSettings, bool) {
	switch id {
	case "doubao":
		return c.Providers.Doubao, true
	case "deepseek":
		return c.Providers.DeepSeek, true
	case "qwen":
		return c.Providers.Qwen, true
	default:
		return ProviderSettings{}, false
	}
}
