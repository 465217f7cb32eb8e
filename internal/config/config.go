package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralParams  GeneralParams
	TelegramParams TelegramParams
	MainDBParams   MainDBParams
	ValkeyParams   ValkeyParams
	S3Params       S3Params
	SearchParams   SearchParams
}

type GeneralParams struct {
	Env         string
	SecretKey   string
	HTTPaddress string
}

type TelegramParams struct {
	Token       string
	PollTimeout int
}

type MainDBParams struct {
	Username string
	Password string
	Name     string
	Port     int
	Host     string
	Timeout  int
}

type ValkeyParams struct {
	Host          string
	Password      string
	WindowSeconds int
	MaxPerWindow  int
}

type S3Params struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

type SearchParams struct {
	PageSize        int
	ExactMatchScore float64
}

type ConfigManager struct {
	v      *viper.Viper
	config *Config
}

// NewConfigManager creates new config manager that handles
// all viper config options and loads a config from yaml
func NewConfigManager(configPath string) (*ConfigManager, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("search_params.page_size", 3)
	v.SetDefault("search_params.exact_match_score", 2.0)
	v.SetDefault("telegram_params.poll_timeout", 10)
	v.SetDefault("valkey_params.window_seconds", 10)
	v.SetDefault("valkey_params.max_per_window", 20)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cm := &ConfigManager{v: v}

	if err := cm.loadConfig(); err != nil {
		return nil, err
	}

	return cm, nil
}

// Extracting data from yaml file and loading into Config
func (cm *ConfigManager) loadConfig() error {
	cm.config = &Config{
		GeneralParams: GeneralParams{
			Env:         cm.v.GetString("general_params.env"),
			SecretKey:   cm.v.GetString("general_params.secret_key"),
			HTTPaddress: cm.v.GetString("general_params.http_server_address"),
		},
		TelegramParams: TelegramParams{
			Token:       cm.v.GetString("telegram_params.token"),
			PollTimeout: cm.v.GetInt("telegram_params.poll_timeout"),
		},
		MainDBParams: MainDBParams{
			Username: cm.v.GetString("main_db_params.db_username"),
			Password: cm.v.GetString("main_db_params.db_password"),
			Name:     cm.v.GetString("main_db_params.db_name"),
			Port:     cm.v.GetInt("main_db_params.db_port"),
			Host:     cm.v.GetString("main_db_params.db_host"),
			Timeout:  cm.v.GetInt("main_db_params.db_timeout"),
		},
		ValkeyParams: ValkeyParams{
			Host:          cm.v.GetString("valkey_params.host"),
			Password:      cm.v.GetString("valkey_params.password"),
			WindowSeconds: cm.v.GetInt("valkey_params.window_seconds"),
			MaxPerWindow:  cm.v.GetInt("valkey_params.max_per_window"),
		},
		S3Params: S3Params{
			Enabled:         cm.v.GetBool("s3_params.enabled"),
			Endpoint:        cm.v.GetString("s3_params.endpoint"),
			AccessKeyID:     cm.v.GetString("s3_params.access_key_id"),
			SecretAccessKey: cm.v.GetString("s3_params.secret_access_key"),
			UseSSL:          cm.v.GetBool("s3_params.use_ssl"),
			BucketName:      cm.v.GetString("s3_params.bucket_name"),
		},
		SearchParams: SearchParams{
			PageSize:        cm.v.GetInt("search_params.page_size"),
			ExactMatchScore: cm.v.GetFloat64("search_params.exact_match_score"),
		},
	}
	return nil
}

// Geting config instance
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// Compiling a string to connect to main db
func (db *MainDBParams) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=%d&sslmode=disable",
		db.Username,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Timeout,
	)
}

func (c *Config) Validate() error {
	// Checking secret key
	if c.GeneralParams.SecretKey == "" {
		return fmt.Errorf("parameter secret_key is required")
	}

	// Checking http address
	if c.GeneralParams.HTTPaddress == "" {
		return fmt.Errorf("parameter http_server_address is required")
	}

	// Checking out enviroment variable
	switch c.GeneralParams.Env {
	case "dev", "prod", "test":
	default:
		return fmt.Errorf("env parameter is invalid: %s. try dev/prod/test instead", c.GeneralParams.Env)
	}

	// Checking telegram params
	if c.TelegramParams.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if c.TelegramParams.PollTimeout <= 0 {
		return fmt.Errorf("telegram poll_timeout must be positive")
	}

	// Checking MainDbParams
	if c.MainDBParams.Host == "" {
		return fmt.Errorf("MainDB: host is required")
	}
	if c.MainDBParams.Username == "" {
		return fmt.Errorf("MainDB: username is required")
	}
	if c.MainDBParams.Password == "" {
		return fmt.Errorf("MainDB: password is required")
	}
	if c.MainDBParams.Port <= 0 || c.MainDBParams.Port > 65535 {
		return fmt.Errorf("MainDB: port is invalid")
	}

	// Checking valkey params
	if c.ValkeyParams.Host == "" {
		return fmt.Errorf("valkey host is required")
	}
	if c.ValkeyParams.WindowSeconds <= 0 {
		return fmt.Errorf("valkey window_seconds must be positive")
	}
	if c.ValkeyParams.MaxPerWindow <= 0 {
		return fmt.Errorf("valkey max_per_window must be positive")
	}

	// Checking S3 params, only when archival is switched on
	if c.S3Params.Enabled {
		if c.S3Params.Endpoint == "" {
			return fmt.Errorf("S3 endpoint is required")
		}
		if c.S3Params.AccessKeyID == "" {
			return fmt.Errorf("S3 access_key id is required")
		}
		if c.S3Params.SecretAccessKey == "" {
			return fmt.Errorf("S3 secret_access_key is required")
		}
		if c.S3Params.BucketName == "" {
			return fmt.Errorf("S3 bucket name is required")
		}
	}

	// Checking search params
	if c.SearchParams.PageSize <= 0 {
		return fmt.Errorf("search page_size must be positive")
	}
	if c.SearchParams.ExactMatchScore <= 0 {
		return fmt.Errorf("search exact_match_score must be positive")
	}

	return nil
}
