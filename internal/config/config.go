package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀, 例如 SFXTRIE_STORE_PATH
const EnvPrefix = "SFXTRIE"

// Config 应用配置
type Config struct {
	Store      StoreConfig      `mapstructure:"store"`
	Log        LogConfig        `mapstructure:"log"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
}

// StoreConfig 词典存储配置
type StoreConfig struct {
	Path       string        `mapstructure:"path"`
	InMemory   bool          `mapstructure:"in_memory"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DictionaryConfig 启动时预置的词
type DictionaryConfig struct {
	Words []string `mapstructure:"words"`
}

// Load 读取配置文件及环境变量, configPath为空时只使用默认值和环境变量
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "sfxtrie_db")
	v.SetDefault("store.in_memory", false)
	v.SetDefault("store.gc_interval", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("dictionary.words", []string{})
}

// Validate 校验配置
func (c *Config) Validate() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store path is required unless store.in_memory is set")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("invalid store gc interval: %s", c.Store.GCInterval)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// LogLevel 解析后的日志级别
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
