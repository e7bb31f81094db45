// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey 是前端部署脚本里常见的占位 key，视同未配置。
const PlaceholderAPIKey = "sk-test-key-not-configured"

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TrustedProxies 为空时只使用连接的对端地址作为客户端 IP，忽略 X-Forwarded-For。
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储大语言模型相关的配置。
type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
	// PreferExternal 为 true 时优先调用外部模型，模板路径作为兜底。
	PreferExternal bool                `mapstructure:"prefer_external"`
	Content        LLMGenerationConfig `mapstructure:"content"`
	Chat           LLMGenerationConfig `mapstructure:"chat"`
}

// LLMGenerationConfig 配置生成相关参数。
type LLMGenerationConfig struct {
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Configured 判断是否提供了可用的 API key。
func (c LLMConfig) Configured() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// RedisConfig 存储 Redis 的配置。Addr 为空时不连接 Redis。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig 配置生成与聊天接口的限流，PerMinute 为 0 表示关闭。
type RateLimitConfig struct {
	PerMinute int64 `mapstructure:"per_minute"`
}

// KafkaConfig 存储 Kafka 相关的配置。Brokers 为空时不发布领域事件。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。Endpoint 为空时导出功能不可用。
type MinIOConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	BucketName      string        `mapstructure:"bucket_name"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.content.temperature", 0.8)
	v.SetDefault("llm.content.max_tokens", 2000)
	v.SetDefault("llm.chat.temperature", 0.7)
	v.SetDefault("llm.chat.max_tokens", 1000)
	// 可选依赖默认关闭，但键必须存在，AutomaticEnv 才能覆盖
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.per_minute", 0)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "kreatiq.events")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key_id", "")
	v.SetDefault("minio.secret_access_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket_name", "kreatiq-exports")
	v.SetDefault("minio.url_expiry", time.Hour)
}

// Load 读取配置文件（可为空路径，仅使用默认值和环境变量）并返回解析后的配置。
// 环境变量使用 KREATIQ_ 前缀，例如 KREATIQ_SERVER_PORT；OPENAI_API_KEY 直接映射到 llm.api_key。
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KREATIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "KREATIQ_LLM_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("绑定环境变量失败: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	return cfg, nil
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}
