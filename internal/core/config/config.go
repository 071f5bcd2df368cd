package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int   // 单请求超时，0 表示不限
	BodyLimit         int64 // 请求体上限（字节）
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	SlowThresholdMs    int
}

// Worker 阻塞任务（数据库调用）执行池
type Worker struct {
	Size int
}

// RateLimit 全局令牌桶；RPS <= 0 关闭
type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Config struct {
	App       App
	Log       Log
	DB        DB
	Worker    Worker
	RateLimit RateLimit `mapstructure:"rateLimit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "user-posts-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)
	v.SetDefault("app.http.bodyLimit", 4096)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("db.slowThresholdMs", 200)

	v.SetDefault("worker.size", 32)

	v.SetDefault("rateLimit.rps", 0)
	v.SetDefault("rateLimit.burst", 0)
}

// Load 读取配置：默认值 → YAML 文件（可选）→ APP_* 环境变量；
// 连接串另外接受 DATABASE_URL
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = defaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db.dsn", "APP_DB_DSN", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// 默认路径不存在时只用默认值 + 环境变量
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("db.dsn is required (set DATABASE_URL)")
	}
	if c.App.HTTP.BodyLimit <= 0 {
		return fmt.Errorf("app.http.bodyLimit must be positive, got %d", c.App.HTTP.BodyLimit)
	}
	if c.Worker.Size <= 0 {
		return fmt.Errorf("worker.size must be positive, got %d", c.Worker.Size)
	}
	return nil
}
