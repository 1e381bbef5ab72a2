package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Block    BlockConfig    `mapstructure:"block"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// RedisConfig Host 为空时不启用实时刷新
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	Channel  string `mapstructure:"channel"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // 控制台彩色输出
}

// BlockConfig 评论区块配置
type BlockConfig struct {
	RecentLimit int         `mapstructure:"recent_limit"`
	Library     string      `mapstructure:"library"`    // 附加的样式库名
	Stylesheet  string      `mapstructure:"stylesheet"` // 样式库对应的 URL
	Labels      BlockLabels `mapstructure:"labels"`
}

// BlockLabels 区块中显示的文案
type BlockLabels struct {
	TotalComments   string `mapstructure:"total_comments"`
	TotalWords      string `mapstructure:"total_words"`
	RecentComments  string `mapstructure:"recent_comments"`
	CommentHeader   string `mapstructure:"comment_header"`
	NodeTitleHeader string `mapstructure:"node_title_header"`
	NoComments      string `mapstructure:"no_comments"`
	MissingComment  string `mapstructure:"missing_comment"`
	MissingTitle    string `mapstructure:"missing_title"`
}

const (
	DefaultRecentLimit = 5
	DefaultLibrary     = "comment_block/comment_block_styles"
	DefaultStylesheet  = "/static/comment_block/comment_block.css"
)

// DefaultBlockLabels 默认文案
var DefaultBlockLabels = BlockLabels{
	TotalComments:   "Total de comentarios:",
	TotalWords:      "Número total de palabras:",
	RecentComments:  "Últimos %d comentarios:", // %d 替换为 recent_limit
	CommentHeader:   "Comentario",
	NodeTitleHeader: "Título del nodo",
	NoComments:      "No hay comentarios",
	MissingComment:  "Sin texto de comentario",
	MissingTitle:    "Sin título de nodo",
}

// WithDefaults 返回填充了默认值的副本，零值配置也可以直接使用
func (b BlockConfig) WithDefaults() BlockConfig {
	if b.RecentLimit <= 0 {
		b.RecentLimit = DefaultRecentLimit
	}
	if b.Library == "" {
		b.Library = DefaultLibrary
	}
	if b.Stylesheet == "" {
		b.Stylesheet = DefaultStylesheet
	}

	l := &b.Labels
	d := DefaultBlockLabels
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&l.TotalComments, d.TotalComments)
	fill(&l.TotalWords, d.TotalWords)
	fill(&l.RecentComments, d.RecentComments)
	fill(&l.CommentHeader, d.CommentHeader)
	fill(&l.NodeTitleHeader, d.NodeTitleHeader)
	fill(&l.NoComments, d.NoComments)
	fill(&l.MissingComment, d.MissingComment)
	fill(&l.MissingTitle, d.MissingTitle)

	return b
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.channel", "comment_block_updates")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("block.recent_limit", DefaultRecentLimit)
	v.SetDefault("block.library", DefaultLibrary)
	v.SetDefault("block.stylesheet", DefaultStylesheet)
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Block = cfg.Block.WithDefaults()

	return &cfg, nil
}
