package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Token store backends accepted by token.store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
)

type AppConfig struct {
	BaseURL     string
	HTTPTimeout time.Duration
	LogPath     string
	LogLevel    string
	Token       TokenConfig
}

type TokenConfig struct {
	Store     string
	Path      string
	DSN       string
	RedisAddr string
	RedisKey  string
	TTL       time.Duration
}

var (
	mu  sync.RWMutex
	cfg AppConfig
	v   *viper.Viper
)

// Init loads path (YAML) over the built-in defaults. A missing file is not an error.
func Init(path string) (AppConfig, error) {
	dataDir := filepath.Join(os.TempDir(), "shop-admin")

	nv := viper.New()
	nv.SetConfigFile(path)
	nv.SetConfigType("yaml")
	nv.SetEnvPrefix("SHOP_ADMIN")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	nv.SetDefault("console.api.base_url", "http://127.0.0.1:8000")
	nv.SetDefault("console.http.timeout", time.Duration(0))
	nv.SetDefault("console.log_path", filepath.Join(dataDir, "console.log"))
	nv.SetDefault("console.log_level", "info")
	nv.SetDefault("console.token.store", StoreMemory)
	nv.SetDefault("console.token.path", filepath.Join(dataDir, "console.token"))
	nv.SetDefault("console.token.dsn", filepath.Join(dataDir, "console.db"))
	nv.SetDefault("console.token.redis_addr", "127.0.0.1:6379")
	nv.SetDefault("console.token.redis_key", "shop-admin:token")
	nv.SetDefault("console.token.ttl", time.Duration(0))
	if err := nv.ReadInConfig(); err != nil && !isNotFound(err) {
		return AppConfig{}, err
	}

	loaded := fromViper(nv)
	mu.Lock()
	cfg, v = loaded, nv
	mu.Unlock()
	return loaded, nil
}

// Get returns the last loaded configuration.
func Get() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Watch re-reads the file on change and hands the new values to fn.
func Watch(fn func(AppConfig)) {
	mu.RLock()
	nv := v
	mu.RUnlock()
	if nv == nil {
		return
	}
	nv.OnConfigChange(func(evt fsnotify.Event) {
		if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
			return
		}
		loaded := fromViper(nv)
		mu.Lock()
		cfg = loaded
		mu.Unlock()
		fn(loaded)
	})
	nv.WatchConfig()
}

func fromViper(nv *viper.Viper) AppConfig {
	return AppConfig{
		BaseURL:     strings.TrimRight(nv.GetString("console.api.base_url"), "/"),
		HTTPTimeout: nv.GetDuration("console.http.timeout"),
		LogPath:     nv.GetString("console.log_path"),
		LogLevel:    nv.GetString("console.log_level"),
		Token: TokenConfig{
			Store:     strings.ToLower(nv.GetString("console.token.store")),
			Path:      nv.GetString("console.token.path"),
			DSN:       nv.GetString("console.token.dsn"),
			RedisAddr: nv.GetString("console.token.redis_addr"),
			RedisKey:  nv.GetString("console.token.redis_key"),
			TTL:       nv.GetDuration("console.token.ttl"),
		},
	}
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
