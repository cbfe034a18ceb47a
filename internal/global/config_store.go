package global

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configTOMLFileName = "config.toml"

	DefaultLocalHost = "127.0.0.1"
	DefaultLocalPort = 3000

	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type StoreConfig struct {
	Backend    string `json:"backend" toml:"backend"`
	DataFile   string `json:"data_file,omitempty" toml:"data_file,omitempty"`
	SQLitePath string `json:"sqlite_path,omitempty" toml:"sqlite_path,omitempty"`
}

type AIConfig struct {
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Model    string `json:"model,omitempty" toml:"model,omitempty"`
}

type WebUIConfig struct {
	Dir string `json:"dir,omitempty" toml:"dir,omitempty"`
}

// GlobalConfig is the on-disk config.toml. The API key is never stored here.
type GlobalConfig struct {
	LocalHost string      `json:"local_host" toml:"local_host"`
	LocalPort int         `json:"local_port" toml:"local_port"`
	LogLevel  string      `json:"log_level" toml:"log_level"`
	Store     StoreConfig `json:"store" toml:"store"`
	AI        AIConfig    `json:"ai" toml:"ai"`
	WebUI     WebUIConfig `json:"webui" toml:"webui"`
}

type ConfigStore struct {
	dir string
}

func NewConfigStore(dir string) *ConfigStore {
	return &ConfigStore{dir: dir}
}

func (s *ConfigStore) Dir() string {
	return s.dir
}

func (s *ConfigStore) LoadOrInit() (GlobalConfig, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return GlobalConfig{}, err
	}

	path := filepath.Join(s.dir, configTOMLFileName)
	if b, err := os.ReadFile(path); err == nil {
		var cfg GlobalConfig
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return GlobalConfig{}, err
		}
		return normalizeConfig(cfg), nil
	} else if !os.IsNotExist(err) {
		return GlobalConfig{}, err
	}

	cfg := normalizeConfig(GlobalConfig{})
	if err := writeTOMLAtomically(path, cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

func (s *ConfigStore) Save(cfg GlobalConfig) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return writeTOMLAtomically(filepath.Join(s.dir, configTOMLFileName), normalizeConfig(cfg))
}

func normalizeConfig(cfg GlobalConfig) GlobalConfig {
	cfg.LocalHost = strings.TrimSpace(cfg.LocalHost)
	if cfg.LocalHost == "" {
		cfg.LocalHost = DefaultLocalHost
	}
	if cfg.LocalPort <= 0 || cfg.LocalPort > 65535 {
		cfg.LocalPort = DefaultLocalPort
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.Store = normalizeStore(cfg.Store)
	cfg.AI.Endpoint = strings.TrimSpace(cfg.AI.Endpoint)
	cfg.AI.Model = strings.TrimSpace(cfg.AI.Model)
	cfg.WebUI.Dir = strings.TrimSpace(cfg.WebUI.Dir)
	return cfg
}

func normalizeStore(sc StoreConfig) StoreConfig {
	backend := strings.ToLower(strings.TrimSpace(sc.Backend))
	switch backend {
	case StoreJSON, StoreSQLite:
	default:
		backend = StoreJSON
	}
	return StoreConfig{
		Backend:    backend,
		DataFile:   strings.TrimSpace(sc.DataFile),
		SQLitePath: strings.TrimSpace(sc.SQLitePath),
	}
}

func writeTOMLAtomically(path string, v any) error {
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
