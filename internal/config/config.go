package config

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"taskmind/internal/global"
)

// ErrMissingAPIKey is returned by RequireAPIKey when GEMINI_API_KEY is unset.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

type Config struct {
	ConfigDir      string
	LogLevel       string
	LocalHost      string
	LocalPort      int
	StoreBackend   string
	DataFile       string
	SQLitePath     string
	WebUIDir       string
	ServerURL      string
	GeminiEndpoint string
	GeminiModel    string
	GeminiAPIKey   string
}

// LoadConfig layers environment variables over config.toml in the config
// directory, which is created with defaults on first use.
func LoadConfig() (Config, error) {
	dir, err := global.DefaultConfigDir()
	if err != nil {
		return Config{}, err
	}
	file, err := global.NewConfigStore(dir).LoadOrInit()
	if err != nil {
		return Config{}, err
	}
	return fromFileAndEnv(dir, file), nil
}

func fromFileAndEnv(dir string, file global.GlobalConfig) Config {
	level := envOr("TASKMIND_LOG_LEVEL", file.LogLevel)
	host := envOr("TASKMIND_LOCAL_HOST", file.LocalHost)

	port := file.LocalPort
	if p := firstEnv("TASKMIND_LOCAL_PORT", "PORT"); p != "" {
		// Malformed values keep the file/default port.
		if n := atoiOrDefault(p, 0); n > 0 && n <= 65535 {
			port = n
		}
	}

	backend := strings.ToLower(envOr("TASKMIND_STORE", file.Store.Backend))
	if backend != global.StoreSQLite {
		backend = global.StoreJSON
	}
	dataFile := envOr("TASKMIND_DATA_FILE", file.Store.DataFile)
	if dataFile == "" {
		dataFile = filepath.Join(dir, "db.json")
	}
	sqlitePath := envOr("TASKMIND_SQLITE_PATH", file.Store.SQLitePath)
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dir, "taskmind.db")
	}

	serverURL := envOr("TASKMIND_SERVER_URL", "")
	if serverURL == "" {
		serverURL = defaultServerURL(host, port)
	}

	return Config{
		ConfigDir:      dir,
		LogLevel:       level,
		LocalHost:      host,
		LocalPort:      port,
		StoreBackend:   backend,
		DataFile:       dataFile,
		SQLitePath:     sqlitePath,
		WebUIDir:       envOr("TASKMIND_WEBUI_DIR", file.WebUI.Dir),
		ServerURL:      strings.TrimRight(serverURL, "/"),
		GeminiEndpoint: envOr("GEMINI_ENDPOINT", file.AI.Endpoint),
		GeminiModel:    envOr("GEMINI_MODEL", file.AI.Model),
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}
}

// RequireAPIKey fails when the model credential is missing. The server calls
// it at startup; client-only commands do not need the key.
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.LocalHost, strconv.Itoa(c.LocalPort))
}

func defaultServerURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = global.DefaultLocalHost
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func atoiOrDefault(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}
