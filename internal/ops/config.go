// Package ops loads and resolves the runtime configuration.
package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"main/internal/session"
	"main/internal/vwap"
	"main/pkg/conn"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Feed    FeedConfig    `json:"feed"`
	Session SessionConfig `json:"session"`
	Output  OutputConfig  `json:"output"`
}

// FeedConfig locates the input file.
type FeedConfig struct {
	Path          string `json:"path"`
	MaxRecordSize int    `json:"maxRecordSize"`
}

// SessionConfig tunes session-event interpretation.
type SessionConfig struct {
	OpenEventCode  string `json:"openEventCode"`
	CloseEventCode string `json:"closeEventCode"`
	Policy         string `json:"policy"`
}

// OutputConfig selects and configures the row sink.
type OutputConfig struct {
	Sink     string         `json:"sink"`
	Dir      string         `json:"dir"`
	Path     string         `json:"path"`
	Postgres PostgresConfig `json:"postgres"`
}

// PostgresConfig describes the postgres sink connection.
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
}

// SinkKind names a supported row sink.
type SinkKind string

const (
	SinkCSV      SinkKind = "csv"
	SinkJSONL    SinkKind = "jsonl"
	SinkPostgres SinkKind = "postgres"
)

const (
	defaultOutputDir     = "VWAP_output_hourly"
	defaultOutputPath    = "vwap_hourly.jsonl"
	defaultMaxRecordSize = 4096
)

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	FeedPath      string
	MaxRecordSize int
	Session       session.Config
	Sink          SinkKind
	OutputDir     string
	OutputPath    string
	Postgres      conn.Option
}

// Default returns the configuration used when no file is given.
func Default() Loaded {
	return Loaded{
		MaxRecordSize: defaultMaxRecordSize,
		Sink:          SinkCSV,
		OutputDir:     defaultOutputDir,
		OutputPath:    defaultOutputPath,
	}
}

// Load reads a JSON config file and resolves it. An empty path yields the
// defaults.
func Load(path string) (Loaded, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}
	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	loaded := Default()

	if cfg.Feed.Path != "" {
		loaded.FeedPath = cfg.Feed.Path
	}
	if cfg.Feed.MaxRecordSize > 0 {
		loaded.MaxRecordSize = cfg.Feed.MaxRecordSize
	}

	open, err := resolveEventCode(cfg.Session.OpenEventCode)
	if err != nil {
		return Loaded{}, fmt.Errorf("invalid openEventCode: %w", err)
	}
	closeCode, err := resolveEventCode(cfg.Session.CloseEventCode)
	if err != nil {
		return Loaded{}, fmt.Errorf("invalid closeEventCode: %w", err)
	}
	policy, err := vwap.ParsePolicy(cfg.Session.Policy)
	if err != nil {
		return Loaded{}, err
	}
	loaded.Session = session.Config{
		OpenEventCode:  open,
		CloseEventCode: closeCode,
		Policy:         policy,
	}

	if cfg.Output.Sink != "" {
		kind := SinkKind(cfg.Output.Sink)
		switch kind {
		case SinkCSV, SinkJSONL, SinkPostgres:
			loaded.Sink = kind
		default:
			return Loaded{}, fmt.Errorf("unknown sink: %q", cfg.Output.Sink)
		}
	}
	if cfg.Output.Dir != "" {
		loaded.OutputDir = cfg.Output.Dir
	}
	if cfg.Output.Path != "" {
		loaded.OutputPath = cfg.Output.Path
	}
	loaded.Postgres = conn.Option{
		Host:     cfg.Output.Postgres.Host,
		Port:     cfg.Output.Postgres.Port,
		User:     cfg.Output.Postgres.User,
		Password: cfg.Output.Postgres.Password,
		Database: cfg.Output.Postgres.Database,
		SSLMode:  cfg.Output.Postgres.SSLMode,
	}
	if loaded.Sink == SinkPostgres && cfg.Output.Postgres.Database == "" {
		return Loaded{}, fmt.Errorf("postgres sink requires a database name")
	}
	return loaded, nil
}

func resolveEventCode(code string) (byte, error) {
	switch len(code) {
	case 0:
		return 0, nil
	case 1:
		return code[0], nil
	default:
		return 0, fmt.Errorf("event code must be a single character, got %q", code)
	}
}
