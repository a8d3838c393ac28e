package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Output    OutputConfig    `mapstructure:"output"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Map       MapConfig       `mapstructure:"map"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	DocsPath     string `mapstructure:"docs_path"`
}

type DataConfig struct {
	RecordsPath    string `mapstructure:"records_path"`
	BoundariesPath string `mapstructure:"boundaries_path"`
	Delimiter      string `mapstructure:"delimiter"`
}

// DelimiterRune returns the configured field delimiter, defaulting to a comma.
func (d DataConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

// ArtifactPath is where the rendered map is written.
func (o OutputConfig) ArtifactPath() string {
	return filepath.Join(o.Dir, o.File)
}

type ReconcileConfig struct {
	MappingSet  string `mapstructure:"mapping_set"`
	MappingFile string `mapstructure:"mapping_file"`
}

type MapConfig struct {
	CenterLat   float64 `mapstructure:"center_lat"`
	CenterLon   float64 `mapstructure:"center_lon"`
	Zoom        int     `mapstructure:"zoom"`
	Tiles       string  `mapstructure:"tiles"`
	FillColor   string  `mapstructure:"fill_color"`
	FillOpacity float64 `mapstructure:"fill_opacity"`
	LineOpacity float64 `mapstructure:"line_opacity"`
	Bins        int     `mapstructure:"bins"`
	LegendName  string  `mapstructure:"legend_name"`
	Title       string  `mapstructure:"title"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// configFile may be empty, in which case config.yaml is looked up in
// the working directory and ./configs.
func Load(service, configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.docs_path", "api/openapi.yaml")
	v.SetDefault("data.records_path", "student_mobility_with_coordinates.csv")
	v.SetDefault("data.boundaries_path", "world-countries.json")
	v.SetDefault("data.delimiter", ",")
	v.SetDefault("output.dir", "static")
	v.SetDefault("output.file", "choropleth_heatmap.html")
	v.SetDefault("reconcile.mapping_set", DefaultMappingSet)
	v.SetDefault("reconcile.mapping_file", "")
	v.SetDefault("map.center_lat", 20.0)
	v.SetDefault("map.center_lon", 0.0)
	v.SetDefault("map.zoom", 2)
	v.SetDefault("map.tiles", "cartodb positron")
	v.SetDefault("map.fill_color", "YlOrRd")
	v.SetDefault("map.fill_opacity", 0.7)
	v.SetDefault("map.line_opacity", 0.2)
	v.SetDefault("map.bins", 6)
	v.SetDefault("map.legend_name", "Number of Students Studying Abroad")
	v.SetDefault("map.title", "Choropleth Heatmap")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: MOBILITYMAP_DATA_RECORDS_PATH → data.records_path
	v.SetEnvPrefix("MOBILITYMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain PORT and LOG_LEVEL are honoured for platform compatibility.
	_ = v.BindEnv("server.port", "MOBILITYMAP_SERVER_PORT", "PORT")
	_ = v.BindEnv("log.level", "MOBILITYMAP_LOG_LEVEL", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Data.RecordsPath == "" {
		errs = append(errs, "data.records_path is required")
	}
	if c.Data.BoundariesPath == "" {
		errs = append(errs, "data.boundaries_path is required")
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("data.delimiter must be a single character, got %q", c.Data.Delimiter))
	}
	if c.Output.Dir == "" {
		errs = append(errs, "output.dir is required")
	}
	if c.Output.File == "" || strings.ContainsAny(c.Output.File, `/\`) {
		errs = append(errs, "output.file must be a plain file name")
	}
	if c.Reconcile.MappingSet == "" {
		errs = append(errs, "reconcile.mapping_set is required")
	}
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		errs = append(errs, "map.center_lat must be within [-90, 90]")
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		errs = append(errs, "map.center_lon must be within [-180, 180]")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 18 {
		errs = append(errs, "map.zoom must be 0-18")
	}
	if c.Map.FillOpacity < 0 || c.Map.FillOpacity > 1 {
		errs = append(errs, "map.fill_opacity must be within [0, 1]")
	}
	if c.Map.LineOpacity < 0 || c.Map.LineOpacity > 1 {
		errs = append(errs, "map.line_opacity must be within [0, 1]")
	}
	if c.Map.Bins < 3 || c.Map.Bins > 9 {
		errs = append(errs, fmt.Sprintf("map.bins must be 3-9, got %d", c.Map.Bins))
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		errs = append(errs, "telemetry.endpoint is required when telemetry is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
