package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file searched for in the working directory when
// no explicit path is given.
const FileName = "missionmap.cfg.json"

// RenderConfig holds default rendering options applied to every output format.
type RenderConfig struct {
	DocumentName    string
	LineWidth       float64
	HTMLTitle       string
	TileURL         string
	TileAttribution string
}

// OutputConfig holds defaults for where and how converted files are written.
type OutputConfig struct {
	Dir    string
	Format string
}

// StaticmapConfig holds the static map API client settings.
type StaticmapConfig struct {
	ServerURL string
	APIKey    string
	MapType   string
	Width     int
	Height    int
	Scale     int
	Zoom      int
}

// InfluxConfig holds the run statistics reporting settings.
type InfluxConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Protocol string
	Token    string
	Org      string
}

// GraylogConfig holds GELF log forwarding settings.
type GraylogConfig struct {
	Enabled bool
	Address string
}

// OTelConfig holds OpenTelemetry log export settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	// empty logsDir means console logging; set it to collect
	// timestamped session logs instead
	viper.SetDefault("logsDir", "")

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.format", "kml")

	viper.SetDefault("render.documentName", "")
	viper.SetDefault("render.lineWidth", 3)
	viper.SetDefault("render.html.title", "")
	viper.SetDefault("render.html.tileUrl", "")
	viper.SetDefault("render.html.tileAttribution", "")

	viper.SetDefault("staticmap.serverUrl", "https://maps.googleapis.com/maps/api/staticmap")
	viper.SetDefault("staticmap.apiKey", "")
	viper.SetDefault("staticmap.maptype", "roadmap")
	viper.SetDefault("staticmap.width", 640)
	viper.SetDefault("staticmap.height", 640)
	viper.SetDefault("staticmap.scale", 2)
	viper.SetDefault("staticmap.zoom", 0)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "missionmap-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "missionmap")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from a JSON file and sets default values.
// path names an explicit config file; when empty the working directory
// is searched for missionmap.cfg.json, and a missing file is not an
// error since every key has a default.
func Load(path string) error {
	setDefaults()

	viper.SetConfigType("json")
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		return nil
	}

	viper.SetConfigName(FileName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetRenderConfig returns the rendering defaults.
func GetRenderConfig() RenderConfig {
	return RenderConfig{
		DocumentName:    viper.GetString("render.documentName"),
		LineWidth:       viper.GetFloat64("render.lineWidth"),
		HTMLTitle:       viper.GetString("render.html.title"),
		TileURL:         viper.GetString("render.html.tileUrl"),
		TileAttribution: viper.GetString("render.html.tileAttribution"),
	}
}

// GetOutputConfig returns the output defaults.
func GetOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:    viper.GetString("output.dir"),
		Format: viper.GetString("output.format"),
	}
}

// GetStaticmapConfig returns the static map client settings.
func GetStaticmapConfig() StaticmapConfig {
	return StaticmapConfig{
		ServerURL: viper.GetString("staticmap.serverUrl"),
		APIKey:    viper.GetString("staticmap.apiKey"),
		MapType:   viper.GetString("staticmap.maptype"),
		Width:     viper.GetInt("staticmap.width"),
		Height:    viper.GetInt("staticmap.height"),
		Scale:     viper.GetInt("staticmap.scale"),
		Zoom:      viper.GetInt("staticmap.zoom"),
	}
}

// GetInfluxConfig returns the run statistics reporting settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
	}
}

// GetGraylogConfig returns the GELF forwarding settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetOTelConfig returns the OpenTelemetry log export settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
