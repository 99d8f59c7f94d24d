package utils

import (
	"fmt"
	"time"

	"github.com/benmeehan/tiletrack/pkg/file"
	"github.com/benmeehan/tiletrack/pkg/staticmap"
	"github.com/benmeehan/tiletrack/pkg/tracker"
)

// Config represents the structure of the configuration file.
type Config struct {
	Tracker struct {
		BaseURL        string        `yaml:"base_url"`         // Tracking service API root
		ClientUUID     string        `yaml:"client_uuid"`      // Client identifier; generated per run when empty
		AppID          string        `yaml:"app_id"`           // Application id sent with every request
		AppVersion     string        `yaml:"app_version"`      // Application version sent with every request
		Locale         string        `yaml:"locale"`           // Locale used when registering the client
		TargetDeviceID string        `yaml:"target_device_id"` // Device whose position is rendered
		Timeout        time.Duration `yaml:"timeout"`          // Per request timeout
	} `yaml:"tracker"`

	Map struct {
		BaseURL     string        `yaml:"base_url"`     // Static map endpoint
		Zoom        int           `yaml:"zoom"`         // Map zoom level
		Size        string        `yaml:"size"`         // Image size as WIDTHxHEIGHT
		MarkerColor string        `yaml:"marker_color"` // Marker color
		MarkerLabel string        `yaml:"marker_label"` // Marker label character
		OutputPath  string        `yaml:"output_path"`  // Where the rendered image is written
		Timeout     time.Duration `yaml:"timeout"`      // Request timeout
	} `yaml:"map"`

	Storage struct {
		Enabled         bool   `yaml:"enabled"`           // Mirror the rendered image to object storage
		Endpoint        string `yaml:"endpoint"`          // S3 compatible endpoint (host:port)
		AccessKeyID     string `yaml:"access_key_id"`     // Access key
		SecretAccessKey string `yaml:"secret_access_key"` // Secret key
		UseSSL          bool   `yaml:"use_ssl"`           // Use TLS for the endpoint
		Bucket          string `yaml:"bucket"`            // Target bucket
		ObjectName      string `yaml:"object_name"`       // Object name, overwritten every run
	} `yaml:"storage"`

	MQTT struct {
		Enabled       bool   `yaml:"enabled"`        // Publish a location event after rendering
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID prefix
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate, empty for plain TCP
		Topic         string `yaml:"topic"`          // Topic for location events
		QOS           int    `yaml:"qos"`            // MQTT QoS level
	} `yaml:"mqtt"`

	Post struct {
		Endpoint string        `yaml:"endpoint"` // Text posting endpoint
		Auth     string        `yaml:"auth"`     // oauth1 (default) or oauth2 bearer
		Text     string        `yaml:"text"`     // Default text
		Timeout  time.Duration `yaml:"timeout"`  // Request timeout
	} `yaml:"post"`

	Logging struct {
		Level string `yaml:"level"` // zerolog level name
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	var c Config

	c.Tracker.BaseURL = tracker.DefaultTileBaseURL
	c.Tracker.AppID = "ios-tile-production"
	c.Tracker.AppVersion = "2.89.1.4774"
	c.Tracker.Locale = "en-US"
	c.Tracker.TargetDeviceID = "b07ca79b131d71a4"
	c.Tracker.Timeout = 30 * time.Second

	c.Map.BaseURL = staticmap.DefaultBaseURL
	c.Map.Zoom = 18
	c.Map.Size = "1200x1200"
	c.Map.MarkerColor = "blue"
	c.Map.MarkerLabel = "S"
	c.Map.OutputPath = "map.png"
	c.Map.Timeout = 30 * time.Second

	c.Storage.ObjectName = "map.png"

	c.MQTT.ClientID = "tiletrack"
	c.MQTT.Topic = "tiletrack/location"
	c.MQTT.QOS = 1

	c.Post.Endpoint = "https://api.twitter.com/2/tweets"
	c.Post.Auth = "oauth1"
	c.Post.Text = "Hello, world!"
	c.Post.Timeout = 30 * time.Second

	c.Logging.Level = "info"

	return &c
}

// LoadConfig loads the YAML configuration from the specified file on top of DefaultConfig.
// A missing file is not an error.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	config := DefaultConfig()

	exists, err := fileClient.IsFileExists(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", filename, err)
	}
	if !exists {
		return config, nil
	}

	if err := fileClient.ReadYamlFile(filename, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	return config, nil
}
