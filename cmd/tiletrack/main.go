package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benmeehan/tiletrack/internal/services"
	"github.com/benmeehan/tiletrack/internal/utils"
	"github.com/benmeehan/tiletrack/pkg/file"
	"github.com/benmeehan/tiletrack/pkg/mqtt"
	"github.com/benmeehan/tiletrack/pkg/s3"
	"github.com/benmeehan/tiletrack/pkg/tracker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	envFile := flag.String("env", ".env", "path to an optional .env file with credentials")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [locate | post [-text TEXT]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up structured logging with JSON output
	log := zerolog.New(os.Stdout).With().Timestamp().Str("app", "tiletrack").Logger()

	fileClient := file.NewFileService()

	config, err := utils.LoadConfig(*configPath, fileClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(config.Logging.Level)
	if err != nil {
		log.Warn().Str("level", config.Logging.Level).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	log = log.Level(level)

	credentials, err := utils.LoadCredentials(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load credentials")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := "locate"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "locate":
		err = runLocate(ctx, config, credentials, fileClient, log)
	case "post":
		err = runPost(ctx, args, config, credentials, log)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		stop()
		log.Fatal().Err(err).Str("command", command).Msg("Run failed")
	}
}

// runLocate wires the lookup and render stages plus any enabled sinks and runs them once.
func runLocate(ctx context.Context, config *utils.Config, credentials utils.Credentials,
	fileClient file.FileOperations, log zerolog.Logger) error {

	clientUUID := config.Tracker.ClientUUID
	if clientUUID == "" {
		clientUUID = uuid.New().String()
	}

	trackerClient := tracker.NewTileClient(tracker.TileOptions{
		BaseURL:    config.Tracker.BaseURL,
		ClientUUID: clientUUID,
		AppID:      config.Tracker.AppID,
		AppVersion: config.Tracker.AppVersion,
		Locale:     config.Tracker.Locale,
		Timeout:    config.Tracker.Timeout,
	}, log)

	locator := services.NewDeviceLocator(
		credentials.Email,
		credentials.Password,
		config.Tracker.TargetDeviceID,
		trackerClient,
		log,
	)

	renderer := services.NewMapRenderer(services.MapRendererOptions{
		BaseURL:    config.Map.BaseURL,
		APIKey:     credentials.MapsAPIKey,
		Zoom:       config.Map.Zoom,
		Size:       config.Map.Size,
		Marker:     maps.Marker{Color: config.Map.MarkerColor, Label: config.Map.MarkerLabel},
		OutputPath: config.Map.OutputPath,
	}, &http.Client{Timeout: config.Map.Timeout}, fileClient, log)

	var sinks []services.Sink

	if config.Storage.Enabled {
		storage := s3.NewObjectStorage()
		if err := storage.Connect(ctx, config.Storage.Endpoint, config.Storage.AccessKeyID,
			config.Storage.SecretAccessKey, config.Storage.UseSSL); err != nil {
			return fmt.Errorf("failed to connect object storage: %w", err)
		}
		sinks = append(sinks, services.NewObjectStoreSink(config.Storage.Bucket, config.Storage.ObjectName, storage, fileClient, log))
	}

	if config.MQTT.Enabled {
		// Generate a unique MQTT Client ID by appending a UUID
		clientID := config.MQTT.ClientID + "-" + uuid.New().String()
		mqttClient := mqtt.NewMqttService(fileClient)
		if err := mqttClient.Initialize(config.MQTT.Broker, clientID, config.MQTT.CACertificate); err != nil {
			return fmt.Errorf("failed to initialize MQTT connection: %w", err)
		}
		defer mqttClient.Disconnect(250)
		sinks = append(sinks, services.NewMQTTLocationSink(config.MQTT.Topic, config.MQTT.QOS, mqttClient, log))
	}

	_, err := services.NewPipeline(locator, renderer, log, sinks...).Run(ctx)
	return err
}

// runPost publishes a single text message.
func runPost(ctx context.Context, args []string, config *utils.Config, credentials utils.Credentials, log zerolog.Logger) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	text := fs.String("text", config.Post.Text, "text to publish")
	if err := fs.Parse(args); err != nil {
		return err
	}

	poster, err := services.NewPostService(ctx, config.Post.Endpoint, config.Post.Auth, services.PostCredentials{
		ConsumerKey:       credentials.ConsumerKey,
		ConsumerSecret:    credentials.ConsumerSecret,
		AccessToken:       credentials.AccessToken,
		AccessTokenSecret: credentials.AccessTokenSecret,
	}, &http.Client{Timeout: config.Post.Timeout}, log)
	if err != nil {
		return err
	}

	_, err = poster.Post(ctx, *text)
	return err
}
