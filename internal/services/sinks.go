package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/benmeehan/tiletrack/pkg/file"
	"github.com/benmeehan/tiletrack/pkg/mqtt"
	"github.com/benmeehan/tiletrack/pkg/s3"
	"github.com/rs/zerolog"
)

// ObjectStoreSink mirrors the rendered image to an object store under a fixed name.
type ObjectStoreSink struct {
	bucket     string
	objectName string
	storage    s3.ObjectStorageClient
	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewObjectStoreSink creates a new ObjectStoreSink.
func NewObjectStoreSink(bucket, objectName string, storage s3.ObjectStorageClient, fileClient file.FileOperations,
	logger zerolog.Logger) *ObjectStoreSink {
	return &ObjectStoreSink{
		bucket:     bucket,
		objectName: objectName,
		storage:    storage,
		fileClient: fileClient,
		logger:     logger.With().Str("component", "object_store_sink").Logger(),
	}
}

func (o *ObjectStoreSink) Name() string { return "object_store" }

// Deliver uploads the image file, replacing the previous object.
func (o *ObjectStoreSink) Deliver(ctx context.Context, rendered models.RenderedMap) error {
	f, err := o.fileClient.OpenFile(rendered.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rendered.Path, err)
	}
	defer f.Close()

	location, err := o.storage.UploadFile(ctx, o.bucket, o.objectName, f, rendered.Bytes, "image/png")
	if err != nil {
		return err
	}

	o.logger.Info().
		Str("bucket", o.bucket).
		Str("object", o.objectName).
		Str("location", location).
		Msg("Map image mirrored")
	return nil
}

// MQTTLocationSink publishes a LocationEvent for every successful run.
type MQTTLocationSink struct {
	topic      string
	qos        int
	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
}

// NewMQTTLocationSink creates a new MQTTLocationSink.
func NewMQTTLocationSink(topic string, qos int, mqttClient mqtt.MQTTClient, logger zerolog.Logger) *MQTTLocationSink {
	return &MQTTLocationSink{
		topic:      topic,
		qos:        qos,
		mqttClient: mqttClient,
		logger:     logger.With().Str("component", "mqtt_location_sink").Logger(),
	}
}

func (m *MQTTLocationSink) Name() string { return "mqtt" }

// Deliver publishes the event and waits for the broker to acknowledge it.
func (m *MQTTLocationSink) Deliver(_ context.Context, rendered models.RenderedMap) error {
	event := models.LocationEvent{
		RunID:     rendered.RunID,
		DeviceID:  rendered.DeviceID,
		Timestamp: rendered.RenderedAt,
		Latitude:  rendered.Coordinate.Latitude,
		Longitude: rendered.Coordinate.Longitude,
		MapFile:   rendered.Path,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize location event: %w", err)
	}

	token := m.mqttClient.Publish(m.topic, byte(m.qos), false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish location event: %w", err)
	}

	m.logger.Info().
		Str("topic", m.topic).
		Str("device_id", event.DeviceID).
		Msg("Location event published")
	return nil
}
