package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/benmeehan/tiletrack/internal/mocks"
	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/benmeehan/tiletrack/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRenderedMap(path string) models.RenderedMap {
	return models.RenderedMap{
		RunID:      "run-1",
		DeviceID:   "dev-1",
		Coordinate: models.Coordinate{Latitude: 35.0, Longitude: 135.0},
		Path:       path,
		Bytes:      7,
		RenderedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMQTTLocationSink_Deliver_Success(t *testing.T) {
	mockClient := new(mocks.MockMQTTClient)
	mockToken := new(mocks.MockToken)

	mockToken.On("Wait").Return(true)
	mockToken.On("Error").Return(nil)

	var published models.LocationEvent
	mockClient.On("Publish", "tiletrack/location", byte(1), false, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(3).([]byte), &published))
		}).
		Return(mockToken)

	sink := services.NewMQTTLocationSink("tiletrack/location", 1, mockClient, zerolog.Nop())

	err := sink.Deliver(context.Background(), testRenderedMap("map.png"))
	require.NoError(t, err)

	assert.Equal(t, "mqtt", sink.Name())
	assert.Equal(t, "run-1", published.RunID)
	assert.Equal(t, "dev-1", published.DeviceID)
	assert.Equal(t, 35.0, published.Latitude)
	assert.Equal(t, 135.0, published.Longitude)
	assert.Equal(t, "map.png", published.MapFile)
	mockClient.AssertExpectations(t)
	mockToken.AssertExpectations(t)
}

func TestMQTTLocationSink_Deliver_PublishError(t *testing.T) {
	mockClient := new(mocks.MockMQTTClient)
	mockToken := new(mocks.MockToken)

	mockToken.On("Wait").Return(true)
	mockToken.On("Error").Return(errors.New("not connected"))
	mockClient.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(mockToken)

	sink := services.NewMQTTLocationSink("tiletrack/location", 0, mockClient, zerolog.Nop())

	err := sink.Deliver(context.Background(), testRenderedMap("map.png"))
	assert.Error(t, err)
}

func TestObjectStoreSink_Deliver_Success(t *testing.T) {
	mockFiles := new(mocks.MockFileOperations)
	mockFiles.On("OpenFile", "out/map.png").Return(io.NopCloser(strings.NewReader("PNGDATA")), nil).Once()

	var uploaded []byte
	mockStorage := new(mocks.MockObjectStorage)
	mockStorage.On("UploadFile", mock.Anything, "maps", "latest.png", mock.Anything, int64(7), "image/png").
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return("maps/latest.png", nil).Once()

	sink := services.NewObjectStoreSink("maps", "latest.png", mockStorage, mockFiles, zerolog.Nop())

	err := sink.Deliver(context.Background(), testRenderedMap("out/map.png"))
	require.NoError(t, err)
	assert.Equal(t, "object_store", sink.Name())
	assert.Equal(t, []byte("PNGDATA"), uploaded)
	mockFiles.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestObjectStoreSink_Deliver_MissingFile(t *testing.T) {
	mockFiles := new(mocks.MockFileOperations)
	mockFiles.On("OpenFile", "out/map.png").Return(nil, os.ErrNotExist)
	mockStorage := new(mocks.MockObjectStorage)

	sink := services.NewObjectStoreSink("maps", "latest.png", mockStorage, mockFiles, zerolog.Nop())

	err := sink.Deliver(context.Background(), testRenderedMap("out/map.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	mockStorage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectStoreSink_Deliver_UploadError(t *testing.T) {
	mockFiles := new(mocks.MockFileOperations)
	mockFiles.On("OpenFile", mock.Anything).Return(io.NopCloser(strings.NewReader("PNGDATA")), nil)

	mockStorage := new(mocks.MockObjectStorage)
	mockStorage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("access denied"))

	sink := services.NewObjectStoreSink("maps", "latest.png", mockStorage, mockFiles, zerolog.Nop())

	err := sink.Deliver(context.Background(), testRenderedMap("out/map.png"))
	assert.EqualError(t, err, "access denied")
}
