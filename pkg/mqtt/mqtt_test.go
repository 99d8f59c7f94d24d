package mqtt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/tiletrack/pkg/file"
	"github.com/benmeehan/tiletrack/pkg/mqtt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMqttService_Initialize_MissingCACertificate(t *testing.T) {
	svc := mqtt.NewMqttService(file.NewFileService())

	err := svc.Initialize("tcp://127.0.0.1:1", "test-client", filepath.Join(t.TempDir(), "ca.pem"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CA certificate")
}

func TestMqttService_Initialize_InvalidCACertificate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0600))

	svc := mqtt.NewMqttService(file.NewFileService())

	err := svc.Initialize("tcp://127.0.0.1:1", "test-client", path)
	assert.EqualError(t, err, "failed to append CA certificate")
}
