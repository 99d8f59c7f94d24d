package models_test

import (
	"testing"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOptionalCoordinate_ZeroValueIsUnset(t *testing.T) {
	var o models.OptionalCoordinate

	c, ok := o.Get()
	assert.False(t, ok)
	assert.False(t, o.IsSet())
	assert.Equal(t, models.Coordinate{}, c)
}

func TestOptionalCoordinate_Some(t *testing.T) {
	o := models.SomeCoordinate(models.Coordinate{Latitude: 35.0, Longitude: 135.0})

	c, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, 35.0, c.Latitude)
	assert.Equal(t, 135.0, c.Longitude)
}

func TestOptionalCoordinate_SomeZeroCoordinateIsSet(t *testing.T) {
	o := models.SomeCoordinate(models.Coordinate{})
	assert.True(t, o.IsSet())
}
