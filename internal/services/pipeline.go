package services

import (
	"context"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Locator is the device lookup stage of the pipeline.
type Locator interface {
	AuthenticateAndFetch(ctx context.Context) error
	GetLocation() models.OptionalCoordinate
	TargetDeviceID() string
}

// Renderer is the map rendering stage of the pipeline.
type Renderer interface {
	SetLocation(coordinate models.Coordinate)
	Render(ctx context.Context) (models.RenderedMap, error)
}

// Sink receives the result of a successful run.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rendered models.RenderedMap) error
}

// Pipeline runs one lookup followed by one render.
type Pipeline struct {
	locator  Locator
	renderer Renderer
	sinks    []Sink
	logger   zerolog.Logger
}

// NewPipeline creates a new Pipeline. Sinks run in the given order after a successful render.
func NewPipeline(locator Locator, renderer Renderer, logger zerolog.Logger, sinks ...Sink) *Pipeline {
	return &Pipeline{
		locator:  locator,
		renderer: renderer,
		sinks:    sinks,
		logger:   logger,
	}
}

// Run executes the pipeline once. The first failure ends the run and is returned unchanged;
// reporting it is left to the caller.
func (p *Pipeline) Run(ctx context.Context) (models.RenderedMap, error) {
	runID := uuid.New().String()
	logger := p.logger.With().Str("run_id", runID).Logger()
	logger.Info().Str("target_device_id", p.locator.TargetDeviceID()).Msg("Run started")

	// The lookup runs as its own task and is awaited before rendering starts.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.locator.AuthenticateAndFetch(gctx)
	})
	if err := g.Wait(); err != nil {
		return models.RenderedMap{}, err
	}

	coordinate, ok := p.locator.GetLocation().Get()
	if !ok {
		return models.RenderedMap{}, &TargetNotFoundError{DeviceID: p.locator.TargetDeviceID()}
	}

	p.renderer.SetLocation(coordinate)
	rendered, err := p.renderer.Render(ctx)
	if err != nil {
		return models.RenderedMap{}, err
	}
	rendered.RunID = runID
	rendered.DeviceID = p.locator.TargetDeviceID()

	for _, sink := range p.sinks {
		if err := sink.Deliver(ctx, rendered); err != nil {
			return rendered, &SinkError{Sink: sink.Name(), Err: err}
		}
		logger.Debug().Str("sink", sink.Name()).Msg("Sink delivered")
	}

	logger.Info().
		Str("path", rendered.Path).
		Int64("bytes", rendered.Bytes).
		Msg("Run finished")
	return rendered, nil
}
