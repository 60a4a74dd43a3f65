package worker

import (
	"context"
	"fmt"

	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// PublishJob publishes events off the request path
type PublishJob struct {
	Bus    event.Bus
	Events []event.Event
}

// Process publishes every event, continuing past failures
func (j PublishJob) Process(ctx context.Context) error {
	var failed int
	for _, evt := range j.Events {
		if err := j.Bus.Publish(ctx, evt); err != nil {
			failed++
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d events failed to publish", failed, len(j.Events))
	}
	return nil
}

// Counter returns a current count, such as catalog size
type Counter func(ctx context.Context) (int, error)

// Gauge receives a refreshed count
type Gauge interface {
	Set(float64)
}

// GaugeRefreshJob copies counts into gauges
type GaugeRefreshJob struct {
	Name  string
	Count Counter
	Gauge Gauge
}

func (j GaugeRefreshJob) Process(ctx context.Context) error {
	n, err := j.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh %s: %w", j.Name, err)
	}
	j.Gauge.Set(float64(n))
	logger.FromContext(ctx).Debug(LogMsgGaugeRefreshed, "gauge", j.Name, "value", n)
	return nil
}
