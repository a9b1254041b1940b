package observability

import (
	"context"
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fulbito-league/internal/config"
	"github.com/riskibarqy/fulbito-league/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

// Telemetry tracks the exporters and profilers started at boot so they can be
// torn down in reverse order.
type Telemetry struct {
	logger     *logging.Logger
	components []component
}

// Start brings up Uptrace, Pyroscope and the pprof listener according to cfg.
// Disabled components are skipped. If one fails, the ones already running are
// stopped before the error is returned.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (stopFunc, error)
	}{
		{"uptrace", startUptrace},
		{"pyroscope", startPyroscope},
		{"pprof", startPprof},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, crerr.Wrapf(err, "start %s", s.name)
		}
		if stop != nil {
			t.components = append(t.components, component{name: s.name, stop: stop})
		}
	}
	return t, nil
}

// Active lists the running components in start order.
func (t *Telemetry) Active() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.components))
	for _, c := range t.components {
		names = append(names, c.name)
	}
	return names
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var combined error
	for _, c := range slices.Backward(t.components) {
		if err := c.stop(ctx); err != nil {
			t.logger.WarnContext(ctx, "telemetry shutdown failed", "component", c.name, "error", err)
			combined = crerr.CombineErrors(combined, crerr.Wrapf(err, "stop %s", c.name))
		}
	}
	t.components = nil
	return combined
}
