// Package observability starts the optional tracing and profiling exporters
// shared by the API and scoutctl.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/config"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
)

// Stack holds whatever Setup started. The zero value is valid and stops
// nothing.
type Stack struct {
	logger *logging.Logger
	stops  []namedStop
}

type namedStop struct {
	name string
	fn   func(context.Context) error
}

// Setup starts Uptrace tracing, Pyroscope profiling and the pprof listener,
// each only when enabled in cfg. On error everything already started is
// stopped.
func Setup(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config) (func(context.Context) error, error)
	}{
		{"uptrace", s.startTracing},
		{"pyroscope", s.startProfiler},
		{"pprof", s.startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg)
		if err != nil {
			_ = s.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			s.stops = append(s.stops, namedStop{name: step.name, fn: stop})
		}
	}
	return s, nil
}

// Shutdown flushes and stops in reverse start order.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs error
	for i := len(s.stops) - 1; i >= 0; i-- {
		if err := s.stops[i].fn(ctx); err != nil {
			errs = errors.Join(errs, fmt.Errorf("stop %s: %w", s.stops[i].name, err))
		}
	}
	s.stops = nil
	return errs
}

// Enabled lists the exporters that are running.
func (s *Stack) Enabled() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.stops))
	for _, st := range s.stops {
		out = append(out, st.name)
	}
	return out
}

func (s *Stack) startTracing(cfg config.Config) (func(context.Context) error, error) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		s.logger.Debug("uptrace disabled")
		return nil, nil
	}
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	s.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
	return uptrace.Shutdown, nil
}

func (s *Stack) startProfiler(cfg config.Config) (func(context.Context) error, error) {
	if !cfg.PyroscopeEnabled {
		s.logger.Debug("pyroscope disabled")
		return nil, nil
	}
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":           cfg.AppEnv,
			"service":       cfg.ServiceName,
			"roster_source": cfg.RosterSource,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return func(context.Context) error { return profiler.Stop() }, nil
}

func (s *Stack) startPprof(cfg config.Config) (func(context.Context) error, error) {
	if !cfg.PprofEnabled {
		s.logger.Debug("pprof disabled")
		return nil, nil
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{Addr: cfg.PprofAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		s.logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}()
	return srv.Shutdown, nil
}
