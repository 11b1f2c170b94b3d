package sfreport

import (
	"net/http"

	"github.com/viant/afs"
	"github.com/viant/sfreport/internal/clock"
	"github.com/viant/sfreport/pipeline"
	"github.com/viant/sfreport/progress"
	"github.com/viant/sfreport/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithHTTPClient sets the underlying http client shared by every component.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) { s.httpClient = httpClient }
}

// WithSleeper replaces the sleeper used for retry backoff and inter report delays.
func WithSleeper(sleeper clock.Sleeper) Option {
	return func(s *Service) { s.sleep = sleeper }
}

// WithProgress sets the callback invoked after every exported report.
func WithProgress(callback progress.Callback) Option {
	return func(s *Service) { s.onProgress = callback }
}

// WithFS sets the file system service used for working directories and archives.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithRecorder sets the run recorder, overriding history.dsn.
func WithRecorder(recorder pipeline.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the stdout
// exporter is used; otherwise traces are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
