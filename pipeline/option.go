package pipeline

import (
	"time"

	"github.com/viant/afs"
	"github.com/viant/sfreport/internal/clock"
	"github.com/viant/sfreport/progress"
)

// Option customises a Runner.
type Option func(r *Runner)

// WithDelay sets the pause between reports; zero disables it.
func WithDelay(delay time.Duration) Option {
	return func(r *Runner) { r.delay = delay }
}

// WithProgress sets the callback invoked after every report.
func WithProgress(callback progress.Callback) Option {
	return func(r *Runner) { r.onProgress = callback }
}

// WithRecorder sets the run history recorder.
func WithRecorder(recorder Recorder) Option {
	return func(r *Runner) { r.recorder = recorder }
}

// WithSleeper replaces the inter report sleeper.
func WithSleeper(sleeper clock.Sleeper) Option {
	return func(r *Runner) { r.sleep = sleeper }
}

// WithFS sets the file system service.
func WithFS(fs afs.Service) Option {
	return func(r *Runner) { r.fs = fs }
}

// WithTempDir sets the parent of working directories.
func WithTempDir(dir string) Option {
	return func(r *Runner) { r.tempDir = dir }
}
