package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	if !assert.NoError(t, Init("sfreport", "0.0.1", fname)) {
		return
	}

	_, span := StartSpan(context.Background(), "test", KindInternal)
	span.WithAttributes(map[string]string{"k": "v"})
	span.SetStatusFromHTTPCode(200)
	EndSpan(span, nil)

	_, failed := StartSpan(context.Background(), "failed", KindClient)
	EndSpan(failed, errors.New("boom"))

	data, err := os.ReadFile(fname)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	span.SetStatusFromHTTPCode(500)
	EndSpan(span, nil)
}
