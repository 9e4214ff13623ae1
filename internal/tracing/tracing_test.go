// internal/tracing/tracing_test.go
package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStdoutWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tp, shutdown, err := Setup("stdout", &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "design")
	span.End()
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"design"`)
}

func TestSetupNone(t *testing.T) {
	tp, shutdown, err := Setup("none", nil)
	require.NoError(t, err)
	_, span := tp.Tracer("test").Start(context.Background(), "x")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupUnknown(t *testing.T) {
	_, _, err := Setup("zipkin", nil)
	assert.True(t, errors.Is(err, ErrUnknownExporter))
}
