package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")
	ctx := context.Background()

	log.Info(ctx, "inf", "a", 1)
	log.Warn(ctx, "wrn", "b", 2)
	log.Error(ctx, "err", "c", 3)

	out := buf.String()
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=wrn")
	assert.Contains(t, out, "b=2")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "c=3")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.With("request_id", "abc").Info(context.Background(), "hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "v", line["k"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error(context.TODO(), "discarded")
	log.With("k", "v").Info(context.TODO(), "discarded")
}
