// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, structured bool) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	old := Get()
	t.Cleanup(func() { Set(old) })
	if structured {
		Set(slog.New(slog.NewJSONHandler(buf, opts)))
	} else {
		Set(slog.New(slog.NewTextHandler(buf, opts)))
	}
	return buf
}

func TestFormattedHelpers(t *testing.T) { //nolint:paralleltest // swaps the singleton
	buf := captureLogs(t, false)

	Infof("imported %d modules", 3)
	Warnf("skipping %s", "gadgets.yaml")
	Errorf("fetch failed: %v", "timeout")
	Debugf("resolved %q", "k8s")

	out := buf.String()
	assert.Contains(t, out, "imported 3 modules")
	assert.Contains(t, out, "skipping gadgets.yaml")
	assert.Contains(t, out, "fetch failed: timeout")
	assert.Contains(t, out, `resolved \"k8s\"`)
}

func TestStructuredHelpers(t *testing.T) { //nolint:paralleltest // swaps the singleton
	buf := captureLogs(t, true)

	Infow("import complete", "modules", 2, "definitions", 41)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "import complete", entry["msg"])
	assert.Equal(t, float64(2), entry["modules"])
	assert.Equal(t, float64(41), entry["definitions"])
}

func TestInitializeHonorsDebugFlag(t *testing.T) { //nolint:paralleltest // viper global
	old := Get()
	t.Cleanup(func() {
		Set(old)
		viper.Set("debug", false)
	})

	t.Setenv("UNSTRUCTURED_LOGS", "true")

	viper.Set("debug", false)
	Initialize()
	assert.False(t, Get().Enabled(context.Background(), slog.LevelDebug))

	viper.Set("debug", true)
	Initialize()
	assert.True(t, Get().Enabled(context.Background(), slog.LevelDebug))
}

func TestUnstructuredLogsEnv(t *testing.T) { //nolint:paralleltest // mutates env
	t.Setenv("UNSTRUCTURED_LOGS", "false")
	assert.False(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "true")
	assert.True(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "not-a-bool")
	assert.True(t, unstructuredLogs(), "unparseable values default to unstructured")
}

func TestPlainHelpersDoNotPanic(t *testing.T) { //nolint:paralleltest // swaps the singleton
	buf := captureLogs(t, false)

	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")
	Debugw("debug kv", "k", "v")
	Warnw("warn kv", "k", "v")
	Errorw("error kv", "k", "v")

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 7, lines)
}
