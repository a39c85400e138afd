package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"deliveryeta/internal/config"
	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/estimator"
)

const calauanJSON = `{"latitude":14.1494,"longitude":121.3156,"municipality":"Calauan","barangay":"San Isidro","postal_code":"4012","order_size":10,"time_of_order":14,"day_of_week":2}`

func fallbackEngine(t *testing.T) *estimator.Engine {
	t.Helper()
	c := config.Config{Tariff: config.DefaultTariff()}
	return newEngine(c, artifact.NewFileStore(t.TempDir()), zap.NewNop())
}

func TestPredict_FromArgument(t *testing.T) {
	var out bytes.Buffer
	err := predict(context.Background(), fallbackEngine(t), []string{calauanJSON}, strings.NewReader(""), &out)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 42.14, body["delivery_time_minutes"])
	assert.Equal(t, 0.70, body["delivery_time_hours"])
	assert.Equal(t, 71.07, body["shipping_fee"])
}

func TestPredict_FromStdin(t *testing.T) {
	var out bytes.Buffer
	err := predict(context.Background(), fallbackEngine(t), nil, strings.NewReader(calauanJSON), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"shipping_fee":71.07`)
}

func TestPredict_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantErr string
	}{
		{"bad argument", []string{"{"}, "", "Invalid JSON argument"},
		{"bad stdin", nil, "not json", "Invalid JSON input"},
		{"missing coordinates", []string{`{"order_size":3}`}, "", "latitude and longitude are required"},
		{"bad hour", []string{`{"latitude":14.1,"longitude":121.3,"time_of_order":30}`}, "", "time_of_order"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := predict(context.Background(), fallbackEngine(t), tc.args, strings.NewReader(tc.stdin), &out)
			assert.ErrorIs(t, err, errPredictFailed)

			var body map[string]any
			require.NoError(t, json.Unmarshal(out.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tc.wantErr)
		})
	}
}

func TestCommands_GenerateTrainPredict(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ETA_DATASET_PATH", filepath.Join(dir, "corpus.csv"))
	t.Setenv("ETA_MODEL_DIR", filepath.Join(dir, "models"))
	t.Setenv("ETA_TRAINING_TREES", "5")
	t.Setenv("ETA_LOG_LEVEL", "error")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute(), out.String())
		return out.String()
	}

	assert.Contains(t, run("generate", "--samples", "300"), "generated 300 observations")
	assert.FileExists(t, filepath.Join(dir, "corpus.csv"))

	trained := run("train")
	assert.Contains(t, trained, "linear_regression")
	assert.Contains(t, trained, "random_forest")
	assert.Contains(t, trained, "selected ")
	assert.FileExists(t, filepath.Join(dir, "models", artifact.MetadataFile))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(run("predict", calauanJSON)), &body))
	assert.Equal(t, true, body["success"])
	assert.GreaterOrEqual(t, body["delivery_time_minutes"], 20.0)
}
