package publishers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_SQS_SECRET", "s3cret")

	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: results-queue
    type: queue
    queue:
      provider: aws-sqs
      sqs:
        uri: https://sqs.us-east-1.amazonaws.com/123/q
        region: us-east-1
        access_key_id: AKIA123
        secret_access_key: ${TEST_SQS_SECRET}
  - id: webhook
    type: http
    enabled: false
    http:
      url: https://hooks.example.com/news
`)

	reg, err := LoadConfig(path)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)

	queue, ok := reg.ByID("results-queue")
	require.True(t, ok)
	assert.Equal(t, "s3cret", queue.Queue.SQS.SecretAccessKey)

	enabled := reg.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "results-queue", enabled[0].ID)
}

func TestLoadConfig_JSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "publishers.json", `{
		"publishers": [
			{"id": "webhook", "type": "http", "http": {"url": "https://hooks.example.com/news"}}
		]
	}`)

	reg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg, ok := reg.ByID("webhook")
	require.True(t, ok)
	assert.Equal(t, httpDefaultTimeoutSeconds, cfg.HTTP.TimeoutSeconds)
	assert.True(t, cfg.EnabledValue())
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing id",
			"publishers:\n  - type: http\n    http:\n      url: https://x.example.com\n",
			"id is required",
		},
		{
			"unknown type",
			"publishers:\n  - id: bad\n    type: carrier-pigeon\n",
			"not supported",
		},
		{
			"http without url",
			"publishers:\n  - id: webhook\n    type: http\n    http:\n      headers: {}\n",
			"http.url is required",
		},
		{
			"queue without provider config",
			"publishers:\n  - id: q\n    type: queue\n    queue:\n      provider: gcp\n",
			"gcp.project_id and gcp.topic are required",
		},
		{
			"duplicate ids",
			"publishers:\n  - id: webhook\n    type: http\n    http:\n      url: https://x.example.com\n  - id: webhook\n    type: http\n    http:\n      url: https://y.example.com\n",
			"duplicate publisher id",
		},
		{"empty file", "publishers: []\n", "no publishers entries"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "publishers.yaml", tc.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	evt := NewEvent(nil)
	assert.Empty(t, evt.Ticker)
}
