package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: Options{}},
		{name: "json debug", opts: Options{Level: "debug", Format: "json"}},
		{name: "console warn", opts: Options{Level: "warn", Format: "console"}},
		{name: "bad level", opts: Options{Level: "loud"}, wantErr: true},
		{name: "bad format", opts: Options{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			tt.opts.Output = buf
			log, err := New(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	log, err := New(Options{Level: "info", Format: "json", Output: buf})
	require.NoError(t, err)

	log.Debugw("hidden")
	log.Infow("conversion finished", "bytes", 4)
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "conversion finished", entry["message"])
	assert.Equal(t, float64(4), entry["bytes"])
}
