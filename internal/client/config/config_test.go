package config

import (
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		environ  map[string]string
		want     Config
		wantRest []string
	}{
		{
			name:     "defaults",
			args:     []string{"login"},
			environ:  map[string]string{},
			want:     Config{ServerAddr: "127.0.0.1:50051", Timeout: 10 * time.Second},
			wantRest: []string{"login"},
		},
		{
			name:     "environment",
			args:     []string{"me"},
			environ:  map[string]string{"AUTHKEEPER_TOKEN": "tok", "AUTHKEEPER_ADDR": "srv:1", "AUTHKEEPER_TIMEOUT": "3s"},
			want:     Config{ServerAddr: "srv:1", Token: "tok", Timeout: 3 * time.Second},
			wantRest: []string{"me"},
		},
		{
			name:     "flags beat environment",
			args:     []string{"-a", "flag:2", "-t", "flagtok", "-timeout", "1s", "me"},
			environ:  map[string]string{"AUTHKEEPER_TOKEN": "tok", "AUTHKEEPER_ADDR": "srv:1"},
			want:     Config{ServerAddr: "flag:2", Token: "flagtok", Timeout: time.Second},
			wantRest: []string{"me"},
		},
		{
			name:     "no command",
			args:     nil,
			environ:  map[string]string{},
			want:     Config{ServerAddr: "127.0.0.1:50051", Timeout: 10 * time.Second},
			wantRest: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, rest, err := load(tt.args, tt.environ, io.Discard)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, *cfg); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := load(nil, map[string]string{"AUTHKEEPER_TIMEOUT": "soon"}, io.Discard)
	assert.ErrorContains(t, err, "environment")

	_, _, err = load([]string{"-bogus"}, map[string]string{}, io.Discard)
	assert.Error(t, err)
}
