package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "digimarket", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestExporterOptions(t *testing.T) {
	tests := []struct {
		endpoint string
		wantLen  int
		wantErr  bool
	}{
		{endpoint: "collector:4318", wantLen: 2},
		{endpoint: "http://collector:4318", wantLen: 2},
		{endpoint: "https://collector.example/v1/traces", wantLen: 2},
		{endpoint: "grpc://collector:4317", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			opts, err := exporterOptions(tt.endpoint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, tt.wantLen)
		})
	}
}
