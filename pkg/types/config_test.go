package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DatabaseURL: "postgres://localhost/db"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "mysql"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "negative timeout returns ErrTimeoutInvalid",
			config:  Config{Backend: "memory", Timeout: -time.Second},
			wantErr: ErrTimeoutInvalid,
		},
		{
			name:    "valid postgres config",
			config:  Config{Backend: "postgres", DatabaseURL: "postgres://localhost/db"},
			wantErr: nil,
		},
		{
			name:    "postgres with empty DatabaseURL is valid at config level",
			config:  Config{Backend: "postgres"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty DataDir is valid at config level",
			config:  Config{Backend: "sqlite", DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "memory backend",
			config:  Config{Backend: "memory"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
