package observability

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fedenh3/proyecto-cava/internal/config"
)

func TestInitUptrace_NoopPaths(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{
			name: "disabled",
			cfg: config.Config{
				UptraceEnabled: false,
				ServiceName:    "proyecto-cava",
				ServiceVersion: "dev",
				AppEnv:         config.EnvDev,
			},
		},
		{
			name: "enabled without dsn",
			cfg: config.Config{
				UptraceEnabled: true,
				UptraceDSN:     "   ",
				ServiceName:    "proyecto-cava",
				ServiceVersion: "dev",
				AppEnv:         config.EnvDev,
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := InitUptrace(tc.cfg, logger)
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}
