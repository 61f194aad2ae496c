package validators

import (
	"math"
	"testing"

	"github.com/cloud-ru/mcp-mortgage-go/internal/config"
)

func TestValidators(t *testing.T) {
	cfg := &config.Config{MaxPrincipal: 1e9, MaxRate: 36, MaxYears: 30}

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, "principal", v.(float64)) },
			value:     1000000.0,
			wantError: false,
		},
		{
			name:      "zero principal allowed",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, "principal", v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid principal negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, "principal", v.(float64)) },
			value:     -1000.0,
			wantError: true,
		},
		{
			name:      "invalid principal too large",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, "principal", v.(float64)) },
			value:     2e9,
			wantError: true,
		},
		{
			name:      "invalid principal NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, "principal", v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "valid rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     3.45,
			wantError: false,
		},
		{
			name:      "zero rate allowed",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "invalid rate above cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     48.0,
			wantError: true,
		},
		{
			name:      "valid years",
			validator: func(cfg *config.Config, v interface{}) error { return CheckYears(cfg, v.(int)) },
			value:     30,
			wantError: false,
		},
		{
			name:      "invalid years zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckYears(cfg, v.(int)) },
			value:     0,
			wantError: true,
		},
		{
			name:      "invalid years above cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckYears(cfg, v.(int)) },
			value:     31,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
