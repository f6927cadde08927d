package config

import (
	"strings"
	"testing"
)

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "non-production is never checked",
			cfg:  Config{Environment: EnvDevelopment, CORSAllowedOrigins: "*", LogLevel: "debug"},
		},
		{
			name: "valid production config",
			cfg:  Config{Environment: EnvProduction, CORSAllowedOrigins: "https://example.com", LogLevel: "info", NotifierBackend: NotifierSQL},
		},
		{
			name:    "wildcard cors",
			cfg:     Config{Environment: EnvProduction, CORSAllowedOrigins: "*", LogLevel: "info"},
			wantErr: "CORS_ALLOWED_ORIGINS",
		},
		{
			name:    "debug logging",
			cfg:     Config{Environment: EnvProduction, CORSAllowedOrigins: "https://example.com", LogLevel: "debug"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "kafka without brokers",
			cfg:     Config{Environment: EnvProduction, CORSAllowedOrigins: "https://example.com", LogLevel: "info", NotifierBackend: NotifierKafka},
			wantErr: "KAFKA_BROKERS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForProduction(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateEnums(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{Environment: EnvDevelopment, NotifierBackend: NotifierSQL}},
		{name: "production kafka", cfg: Config{Environment: EnvProduction, NotifierBackend: NotifierKafka}},
		{name: "testing", cfg: Config{Environment: EnvTesting, NotifierBackend: NotifierSQL}},
		{name: "unknown environment", cfg: Config{Environment: "staging", NotifierBackend: NotifierSQL}, wantErr: "ENVIRONMENT"},
		{name: "empty environment", cfg: Config{NotifierBackend: NotifierSQL}, wantErr: "ENVIRONMENT"},
		{name: "unknown notifier", cfg: Config{Environment: EnvDevelopment, NotifierBackend: "rabbitmq"}, wantErr: "NOTIFIER_BACKEND"},
		{name: "notifier is case sensitive", cfg: Config{Environment: EnvDevelopment, NotifierBackend: "Kafka"}, wantErr: "NOTIFIER_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEnums(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
