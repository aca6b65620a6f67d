package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGODB_URI", "MONGODB_DB", "APP_NAME", "DEBUG", "PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("expected default mongo uri, got %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "pathoai" {
		t.Fatalf("expected default db pathoai, got %q", cfg.MongoDB)
	}
	if cfg.AppName != "PathoAi API" {
		t.Fatalf("expected default app name, got %q", cfg.AppName)
	}
	if !cfg.Debug {
		t.Fatalf("expected DEBUG to default to true")
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
}

func TestLoadDebugValues(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    bool
		wantErr bool
	}{
		{name: "true", raw: "true", want: true},
		{name: "false", raw: "false", want: false},
		{name: "numeric", raw: "1", want: true},
		{name: "malformed", raw: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", tt.raw)
			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for DEBUG=%q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Debug != tt.want {
				t.Fatalf("DEBUG=%q: got %v, want %v", tt.raw, cfg.Debug, tt.want)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("MONGODB_DB", "pathoai_test")
	t.Setenv("APP_NAME", "PathoAi Staging")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MongoURI != "mongodb://db.internal:27017" {
		t.Fatalf("unexpected mongo uri %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "pathoai_test" {
		t.Fatalf("unexpected db name %q", cfg.MongoDB)
	}
	if cfg.AppName != "PathoAi Staging" {
		t.Fatalf("unexpected app name %q", cfg.AppName)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
}
