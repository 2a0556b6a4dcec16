package config

import "testing"

func TestMaskDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"empty", "", "(not set)"},
		{"url without password", "postgres://localhost/shikabom", "postgres://localhost/shikabom"},
		{"url with password", "postgres://me:hunter2@db:5432/inv", "postgres://me:****@db:5432/inv"},
		{"key value", "host=db user=me password=hunter2 dbname=inv", "host=db user=me password=**** dbname=inv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskDSN(tt.dsn); got != tt.want {
				t.Errorf("MaskDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestGetDSNSource(t *testing.T) {
	t.Setenv("SHIKABOM_DATABASE_DSN", "")
	t.Setenv("DATABASE_URL", "")

	if got := GetDSNSource(Default()); got != DSNSourceDefault {
		t.Errorf("GetDSNSource(default) = %q, want %q", got, DSNSourceDefault)
	}

	cfg := Default()
	cfg.Database.DSN = "postgres://elsewhere/inv"
	if got := GetDSNSource(cfg); got != DSNSourceConfig {
		t.Errorf("GetDSNSource(custom) = %q, want %q", got, DSNSourceConfig)
	}

	t.Setenv("DATABASE_URL", "postgres://env/inv")
	if got := GetDSNSource(cfg); got != DSNSourceEnv {
		t.Errorf("GetDSNSource(env) = %q, want %q", got, DSNSourceEnv)
	}
}
