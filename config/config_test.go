package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/patterns/core/model"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `logging:
  level: debug
executors:
  - name: here
    type: local
    conf:
      dir: /tmp
  - name: build-box
    type: remote
    conf:
      hostname: build.example.com
      port: 2222
      username: deploy
      key_file: /keys/id_ed25519
metrics:
  sinks:
    - type: prometheus
  textfile: /var/lib/node_exporter/patterns.prom
catalog:
  products:
    - name: Chair
      color: red
      size: medium
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	remote, ok := cfg.Profile("build-box")
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"logging.level", cfg.Logging.Level, "debug"},
		{"executors", len(cfg.Executors), 2},
		{"executors[0].type", cfg.Executors[0].Type, "local"},
		{"executors[0].conf.dir", cfg.Executors[0].Conf["dir"], "/tmp"},
		{"profile found", ok, true},
		{"profile.type", remote.Module().Type, "remote"},
		{"profile.conf.hostname", remote.Conf["hostname"], "build.example.com"},
		{"metrics.sinks", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "prometheus", true},
		{"metrics.textfile", cfg.Metrics.Textfile, "/var/lib/node_exporter/patterns.prom"},
		{"catalog", len(cfg.Catalog.Products), 1},
		{"catalog.color", cfg.Catalog.Products[0].Color, model.ColorRed},
		{"catalog.size", cfg.Catalog.Products[0].Size, model.SizeMedium},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"logging":{"level":"warn"},"executors":[{"name":"sh","type":"local"}]}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.Len(t, cfg.Executors, 1)
	assert.Nil(t, cfg.Executors[0].Conf)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Executors)

	products, err := cfg.Catalog.Build()
	require.NoError(t, err)
	want := []model.Product{
		model.NewProduct("Apple", model.ColorGreen, model.SizeSmall),
		model.NewProduct("Tree", model.ColorGreen, model.SizeLarge),
		model.NewProduct("House", model.ColorBlue, model.SizeLarge),
	}
	assert.Equal(t, want, products)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PATTERNS_LOGGING__LEVEL", "error")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		name string
		data string
		msg  string
	}{
		"format":    {"config.toml", "a = 1", "unsupported config format"},
		"level":     {"c.yaml", "logging:\n  level: loud\n", "unknown level"},
		"no name":   {"c.yaml", "executors:\n  - type: local\n", "name is required"},
		"no type":   {"c.yaml", "executors:\n  - name: x\n", "type is required"},
		"duplicate": {"c.yaml", "executors:\n  - {name: x, type: local}\n  - {name: x, type: remote}\n", "duplicate name"},
		"color":     {"c.yaml", "catalog:\n  products:\n    - {name: Cup, color: purple, size: small}\n", `unknown color "purple"`},
		"size":      {"c.yaml", "catalog:\n  products:\n    - {name: Cup, color: red, size: huge}\n", `unknown size "huge"`},
		"no color":  {"c.yaml", "catalog:\n  products:\n    - {name: Cup, size: small}\n", "product Cup: color is required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.name, tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
