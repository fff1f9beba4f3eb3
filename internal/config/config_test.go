package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte("server:\n  host: 127.0.0.1\n  port: 9000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Fatalf("explicit fields lost: %+v", cfg.Server)
	}
	if cfg.Server.TickRate != 20 {
		t.Fatalf("tick rate default: got %d", cfg.Server.TickRate)
	}
	if cfg.Grid.Subdivisions != 16 || cfg.Grid.Index != "sparse" || cfg.Grid.MaxPopulation != 100 {
		t.Fatalf("grid defaults: %+v", cfg.Grid)
	}
	if cfg.Lookup.BucketsPerAxis != 32 {
		t.Fatalf("lookup default: %+v", cfg.Lookup)
	}
	if cfg.Session.MaxPlayers != 100 {
		t.Fatalf("session default: %+v", cfg.Session)
	}
}

func TestLoadRejectsUnknownIndexStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte("grid:\n  index: btree\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("unknown index strategy accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
