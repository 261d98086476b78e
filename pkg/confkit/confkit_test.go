package confkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"mindtrade-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONF_DIR", "expanded")

	tests := []struct {
		name     string
		base     string
		file     string
		expected string
	}{
		{"absolute path", "/base/dir", "/abs/file.yaml", "/abs/file.yaml"},
		{"relative path", "/base/dir", "etc/file.yaml", "/base/dir/etc/file.yaml"},
		{"env var expansion", "/base/dir", "${CONF_DIR}/file.yaml", "/base/dir/expanded/file.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confkit.ResolvePath(tt.base, tt.file); got != tt.expected {
				t.Errorf("ResolvePath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBaseDir(t *testing.T) {
	if got := confkit.BaseDir("/etc/config/app.yaml"); got != "/etc/config" {
		t.Errorf("BaseDir() = %v, want /etc/config", got)
	}
	if got := confkit.BaseDir("etc/app.yaml"); got != "etc" {
		t.Errorf("BaseDir() = %v, want etc", got)
	}
}

func TestSection_Hydrate(t *testing.T) {
	t.Run("empty file skips loading", func(t *testing.T) {
		section := &confkit.Section[string]{}
		err := section.Hydrate("/base", func(path string) (*string, error) {
			t.Error("loader should not be called for empty file")
			return nil, nil
		})
		if err != nil {
			t.Errorf("Hydrate() with empty file should not error, got: %v", err)
		}
		if section.Value != nil {
			t.Error("Value should remain nil for empty file")
		}
	})

	t.Run("hydrates and records resolved path", func(t *testing.T) {
		section := &confkit.Section[string]{File: "config.yaml"}
		expected := "test value"

		err := section.Hydrate("/base", func(path string) (*string, error) {
			if path != "/base/config.yaml" {
				t.Errorf("loader received path %v, want /base/config.yaml", path)
			}
			return &expected, nil
		})
		if err != nil {
			t.Errorf("Hydrate() error = %v, want nil", err)
		}
		if section.Value == nil || *section.Value != expected {
			t.Errorf("Value = %v, want %v", section.Value, expected)
		}
		if section.File != "/base/config.yaml" {
			t.Errorf("File = %v, want /base/config.yaml", section.File)
		}
	})
}

func TestProjectRoot(t *testing.T) {
	root, err := confkit.ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "go.mod")); statErr != nil {
		t.Errorf("expected go.mod under project root %s: %v", root, statErr)
	}
}
