// Package confkit holds the small configuration plumbing shared by every
// module: dotenv loading, project-relative path resolution and per-section
// config file hydration.
package confkit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/conf"
)

// ResolvePath resolves file relative to base after expanding environment
// variables. Absolute paths are returned as-is.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// BaseDir returns the directory holding the main config file.
func BaseDir(mainPath string) string {
	return filepath.Dir(mainPath)
}

// LoadFile loads a configuration file into T via go-zero's conf.Load,
// optionally expanding ${VAR} references from the environment.
func LoadFile[T any](path string, useEnv bool) (*T, error) {
	var cfg T
	opts := []conf.Option{}
	if useEnv {
		opts = append(opts, conf.UseEnv())
	}
	if err := conf.Load(path, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// Section points at a module config file that lives outside the main app
// config. Value is populated by Hydrate.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base and runs loader over it. An empty File
// leaves the section unhydrated, which callers treat as "use defaults".
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}
