package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const maxRootSearchDepth = 8

func isRepoRoot(dir string) bool {
	return fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git"))
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// ProjectRoot locates the repository root by walking upwards from this source
// file until it finds go.mod or .git. Falls back to the working directory.
func ProjectRoot() (string, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		dir := filepath.Dir(file)
		for i := 0; i < maxRootSearchDepth; i++ {
			if isRepoRoot(dir) {
				return dir, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

// MustProjectRoot returns the repository root path or panics on failure.
func MustProjectRoot() string {
	root, err := ProjectRoot()
	if err != nil {
		panic(err)
	}
	return root
}

// ProjectPath joins the repository root with the provided relative path.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// MustProjectPath returns ProjectPath(rel) and panics on failure.
func MustProjectPath(rel string) string {
	p, err := ProjectPath(rel)
	if err != nil {
		panic(err)
	}
	return p
}
