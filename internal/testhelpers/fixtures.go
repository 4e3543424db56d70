package testhelpers

import (
	"os"
	"path/filepath"
	"runtime"
)

// LoadFixture reads a file from testhelpers/fixtures regardless of the
// calling package's directory.
func LoadFixture(name string) ([]byte, error) {
	return os.ReadFile(FixturePath(name))
}

func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "fixtures", name)
}
