package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads environment variables from a .env file. The first call
// wins; later calls are no-ops. Existing environment variables are never
// overwritten unless DOTENV_OVERLOAD=1 is set, and NO_DOTENV=1 disables the
// mechanism entirely.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}

	// Walk upwards from the working directory so commands run from cmd/
	// subdirectories still pick up the repository .env.
	dir, err := os.Getwd()
	if err != nil {
		_ = load(".env")
		return
	}
	for i := 0; i < 8; i++ {
		_ = load(filepath.Join(dir, ".env"))
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
