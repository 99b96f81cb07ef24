package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where publicbusiness stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your publicbusiness instance.
	InstanceURL string

	// ThreadMaxNodes bounds how many posts a single thread build may visit.
	ThreadMaxNodes int
	// ThreadMaxDepth bounds how deep a single thread build may recurse.
	ThreadMaxDepth int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvOrDefault returns the environment variable parsed as int, or the
// default value when unset or unparsable.
func getIntEnvOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// FromEnv loads configuration from PB_* environment variables.
func (p *Profile) FromEnv() {
	p.InstanceURL = getEnvOrDefault("PB_INSTANCE_URL", p.InstanceURL)
	p.ThreadMaxNodes = getIntEnvOrDefault("PB_THREAD_MAX_NODES", defaultThreadMaxNodes)
	p.ThreadMaxDepth = getIntEnvOrDefault("PB_THREAD_MAX_DEPTH", defaultThreadMaxDepth)
}

const (
	defaultThreadMaxNodes = 500
	defaultThreadMaxDepth = 50
)

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/publicbusiness"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("publicbusiness_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.ThreadMaxNodes <= 0 {
		p.ThreadMaxNodes = defaultThreadMaxNodes
	}
	if p.ThreadMaxDepth <= 0 {
		p.ThreadMaxDepth = defaultThreadMaxDepth
	}

	return nil
}
