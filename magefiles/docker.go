//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
)

// Postgres container constants.
const (
	postgresImage     = "postgres:16-alpine"
	postgresContainer = "datebug-postgres"
	postgresPort      = "55432"
	postgresUser      = "datebug"
	postgresPassword  = "datebug"
	postgresDB        = "datebug"
	postgresReadyWait = 30 * time.Second
)

// Postgres groups the container lifecycle targets.
type Postgres mg.Namespace

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable. It checks both that the
// binary exists on PATH and that it can connect to its daemon/machine.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}

// postgresURL is the DATABASE_URL for the container started by Postgres.Up.
func postgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresPort, postgresDB)
}

// containerRunning reports whether the named container is up.
func containerRunning(rt string) bool {
	out, err := exec.Command(rt, "ps", "--filter", "name="+postgresContainer, "--format", "{{.Names}}").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == postgresContainer
}

// Up starts a throwaway Postgres container and waits until it accepts
// connections. It is a no-op when the container is already running.
func (Postgres) Up() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no container runtime found (tried podman, docker)")
	}
	if containerRunning(rt) {
		return nil
	}

	fmt.Fprintf(os.Stderr, "Starting %s on port %s...\n", postgresImage, postgresPort)
	cmd := exec.Command(rt, "run", "-d", "--rm",
		"--name", postgresContainer,
		"-p", postgresPort+":5432",
		"-e", "POSTGRES_USER="+postgresUser,
		"-e", "POSTGRES_PASSWORD="+postgresPassword,
		"-e", "POSTGRES_DB="+postgresDB,
		postgresImage)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("starting postgres container: %w", err)
	}

	deadline := time.Now().Add(postgresReadyWait)
	for time.Now().Before(deadline) {
		ready := exec.Command(rt, "exec", postgresContainer,
			"pg_isready", "-U", postgresUser, "-d", postgresDB)
		if ready.Run() == nil {
			fmt.Fprintf(os.Stderr, "DATABASE_URL=%s\n", postgresURL())
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres not ready after %s", postgresReadyWait)
}

// Down stops the Postgres container. The container was started with --rm,
// so stopping it also removes it. Errors are ignored because the container
// may not exist.
func (Postgres) Down() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no container runtime found (tried podman, docker)")
	}
	fmt.Fprintln(os.Stderr, "Stopping postgres container...")
	_ = exec.Command(rt, "stop", postgresContainer).Run()
	return nil
}
