//go:build basic || database

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a shared matchgrade binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const rosterYAML = `teams:
  - teamID: home-fc
    name: Home FC
    slug: home-fc
  - teamID: away-fc
    name: Away FC
    slug: away-fc
players:
  - playerID: p-keeper
    teamID: home-fc
    name: Anna Keeper
    number: 1
  - playerID: p-smith
    teamID: home-fc
    name: Cara Smith
    abbrName: C. Smith
    number: 9
  - playerID: p-goal
    teamID: away-fc
    name: Dana Goal
    number: 12
`

const baselinesYAML = `baselines:
  - playerID: p-smith
    overall10: 6.0
`

const reportName = "Home FC - Away FC 2-1.txt"

const reportText = `Home FC - Away FC
Matchday 5
12.03.2026
Starting lineup
GK 1 Anna Keeper
CF 9 Cara Smith 75'
GK 12 Dana Goal
Substitutes
FW 19 Gia Sub 75'
Player stats
# Player Min Goals/xG Assists/xA Actions/successful Shots/on target
Passes/accurate Crosses/accurate Dribbles/successful Duels/won Losses/own half Recoveries/opp. half Cards Defensive duels/won Aerial duels/won Interceptions Clearances Key passes
9 C. Smith 75' 1/0.45 0/0.10 30/18 4/2 25/20 1/0 5/3 15/7 8/2 4/1 0/0 3/1 2/1 0 1 2
Team stats
Anna Keeper
Goalkeeper in match
Saves 4
Conceded goals 1
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the matchgrade binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "matchgrade-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "matchgrade")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build matchgrade: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeFixtures writes a roster, baselines and one report into a fresh directory.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"roster.yaml":    rosterYAML,
		"baselines.yaml": baselinesYAML,
		reportName:       reportText,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// runCommand runs the binary in dir with extra environment and returns stdout.
func runCommand(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}
