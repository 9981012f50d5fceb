package testdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoadFixtures loads JSON fixture data into the target interface
// If UPDATE=true env var is set, a missing fixture file is created from target
func LoadFixtures(t *testing.T, filename string, target interface{}) {
	t.Helper()

	fixturePath := filepath.Join(findProjectRoot(t), "testdata", "fixtures", filename)

	if _, err := os.Stat(fixturePath); os.IsNotExist(err) {
		if shouldUpdate() {
			t.Logf("Creating new fixture file: %s", fixturePath)
			UpdateFixture(t, filename, target)
			return
		}
		t.Fatalf("Fixture file does not exist: %s. Run with UPDATE=true to create it.", fixturePath)
	}

	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err, "Failed to read fixture file: %s", fixturePath)

	validateFixtureData(t, filename, data)

	err = json.Unmarshal(data, target)
	require.NoError(t, err, "Failed to unmarshal fixture data from: %s", fixturePath)
}

// UpdateFixture writes data to a JSON fixture file if UPDATE=true is set
func UpdateFixture(t *testing.T, filename string, data interface{}) {
	t.Helper()

	if !shouldUpdate() {
		return
	}

	fixturePath := filepath.Join(findProjectRoot(t), "testdata", "fixtures", filename)

	dir := filepath.Dir(fixturePath)
	require.NoError(t, os.MkdirAll(dir, 0755), "Failed to create fixture directory: %s", dir)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	require.NoError(t, err, "Failed to marshal fixture data")

	require.NoError(t, os.WriteFile(fixturePath, jsonData, 0644), "Failed to write fixture file: %s", fixturePath)

	t.Logf("Updated fixture file: %s", fixturePath)
}

// AssertOrUpdate compares expected vs actual data, or updates fixture if UPDATE=true
func AssertOrUpdate(t *testing.T, filename string, expected, actual interface{}) {
	t.Helper()

	if shouldUpdate() {
		UpdateFixture(t, filename, actual)
		t.Logf("Updated fixture %s with actual data", filename)
		return
	}

	LoadFixtures(t, filename, expected)

	// Compare as JSON to ignore struct differences
	expectedJSON, err := json.MarshalIndent(expected, "", "  ")
	require.NoError(t, err)

	actualJSON, err := json.MarshalIndent(actual, "", "  ")
	require.NoError(t, err)

	require.JSONEq(t, string(expectedJSON), string(actualJSON),
		"Fixture data mismatch. Run with UPDATE=true to update fixture.")
}

func shouldUpdate() bool {
	update := os.Getenv("UPDATE")
	return update == "true" || update == "1"
}

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("Could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// credentialMarkers are prefixes of real Google credentials. Fixtures are
// committed, so they must never carry one.
var credentialMarkers = []string{
	"AIza",    // API keys
	"ya29.",   // OAuth access tokens
	"GOCSPX-", // OAuth client secrets
}

func validateFixtureData(t *testing.T, filename string, data []byte) {
	t.Helper()

	for _, marker := range credentialMarkers {
		if strings.Contains(string(data), marker) {
			t.Errorf(`
FIXTURE VALIDATION ERROR in %s:
Found credential marker %q in fixture data.
Replace it with an obviously fake value such as "fake-key".
`, filename, marker)
		}
	}
}
