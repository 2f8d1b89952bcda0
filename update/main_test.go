package update

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roots/playlog/github"
	"gopkg.in/yaml.v2"
)

func TestDoesNotCheckForUpdate(t *testing.T) {
	cacheDir := t.TempDir()

	cases := []struct {
		name     string
		repo     string
		cacheDir string
		envKey   string
		envValue string
	}{
		{"no_repo", "", cacheDir, "", ""},
		{"no_cache_dir", "roots/playlog", "", "", ""},
		{"completion_command", "roots/playlog", cacheDir, "COMP_LINE", "playlog re"},
		{"ci", "roots/playlog", cacheDir, "CI", "1"},
		{"notifier_disabled", "roots/playlog", cacheDir, "PLAYLOG_NO_UPDATE_NOTIFIER", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envKey != "" {
				t.Setenv(tc.envKey, tc.envValue)
			}

			notifier := &Notifier{
				CacheDir: tc.cacheDir,
				Repo:     tc.repo,
				Version:  "1.0",
			}

			release, err := notifier.CheckForUpdate()

			if err != nil {
				t.Fatal(err)
			}
			if release != nil {
				t.Errorf("expected no release, got %v", release)
			}
		})
	}
}

func TestCheckForUpdateReportsNewerRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Write([]byte(`{"tag_name": "v2.0", "html_url": "https://github.com/roots/playlog/releases/tag/v2.0"}`))
	}))
	defer server.Close()

	originalBaseURL := github.BaseURL
	github.BaseURL = server.URL
	defer func() { github.BaseURL = originalBaseURL }()

	notifier := &Notifier{
		CacheDir:   t.TempDir(),
		ForceCheck: true,
		Repo:       "roots/playlog",
		Version:    "1.0",
		Client:     server.Client(),
	}

	release, err := notifier.CheckForUpdate()

	if err != nil {
		t.Fatal(err)
	}
	if release == nil || release.Version != "v2.0" {
		t.Errorf("expected release v2.0, got %v", release)
	}
}

func TestCheckForUpdateOnCurrentVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Write([]byte(`{"tag_name": "v1.0"}`))
	}))
	defer server.Close()

	originalBaseURL := github.BaseURL
	github.BaseURL = server.URL
	defer func() { github.BaseURL = originalBaseURL }()

	notifier := &Notifier{
		CacheDir:   t.TempDir(),
		ForceCheck: true,
		Repo:       "roots/playlog",
		Version:    "1.0",
		Client:     server.Client(),
	}

	release, err := notifier.CheckForUpdate()

	if err != nil {
		t.Fatal(err)
	}
	if release != nil {
		t.Errorf("expected no release on the current version, got %v", release)
	}
}

func TestCheckForUpdateUsesFreshStateCache(t *testing.T) {
	cacheDir := t.TempDir()

	state := StateEntry{
		CheckedForUpdateAt: time.Now(),
		LatestRelease:      &github.Release{Version: "v3.0"},
	}
	content, err := yaml.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "state.yml"), content, 0600); err != nil {
		t.Fatal(err)
	}

	notifier := &Notifier{
		CacheDir:   cacheDir,
		ForceCheck: true,
		Repo:       "roots/playlog",
		Version:    "1.0",
	}

	// No HTTP client needed: the cached state is fresh.
	release, err := notifier.CheckForUpdate()

	if err != nil {
		t.Fatal(err)
	}
	if release == nil || release.Version != "v3.0" {
		t.Errorf("expected cached release v3.0, got %v", release)
	}
}
