package cli_config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	conf := Config{
		CheckForUpdates: true,
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yml")
	content := `
show_unchanged_ok_tasks: true
no_color: true
`

	if err := os.WriteFile(path, []byte(content), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	if err := conf.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	if conf.CheckForUpdates != true {
		t.Errorf("expected CheckForUpdates to be true (default value)")
	}

	if conf.ShowUnchangedOkTasks != true {
		t.Errorf("expected ShowUnchangedOkTasks to be true")
	}

	if conf.NoColor != true {
		t.Errorf("expected NoColor to be true")
	}
}

func TestLoadFileMissingFileIsIgnored(t *testing.T) {
	conf := Config{CheckForUpdates: true}

	if err := conf.LoadFile(filepath.Join(t.TempDir(), "cli.yml")); err != nil {
		t.Fatal(err)
	}

	if conf.CheckForUpdates != true {
		t.Errorf("expected defaults to survive a missing file")
	}
}

func TestLoadFileInvalidYaml(t *testing.T) {
	conf := Config{}

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yml")

	if err := os.WriteFile(path, []byte("show_unchanged_ok_tasks: [nope"), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	err := conf.LoadFile(path)

	if !errors.Is(err, InvalidConfigErr) {
		t.Errorf("expected InvalidConfigErr, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PLAYLOG_SHOW_UNCHANGED_OK_TASKS", "true")
	t.Setenv("PLAYLOG_NOPE", "foo")
	t.Setenv("SHOW_UNCHANGED_OK_TASKS", "false")

	conf := Config{}

	if err := conf.LoadEnv("PLAYLOG_"); err != nil {
		t.Fatal(err)
	}

	if conf.ShowUnchangedOkTasks != true {
		t.Errorf("expected ShowUnchangedOkTasks to be true")
	}
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("PLAYLOG_NO_COLOR", "banana")

	conf := Config{}

	err := conf.LoadEnv("PLAYLOG_")

	if !errors.Is(err, CouldNotParseErr) {
		t.Errorf("expected CouldNotParseErr, got %v", err)
	}
}
