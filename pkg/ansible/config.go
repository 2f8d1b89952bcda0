package ansible

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/roots/playlog/pkg/transcript"
	"gopkg.in/ini.v1"
)

const (
	ShowOkEnvVar       = "ANSIBLE_CHANGED_DEBUG_SHOW_OK"
	ShowOkLegacyEnvVar = "CHANGED_DEBUG_SHOW_OK"

	callbackConfigSection = "callback_changed_debug"
	showOkConfigKey       = "show_unchanged_ok_tasks"
)

// ShowUnchangedOkTasks resolves the show_unchanged_ok_tasks option.
// Priority: an explicit value (CLI flag), the ansible.cfg callback
// section, the primary env var, the legacy env var, then fallback.
// Unreadable config files and unrecognized tokens degrade silently.
func ShowUnchangedOkTasks(explicit *bool, fallback bool) bool {
	if explicit != nil {
		return *explicit
	}

	if value, ok := configFileOption(callbackConfigSection, showOkConfigKey); ok {
		return transcript.ParseBoolToken(value, fallback)
	}

	for _, envVar := range []string{ShowOkEnvVar, ShowOkLegacyEnvVar} {
		if value, ok := os.LookupEnv(envVar); ok {
			return transcript.ParseBoolToken(value, fallback)
		}
	}

	return fallback
}

// configFileOption reads one key from ansible.cfg, using Ansible's own
// file precedence: $ANSIBLE_CONFIG, ./ansible.cfg, ~/.ansible.cfg.
func configFileOption(section string, key string) (string, bool) {
	path := configFilePath()
	if path == "" {
		return "", false
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return "", false
	}

	s := cfg.Section(section)
	if !s.HasKey(key) {
		return "", false
	}

	return s.Key(key).String(), true
}

func configFilePath() string {
	if path := os.Getenv("ANSIBLE_CONFIG"); path != "" {
		return path
	}

	if _, err := os.Stat("ansible.cfg"); err == nil {
		return "ansible.cfg"
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}

	path := filepath.Join(home, ".ansible.cfg")
	if _, err := os.Stat(path); err == nil {
		return path
	}

	return ""
}
