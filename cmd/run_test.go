package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/roots/playlog/cli_config"
	"github.com/roots/playlog/command"
)

func TestRunRunValidations(t *testing.T) {
	cases := []struct {
		name string
		args []string
		out  string
		code int
	}{
		{
			"no_args",
			nil,
			"Error: missing arguments",
			1,
		},
		{
			"too_many_args",
			[]string{"site.yml", "extra.yml"},
			"Error: too many arguments",
			1,
		},
		{
			"missing_playbook",
			[]string{"does-not-exist.yml"},
			"Error: playbook does-not-exist.yml does not exist",
			1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ui := cli.NewMockUi()
			runCommand := NewRunCommand(ui, cli_config.Config{})

			code := runCommand.Run(tc.args)

			if code != tc.code {
				t.Errorf("expected code %d to be %d", code, tc.code)
			}

			combined := ui.OutputWriter.String() + ui.ErrorWriter.String()

			if !strings.Contains(combined, tc.out) {
				t.Errorf("expected output %q to contain %q", combined, tc.out)
			}
		})
	}
}

func TestRunRun(t *testing.T) {
	playbookPath := filepath.Join(t.TempDir(), "site.yml")
	if err := os.WriteFile(playbookPath, []byte("---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	defer command.MockExecCommands(t, []command.MockCommand{
		{
			Command:  "ansible-playbook",
			Args:     []string{playbookPath},
			Output:   eventFixture,
			ExitCode: 0,
		},
	})()

	ui := cli.NewMockUi()
	runCommand := NewRunCommand(ui, cli_config.Config{})
	output := &bytes.Buffer{}
	runCommand.TranscriptWriter = output

	code := runCommand.Run([]string{playbookPath})

	if code != 0 {
		t.Fatalf("expected code 0, got %d: %s", code, ui.ErrorWriter.String())
	}

	doc := parseTranscript(t, output.String())

	if len(doc.Events) != 3 {
		t.Errorf("expected 3 events, got %v", doc.Events)
	}
	if doc.PlayRecap["web1"]["ok"] != 3 {
		t.Errorf("expected recap counters, got %v", doc.PlayRecap)
	}
}

func TestRunRunFailedPlaybook(t *testing.T) {
	playbookPath := filepath.Join(t.TempDir(), "site.yml")
	if err := os.WriteFile(playbookPath, []byte("---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	failedFixture := `{"_event":"v2_runner_on_failed","task":{"id":"t1","name":"Deploy","path":""},"hosts":{"web1":{"msg":"non-zero return code"}}}
{"_event":"v2_playbook_on_stats","stats":{"web1":{"ok":0,"changed":0,"failures":1,"unreachable":0,"skipped":0,"rescued":0,"ignored":0}}}
`

	defer command.MockExecCommands(t, []command.MockCommand{
		{
			Command:  "ansible-playbook",
			Args:     []string{playbookPath},
			Output:   failedFixture,
			ExitCode: 2,
		},
	})()

	ui := cli.NewMockUi()
	runCommand := NewRunCommand(ui, cli_config.Config{})
	output := &bytes.Buffer{}
	runCommand.TranscriptWriter = output

	code := runCommand.Run([]string{playbookPath})

	if code != 1 {
		t.Errorf("expected code 1 for a failed playbook, got %d", code)
	}

	// The transcript is still complete and valid even when the playbook
	// run fails.
	doc := parseTranscript(t, output.String())

	if len(doc.Events) != 1 || doc.Events[0]["event"] != "failed" {
		t.Errorf("expected a failed event, got %v", doc.Events)
	}
	if doc.PlayRecap["web1"]["failed"] != 1 {
		t.Errorf("expected failed counter in recap, got %v", doc.PlayRecap)
	}
}

func TestRunRunPassesPlaybookArgs(t *testing.T) {
	playbookPath := filepath.Join(t.TempDir(), "site.yml")
	if err := os.WriteFile(playbookPath, []byte("---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	defer command.MockExecCommands(t, []command.MockCommand{
		{
			Command:  "ansible-playbook",
			Args:     []string{playbookPath, "--inventory", "hosts/production", "--tags", "users", "-e", "env=production"},
			Output:   eventFixture,
			ExitCode: 0,
		},
	})()

	ui := cli.NewMockUi()
	runCommand := NewRunCommand(ui, cli_config.Config{})
	output := &bytes.Buffer{}
	runCommand.TranscriptWriter = output

	code := runCommand.Run([]string{
		"--inventory", "hosts/production",
		"--tags", "users",
		"--extra-vars", "env=production",
		playbookPath,
	})

	if code != 0 {
		t.Fatalf("expected code 0, got %d: %s", code, ui.ErrorWriter.String())
	}
}
