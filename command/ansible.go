package command

import (
	"os"
	"os/exec"
)

// WithJSONLCallback makes ansible-playbook emit machine-readable JSONL
// events on stdout, one per callback invocation, for the transcript
// processor to consume.
func WithJSONLCallback() CommandOption {
	return func(cmd *exec.Cmd) {
		cmd.Env = append(os.Environ(),
			"ANSIBLE_STDOUT_CALLBACK=ansible.posix.jsonl",
			"ANSIBLE_LOAD_CALLBACK_PLUGINS=1",
		)
	}
}
