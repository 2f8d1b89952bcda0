package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/posener/complete"
	"github.com/roots/playlog/cli_config"
	"github.com/roots/playlog/pkg/ansible"
	"github.com/roots/playlog/pkg/transcript"
)

func NewReplayCommand(ui cli.Ui, config cli_config.Config) *ReplayCommand {
	c := &ReplayCommand{UI: ui, CliConfig: config, TranscriptWriter: os.Stdout}
	c.init()
	return c
}

type ReplayCommand struct {
	UI               cli.Ui
	CliConfig        cli_config.Config
	TranscriptWriter io.Writer
	flags            *flag.FlagSet
	showOk           bool
}

func (c *ReplayCommand) init() {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.Usage = func() { c.UI.Info(c.Help()) }
	c.flags.BoolVar(&c.showOk, "show-ok", false, "Include unchanged ok task events in the transcript")
}

func (c *ReplayCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	args = c.flags.Args()

	commandArgumentValidator := &CommandArgumentValidator{required: 0, optional: 1}
	commandArgumentErr := commandArgumentValidator.validate(args)
	if commandArgumentErr != nil {
		c.UI.Error(commandArgumentErr.Error())
		c.UI.Output(c.Help())
		return 1
	}

	reader := io.Reader(os.Stdin)

	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error: could not open event file: %s", err))
			return 1
		}
		defer file.Close()
		reader = file
	}

	emitter := transcript.NewEmitter(transcript.WriterDisplay(c.TranscriptWriter, transcript.DefaultPalette()))
	classifier := transcript.NewClassifier(emitter, showUnchangedOk(c.flags, c.showOk, c.CliConfig))
	processor := ansible.NewProcessor(classifier)

	if err := processor.Process(reader); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	return 0
}

func (c *ReplayCommand) Synopsis() string {
	return "Replays a recorded JSONL event stream as a JSON transcript"
}

func (c *ReplayCommand) Help() string {
	helpText := `
Usage: playlog replay [options] [FILE]

Reads an ansible.posix.jsonl callback event stream from FILE (or standard
input when FILE is omitted or '-') and prints the same filtered JSON
transcript that 'playlog run' produces.

Record a run and replay it later:

  $ ANSIBLE_STDOUT_CALLBACK=ansible.posix.jsonl ansible-playbook site.yml > events.jsonl
  $ playlog replay events.jsonl

Arguments:
  FILE  (optional) Path to the recorded event stream

Options:
      --show-ok  Include unchanged ok task events in the transcript
  -h, --help     Show this help
`

	return strings.TrimSpace(helpText)
}

func (c *ReplayCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictFiles("*.jsonl")
}

func (c *ReplayCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"--show-ok": complete.PredictNothing,
	}
}
