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
	"github.com/roots/playlog/command"
	"github.com/roots/playlog/pkg/ansible"
	"github.com/roots/playlog/pkg/flags"
	"github.com/roots/playlog/pkg/transcript"
)

func NewRunCommand(ui cli.Ui, config cli_config.Config) *RunCommand {
	c := &RunCommand{UI: ui, CliConfig: config, TranscriptWriter: os.Stdout}
	c.init()
	return c
}

type RunCommand struct {
	UI               cli.Ui
	CliConfig        cli_config.Config
	TranscriptWriter io.Writer
	flags            *flag.FlagSet
	extraVars        flags.StringSliceVar
	inventory        string
	tags             string
	showOk           bool
	verbose          bool
}

func (c *RunCommand) init() {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.Usage = func() { c.UI.Info(c.Help()) }
	c.flags.Var(&c.extraVars, "extra-vars", "Additional variables which are passed through to Ansible as 'extra-vars'")
	c.flags.StringVar(&c.inventory, "inventory", "", "Path to the inventory file")
	c.flags.StringVar(&c.tags, "tags", "", "Only run roles and tasks tagged with these values")
	c.flags.BoolVar(&c.showOk, "show-ok", false, "Include unchanged ok task events in the transcript")
	c.flags.BoolVar(&c.verbose, "verbose", false, "Enable Ansible's verbose mode")
}

func (c *RunCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	args = c.flags.Args()

	commandArgumentValidator := &CommandArgumentValidator{required: 1, optional: 0}
	commandArgumentErr := commandArgumentValidator.validate(args)
	if commandArgumentErr != nil {
		c.UI.Error(commandArgumentErr.Error())
		c.UI.Output(c.Help())
		return 1
	}

	playbookFile := args[0]

	if _, err := os.Stat(playbookFile); err != nil {
		c.UI.Error(fmt.Sprintf("Error: playbook %s does not exist", playbookFile))
		return 1
	}

	playbook := &ansible.Playbook{Name: playbookFile, Verbose: c.verbose}
	playbook.SetInventory(c.inventory).SetTags(c.tags)

	for _, extraVars := range c.extraVars {
		playbook.AddExtraVars(extraVars)
	}

	emitter := transcript.NewEmitter(transcript.WriterDisplay(c.TranscriptWriter, transcript.DefaultPalette()))
	classifier := transcript.NewClassifier(emitter, showUnchangedOk(c.flags, c.showOk, c.CliConfig))
	processor := ansible.NewProcessor(classifier)

	playbookCmd := command.WithOptions(
		command.WithJSONLCallback(),
		command.WithLogging(c.UI),
	).Cmd("ansible-playbook", playbook.CmdArgs())

	stdout, err := playbookCmd.StdoutPipe()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	playbookCmd.Stderr = &command.UiErrorWriter{Ui: c.UI}

	if err := playbookCmd.Start(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := processor.Process(stdout); err != nil {
		c.UI.Error(err.Error())
	}

	if err := playbookCmd.Wait(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	return 0
}

// showUnchangedOk resolves the show-ok option: an explicit flag wins,
// then ansible.cfg and the environment, then the CLI config default.
func showUnchangedOk(flagSet *flag.FlagSet, flagValue bool, config cli_config.Config) bool {
	var explicit *bool

	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "show-ok" {
			explicit = &flagValue
		}
	})

	return ansible.ShowUnchangedOkTasks(explicit, config.ShowUnchangedOkTasks)
}

func (c *RunCommand) Synopsis() string {
	return "Runs a playbook and prints its JSON transcript"
}

func (c *RunCommand) Help() string {
	helpText := `
Usage: playlog run [options] PLAYBOOK

Runs ansible-playbook on the specified playbook and prints a filtered JSON
transcript to standard output: debug output, changed tasks, failures and
unreachable hosts, followed by a per-host recap.

Run a playbook:

  $ playlog run site.yml

Run with a specific inventory and tags:

  $ playlog run --inventory hosts/production --tags users site.yml

Arguments:
  PLAYBOOK  Path to the playbook file

Options:
      --extra-vars  (multiple) Set additional variables as key=value passed through to Ansible
      --inventory   Path to the inventory file
      --show-ok     Include unchanged ok task events in the transcript
      --tags        Only run roles and tasks tagged with these values
      --verbose     Enable Ansible's verbose mode
  -h, --help        Show this help
`

	return strings.TrimSpace(helpText)
}

func (c *RunCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictFiles("*.yml")
}

func (c *RunCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"--extra-vars": complete.PredictNothing,
		"--inventory":  complete.PredictFiles("*"),
		"--show-ok":    complete.PredictNothing,
		"--tags":       complete.PredictNothing,
		"--verbose":    complete.PredictNothing,
	}
}
