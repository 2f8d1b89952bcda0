package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/posener/complete"
	"github.com/roots/playlog/pkg/requirement"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

type CheckCommand struct {
	UI cli.Ui
}

var Requirements = []requirement.Requirement{
	{
		Name:              "Ansible",
		Command:           "ansible-playbook",
		Url:               "https://docs.ansible.com/ansible/latest/installation_guide/",
		VersionConstraint: ">= 2.10.0",
		ExtractVersion: func(output string) string {
			// First line is `ansible-playbook [core 2.15.3]` on recent
			// releases, `ansible-playbook 2.9.10` on older ones.
			firstLine := strings.SplitN(output, "\n", 2)[0]
			return versionPattern.FindString(firstLine)
		},
	},
	{
		Name:              "Python",
		Command:           "python3",
		Url:               "https://www.python.org/",
		VersionConstraint: ">= 3.8.0",
		ExtractVersion: func(output string) string {
			return strings.Replace(output, "Python ", "", 1)
		},
	},
}

func (c *CheckCommand) Run(args []string) int {
	commandArgumentValidator := &CommandArgumentValidator{required: 0, optional: 0}
	commandArgumentErr := commandArgumentValidator.validate(args)
	if commandArgumentErr != nil {
		c.UI.Error(commandArgumentErr.Error())
		c.UI.Output(c.Help())
		return 1
	}

	c.UI.Info("Checking playlog requirements\n")

	requirementsMet := 0

	for _, req := range Requirements {
		result, err := req.Check()
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error checking %s requirement: %s", req.Name, err))
			continue
		}

		if result.Satisfied {
			requirementsMet += 1
		}

		c.UI.Info(result.Message)
	}

	if requirementsMet == len(Requirements) {
		c.UI.Info("\nAll requirements met")
		return 0
	}

	c.UI.Error(fmt.Sprintf("\n%d requirement(s) not met\n", len(Requirements)-requirementsMet))
	return 1
}

func (c *CheckCommand) Synopsis() string {
	return "Checks if playlog requirements are met"
}

func (c *CheckCommand) Help() string {
	helpText := `
Usage: playlog check

Checks if playlog requirements are met

Options:
  -h, --help  show this help
`

	return strings.TrimSpace(helpText)
}

func (c *CheckCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *CheckCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{}
}
