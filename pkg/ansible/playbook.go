package ansible

import (
	"fmt"
	"sort"
)

// Playbook builds the argument list for an ansible-playbook invocation.
type Playbook struct {
	Name      string
	Verbose   bool
	ExtraVars map[string]string
	args      []string
}

func (p *Playbook) AddArg(name string, value string) *Playbook {
	p.args = append(p.args, name, value)
	return p
}

func (p *Playbook) AddFlag(name string) *Playbook {
	p.args = append(p.args, name)
	return p
}

func (p *Playbook) AddExtraVar(name string, value string) *Playbook {
	if p.ExtraVars == nil {
		p.ExtraVars = make(map[string]string)
	}

	p.ExtraVars[name] = value
	return p
}

func (p *Playbook) AddExtraVars(extraVars string) *Playbook {
	if extraVars != "" {
		p.args = append(p.args, "-e", extraVars)
	}

	return p
}

func (p *Playbook) SetInventory(path string) *Playbook {
	if path != "" {
		p.AddArg("--inventory", path)
	}

	return p
}

func (p *Playbook) SetTags(tags string) *Playbook {
	if tags != "" {
		p.AddArg("--tags", tags)
	}

	return p
}

func (p *Playbook) CmdArgs() []string {
	args := []string{p.Name}

	if p.Verbose {
		args = append(args, "-vvvv")
	}

	args = append(args, p.args...)

	keys := make([]string, 0, len(p.ExtraVars))
	for key := range p.ExtraVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, p.ExtraVars[k]))
	}

	return args
}
