package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/cli"
	"github.com/roots/playlog/app_paths"
	"github.com/roots/playlog/cli_config"
	"github.com/roots/playlog/cmd"
	"github.com/roots/playlog/github"
	"github.com/roots/playlog/update"
)

const Version = "0.2.0"
const updateRepo = "roots/playlog"

func main() {
	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Reader: os.Stdin,
			// stdout carries the JSON transcript, so all UI output
			// goes to stderr.
			Writer:      os.Stderr,
			ErrorWriter: os.Stderr,
		},
	}

	conf := cli_config.NewConfig(cli_config.Config{
		CheckForUpdates: true,
	})

	if err := conf.LoadFile(app_paths.ConfigPath("cli.yml")); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}

	if err := conf.LoadEnv("PLAYLOG_"); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}

	if conf.NoColor {
		color.NoColor = true
	}

	commands := map[string]cli.CommandFactory{
		"check": func() (cli.Command, error) {
			return &cmd.CheckCommand{UI: ui}, nil
		},
		"replay": func() (cli.Command, error) {
			return cmd.NewReplayCommand(ui, conf), nil
		},
		"run": func() (cli.Command, error) {
			return cmd.NewRunCommand(ui, conf), nil
		},
	}

	releaseChan := make(chan *github.Release)

	go func() {
		if !conf.CheckForUpdates {
			releaseChan <- nil
			return
		}

		notifier := &update.Notifier{
			CacheDir: app_paths.CacheDir(),
			Repo:     updateRepo,
			Version:  Version,
			Client:   github.Client,
		}

		release, _ := notifier.CheckForUpdate()
		releaseChan <- release
	}()

	c := &cli.CLI{
		Name:         "playlog",
		Version:      Version,
		Autocomplete: true,
		Commands:     commands,
		Args:         os.Args[1:],
	}

	exitStatus, err := c.Run()

	if err != nil {
		ui.Error(err.Error())
	}

	if release := <-releaseChan; release != nil {
		ui.Warn(fmt.Sprintf("\n%s %s → %s", color.YellowString("A new release of playlog is available:"), Version, color.GreenString(release.Version)))
		ui.Warn(release.URL)
	}

	os.Exit(exitStatus)
}
