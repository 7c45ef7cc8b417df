// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/config"
)

// Command interprets the command bar input.
type Command struct {
	app *App
}

// NewCommand returns a command interpreter.
func NewCommand(app *App) *Command {
	return &Command{app: app}
}

// Run executes cmd. A blank command shows the default view.
func (c *Command) Run(cmd string) error {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		cmd = c.app.cfg.Vdash.DefaultView
	}
	name, args := parseCommand(cmd)
	target := c.app.aliases.Resolve(name)
	log.Debug().Str("command", cmd).Str("target", target).Msg("Command")

	switch target {
	case config.TargetQuit:
		c.app.Quit()
	case config.TargetHelp:
		c.app.helpCmd(nil)
	case config.TargetMenu:
		c.app.SetFocus(c.app.sidebar)
	case config.TargetProfile:
		if len(args) > 0 {
			c.app.SwitchProfile(args[0], "", nil)
			return nil
		}
		return c.app.push(NewProfileList(c.app))
	default:
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments %q for %s", strings.Join(args, " "), name)
		}
		return c.app.Navigate(target)
	}

	return nil
}

func parseCommand(cmd string) (string, []string) {
	ff := strings.Fields(cmd)
	if len(ff) == 0 {
		return "", nil
	}
	return ff[0], ff[1:]
}
