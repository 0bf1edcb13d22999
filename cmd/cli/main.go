package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/shiftclock/shiftclock/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Register commands.RegisterCmd `cmd:"" help:"Create an account"`
		Login    commands.LoginCmd    `cmd:"" help:"Log in and store a session token"`
		Logout   commands.LogoutCmd   `cmd:"" help:"Remove the stored session token"`
		Whoami   commands.WhoamiCmd   `cmd:"" help:"Show the logged-in worker"`
		Orgs     commands.OrgsCmd     `cmd:"" help:"List organizations open for joining"`

		Start    commands.StartCmd    `cmd:"" help:"Clock in"`
		Stop     commands.StopCmd     `cmd:"" help:"Clock out"`
		Status   commands.StatusCmd   `cmd:"" help:"Show the current open session"`
		Sessions commands.SessionsCmd `cmd:"" help:"List your work sessions"`

		Workers     commands.WorkersCmd     `cmd:"" help:"List workers in your organization (manager)"`
		OrgSessions commands.OrgSessionsCmd `cmd:"" name:"org-sessions" help:"List all sessions in your organization (manager)"`
		SetRole     commands.SetRoleCmd     `cmd:"" name:"set-role" help:"Change a worker's role (manager)"`
		SetStatus   commands.SetStatusCmd   `cmd:"" name:"set-status" help:"Change a worker's membership status (manager)"`
		SetRate     commands.SetRateCmd     `cmd:"" name:"set-rate" help:"Change a worker's hourly rate (manager)"`
		Report      commands.ReportCmd      `cmd:"" help:"Generate an earnings report for a worker (manager)"`

		Profile   string `help:"Stored profile to use." default:""`
		ConfigDir string `help:"Config directory (default ~/.shiftclock)." default:""`
		Debug     bool   `help:"Enable debug mode."`
		Version   kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:     cli.Debug,
		Version:   version,
		Profile:   cli.Profile,
		ConfigDir: cli.ConfigDir,
	})
	cmd.FatalIfErrorf(err)
}
