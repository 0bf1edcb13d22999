package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftclock/shiftclock/internal/client"
	"github.com/shiftclock/shiftclock/cmd/cli/internal/credentials"
)

type LoginCmd struct {
	Server   string `help:"Server URL" default:"http://localhost:8080" env:"SHIFTCLOCK_SERVER"`
	Username string `help:"Username" required:""`
	Password string `help:"Password" required:"" env:"SHIFTCLOCK_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	c, err := client.NewClient(client.Config{ServerURL: l.Server, Timeout: 30 * time.Second})
	if err != nil {
		return err
	}

	result, err := c.Login(ctx, l.Username, l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := saveProfile(globals, l.Server, result); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s, %s)\n", result.Worker.Username, result.Worker.Role, result.Worker.Status)
	return nil
}

type RegisterCmd struct {
	Server    string `help:"Server URL" default:"http://localhost:8080" env:"SHIFTCLOCK_SERVER"`
	Username  string `help:"Username" required:""`
	Password  string `help:"Password" required:"" env:"SHIFTCLOCK_PASSWORD"`
	CreateOrg string `help:"Create a new organization with this name and become its manager." xor:"org"`
	JoinOrg   string `help:"Join an existing organization by ID; a manager must approve you." xor:"org"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	if r.CreateOrg == "" && r.JoinOrg == "" {
		return fmt.Errorf("either --create-org or --join-org is required")
	}

	c, err := client.NewClient(client.Config{ServerURL: r.Server, Timeout: 30 * time.Second})
	if err != nil {
		return err
	}

	params := client.RegisterParams{
		Username: r.Username,
		Password: r.Password,
	}
	if r.CreateOrg != "" {
		params.Type = "create"
		params.OrgName = r.CreateOrg
	} else {
		params.Type = "join"
		params.OrgID = r.JoinOrg
	}

	result, err := c.Register(ctx, params)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := saveProfile(globals, r.Server, result); err != nil {
		return err
	}

	if result.Worker.Status == "pending" {
		fmt.Printf("Registered %s. Your membership is pending manager approval.\n", result.Worker.Username)
	} else {
		fmt.Printf("Registered %s as manager of a new organization.\n", result.Worker.Username)
	}
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(_ context.Context, globals *Globals) error {
	store, err := credentials.NewStore(globals.ConfigDir)
	if err != nil {
		return err
	}

	name := globals.Profile
	if name == "" {
		name = "default"
	}

	if err := store.Delete(name); err != nil {
		return err
	}

	fmt.Printf("Profile %q removed.\n", name)
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	worker, err := client.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Username:    %s\n", worker.Username)
	fmt.Printf("Worker ID:   %s\n", worker.WorkerID)
	fmt.Printf("Org ID:      %s\n", worker.OrgID)
	fmt.Printf("Role:        %s\n", worker.Role)
	fmt.Printf("Status:      %s\n", worker.Status)
	fmt.Printf("Hourly rate: %.2f\n", worker.HourlyRate)
	return nil
}

type OrgsCmd struct {
	Server string `help:"Server URL" default:"http://localhost:8080" env:"SHIFTCLOCK_SERVER"`
}

func (o *OrgsCmd) Run(ctx context.Context, _ *Globals) error {
	c, err := client.NewClient(client.Config{ServerURL: o.Server, Timeout: 30 * time.Second})
	if err != nil {
		return err
	}

	orgs, err := c.Organizations(ctx)
	if err != nil {
		return err
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		return nil
	}

	fmt.Printf("%-36s %s\n", "Org ID", "Name")
	for _, org := range orgs {
		fmt.Printf("%-36s %s\n", org.OrgID, org.Name)
	}
	return nil
}

func saveProfile(globals *Globals, server string, result *client.AuthResult) error {
	store, err := credentials.NewStore(globals.ConfigDir)
	if err != nil {
		return err
	}

	name := globals.Profile
	if name == "" {
		name = "default"
	}

	return store.Save(name, credentials.Profile{
		Server:   server,
		Username: result.Worker.Username,
		Token:    result.Token,
	})
}
