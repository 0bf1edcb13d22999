package commands

import (
	"context"
	"fmt"
	"strings"
)

type WorkersCmd struct{}

func (w *WorkersCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	workers, err := client.Workers(ctx)
	if err != nil {
		return err
	}

	if len(workers) == 0 {
		fmt.Println("No workers found.")
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-10s %10s\n", "Worker ID", "Username", "Role", "Status", "Rate")
	fmt.Println(strings.Repeat("─", 90))
	for _, worker := range workers {
		fmt.Printf("%-36s %-20s %-10s %-10s %10.2f\n",
			worker.WorkerID, worker.Username, worker.Role, worker.Status, worker.HourlyRate)
	}
	return nil
}

type OrgSessionsCmd struct{}

func (o *OrgSessionsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	sessions, err := client.OrgSessions(ctx)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Printf("%-20s %-20s %-20s %-10s\n", "Worker", "Started", "Ended", "Duration")
	fmt.Println(strings.Repeat("─", 75))
	for _, session := range sessions {
		ended := "(open)"
		duration := "-"
		if session.EndedAt != nil {
			ended = session.EndedAt.Local().Format("2006-01-02 15:04:05")
			duration = formatDuration(session.DurationMs)
		}
		fmt.Printf("%-20s %-20s %-20s %-10s\n",
			session.Username,
			session.StartedAt.Local().Format("2006-01-02 15:04:05"),
			ended,
			duration)
	}
	return nil
}

type SetRoleCmd struct {
	Worker string `arg:"" help:"Worker ID"`
	Role   string `arg:"" help:"New role (member or manager)"`
}

func (s *SetRoleCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	worker, err := client.UpdateRole(ctx, s.Worker, s.Role)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now a %s\n", worker.Username, worker.Role)
	return nil
}

type SetStatusCmd struct {
	Worker string `arg:"" help:"Worker ID"`
	Status string `arg:"" help:"New status (pending, active, or rejected)"`
}

func (s *SetStatusCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	worker, err := client.UpdateStatus(ctx, s.Worker, s.Status)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", worker.Username, worker.Status)
	return nil
}

type SetRateCmd struct {
	Worker string  `arg:"" help:"Worker ID"`
	Rate   float64 `arg:"" help:"Hourly rate"`
}

func (s *SetRateCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	worker, err := client.UpdateRate(ctx, s.Worker, s.Rate)
	if err != nil {
		return err
	}

	fmt.Printf("%s now earns %.2f per hour\n", worker.Username, worker.HourlyRate)
	return nil
}

type ReportCmd struct {
	Worker string `arg:"" help:"Worker ID"`
	From   string `help:"Period start (YYYY-MM-DD or RFC 3339)" required:""`
	To     string `help:"Period end (YYYY-MM-DD or RFC 3339)" required:""`
}

func (r *ReportCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	report, err := client.WorkerReport(ctx, r.Worker, r.From, r.To)
	if err != nil {
		return err
	}

	fmt.Printf("Earnings report for %s (rate %.2f/h)\n", report.Username, report.HourlyRate)
	fmt.Printf("Period: %s to %s\n\n",
		report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02"))

	if len(report.Rows) == 0 {
		fmt.Println("No closed sessions in this period.")
		return nil
	}

	fmt.Printf("%-12s %-8s %-8s %10s %12s\n", "Date", "Start", "End", "Worked", "Earnings")
	fmt.Println(strings.Repeat("─", 55))
	for _, row := range report.Rows {
		fmt.Printf("%-12s %-8s %-8s %6dh %02dm %12.2f\n",
			row.Date, row.StartTime, row.EndTime, row.Hours, row.Minutes, row.Earnings)
	}

	fmt.Printf("\nTotal: %.2f hours, %.2f earned\n", report.TotalHours, report.TotalEarnings)
	return nil
}
