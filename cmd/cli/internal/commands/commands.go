package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shiftclock/shiftclock/internal/client"
	"github.com/shiftclock/shiftclock/cmd/cli/internal/credentials"
)

type Globals struct {
	Debug     bool
	Version   string
	Profile   string
	ConfigDir string
}

// authedClient builds an API client from the stored profile. Commands that
// need a logged-in session go through here.
func authedClient(globals *Globals) (*client.Client, error) {
	store, err := credentials.NewStore(globals.ConfigDir)
	if err != nil {
		return nil, err
	}

	var profile *credentials.Profile
	if globals.Profile != "" {
		profile, err = store.Get(globals.Profile)
	} else {
		profile, err = store.GetDefault()
	}
	if err != nil {
		return nil, err
	}

	return client.NewClient(client.Config{
		ServerURL: profile.Server,
		Token:     profile.Token,
		Timeout:   30 * time.Second,
	})
}

func formatDuration(ms int64) string {
	minutes := ms / (60 * 1000)
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func printSessions(sessions []client.Session) {
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return
	}

	fmt.Printf("%-36s %-20s %-20s %-10s\n", "Session ID", "Started", "Ended", "Duration")
	fmt.Println(strings.Repeat("─", 90))

	for _, session := range sessions {
		ended := "(open)"
		duration := "-"
		if session.EndedAt != nil {
			ended = session.EndedAt.Local().Format("2006-01-02 15:04:05")
			duration = formatDuration(session.DurationMs)
		}

		fmt.Printf("%-36s %-20s %-20s %-10s\n",
			session.SessionID,
			session.StartedAt.Local().Format("2006-01-02 15:04:05"),
			ended,
			duration)
	}

	fmt.Printf("\nTotal sessions: %d\n", len(sessions))
}
