package commands

import (
	"context"
	"fmt"
	"time"
)

type StartCmd struct{}

func (s *StartCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	session, err := client.StartWork(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Clocked in at %s (session %s)\n",
		session.StartedAt.Local().Format("15:04:05"), session.SessionID)
	return nil
}

type StopCmd struct{}

func (s *StopCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	session, err := client.StopWork(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Clocked out at %s, worked %s\n",
		session.EndedAt.Local().Format("15:04:05"), formatDuration(session.DurationMs))
	return nil
}

type StatusCmd struct{}

func (s *StatusCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	session, err := client.ActiveSession(ctx)
	if err != nil {
		return err
	}

	if session == nil {
		fmt.Println("Not clocked in.")
		return nil
	}

	elapsed := time.Since(session.StartedAt).Milliseconds()
	fmt.Printf("Clocked in since %s (%s elapsed)\n",
		session.StartedAt.Local().Format("2006-01-02 15:04:05"), formatDuration(elapsed))
	return nil
}

type SessionsCmd struct{}

func (s *SessionsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := authedClient(globals)
	if err != nil {
		return err
	}

	sessions, err := client.Sessions(ctx)
	if err != nil {
		return err
	}

	printSessions(sessions)
	return nil
}
