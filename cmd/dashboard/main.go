package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weatherupdate/weatherupdate/internal/dashboard"
	"github.com/weatherupdate/weatherupdate/internal/dashboard/store"
)

const sessionStoreKey = "weatherupdate.app.session"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open local cache: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	app := newApp(apiURL, st)

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		app.login(args)
	case "logout":
		app.logout()
	case "status":
		app.status()
	case "show":
		app.show(args)
	case "alerts":
		app.alerts(args)
	case "set-location":
		app.setLocation(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	path := os.Getenv("WEATHERUPDATE_CACHE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".weatherupdate")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "cache.db")
	}
	return store.Open(path, 0)
}

type app struct {
	client  *dashboard.Client
	store   *store.Store
	state   *dashboard.AppState
	fetcher *dashboard.Fetcher
	ctx     context.Context
}

func newApp(apiURL string, st *store.Store) *app {
	client := dashboard.NewClient(apiURL)

	// Reattach the persisted session, the way the browser kept its cookie.
	if token, ok, _ := st.Get(sessionStoreKey); ok {
		client.SetSessionToken(token)
	}

	return &app{
		client:  client,
		store:   st,
		state:   dashboard.NewAppState(st),
		fetcher: dashboard.NewFetcher(client, st),
		ctx:     context.Background(),
	}
}

func (a *app) login(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: dashboard login <access-token>")
		os.Exit(1)
	}

	token, err := a.client.Login(a.ctx, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	if err := a.store.Set(sessionStoreKey, token); err != nil {
		fmt.Fprintf(os.Stderr, "warning: session not persisted: %v\n", err)
	}
	fmt.Println("Logged in.")
}

func (a *app) logout() {
	if err := a.client.Logout(a.ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logout failed: %v\n", err)
		os.Exit(1)
	}
	_ = a.store.Delete(sessionStoreKey)
	fmt.Println("Logged out.")
}

func (a *app) status() {
	info, err := a.client.Session(a.ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "session check failed: %v\n", err)
		os.Exit(1)
	}

	loc := a.state.Location()
	if info.Authenticated {
		fmt.Printf("Authenticated as role %q\n", info.Role)
	} else {
		fmt.Println("Not authenticated")
	}
	fmt.Printf("Location: %s\n", loc)
}

func (a *app) setLocation(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: dashboard set-location <city> <country>")
		os.Exit(1)
	}

	loc := a.state.SetLocation(dashboard.Location{City: args[0], Country: args[1]})
	if !loc.Active() {
		fmt.Fprintln(os.Stderr, "city and country must both be set")
		os.Exit(1)
	}
	fmt.Printf("Location set to %s\n", loc)
}
