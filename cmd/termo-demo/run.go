package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/termo-dev/termo"
	"github.com/termo-dev/termo/pkg/inspect"
	"github.com/termo-dev/termo/pkg/nav"
	"github.com/termo-dev/termo/pkg/navmw"
	"github.com/termo-dev/termo/pkg/persist"
)

func runCmd() *cobra.Command {
	var (
		inspectAddr string
		stateFile   string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scripted navigation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(inspectAddr, stateFile, debug)
		},
	}

	cmd.Flags().StringVar(&inspectAddr, "inspect", "", "serve the HTTP inspector on this address (e.g. :7070)")
	cmd.Flags().StringVar(&stateFile, "state", "", "persist navigation history to this file")
	cmd.Flags().BoolVar(&debug, "debug", false, "verbose transition logging")

	return cmd
}

// screen is the demo view type: just a rendered line of text.
type screen struct {
	Title string
}

func textScreen(title string) nav.ViewFactory {
	return func(params nav.Params, query nav.Query) (nav.View, error) {
		return &screen{Title: title}, nil
	}
}

func demoRoutes(loggedIn *bool) []nav.RouteDefinition {
	return []nav.RouteDefinition{
		{Path: "/", Name: "home", View: textScreen("Home")},
		{
			Path: "/users/:id",
			Name: "user",
			View: func(params nav.Params, query nav.Query) (nav.View, error) {
				return &screen{Title: fmt.Sprintf("User %v", params["id"])}, nil
			},
		},
		{Path: "/login", Name: "login", View: textScreen("Login")},
		{
			Path: "/settings",
			Name: "settings",
			View: textScreen("Settings"),
			BeforeEnter: func(ctx context.Context, to, from *nav.Route) (nav.Decision, error) {
				if !*loggedIn {
					return nav.Redirect("/login"), nil
				}
				return nav.Proceed(), nil
			},
		},
		{Path: "/files/*path", Name: "files", View: func(params nav.Params, query nav.Query) (nav.View, error) {
			return &screen{Title: fmt.Sprintf("Files: %v", params["path"])}, nil
		}},
	}
}

func runDemo(inspectAddr, stateFile string, debug bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(debug),
	}))

	loggedIn := false
	observers := []nav.Observer{
		navmw.Prometheus(),
		navmw.Tracing(),
	}

	app := termo.New(termo.Config{
		Routes:    demoRoutes(&loggedIn),
		Observers: observers,
		Debug:     debug,
		Logger:    logger,
		OnRedraw: func(view nav.View) {
			if s, ok := view.(*screen); ok {
				fmt.Printf("  ┌─ screen: %s\n", s.Title)
			}
		},
	})
	defer app.Close()

	app.Nav().AfterEach(func(to, from *nav.Route, direction nav.Direction) {
		fromPath := "(start)"
		if from != nil {
			fromPath = from.Path
		}
		fmt.Printf("  └─ %s: %s → %s\n", direction, fromPath, to.Path)
	})

	var srv *inspect.Server
	if inspectAddr != "" {
		srv = inspect.NewServer(app.Nav(), inspect.WithLogger(logger))
		app.Nav().AddObserver(srv)
		go func() {
			if err := srv.ListenAndServe(inspectAddr); err != nil {
				logger.Error("inspector failed", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	if stateFile != "" {
		store := persist.NewFileStore(stateFile)
		snap, err := store.Load(context.Background())
		switch {
		case err == nil:
			fmt.Printf("restoring %d history entries from %s\n", len(snap.Entries), stateFile)
			if err := persist.Restore(app.Nav(), snap); err != nil {
				logger.Warn("restore failed", "error", err)
			}
		case !errors.Is(err, persist.ErrNoSnapshot):
			logger.Warn("snapshot load failed", "error", err)
		}
		defer func() {
			if err := store.Save(context.Background(), persist.Capture(app.Nav())); err != nil {
				logger.Warn("snapshot save failed", "error", err)
			} else {
				fmt.Printf("history saved to %s\n", stateFile)
			}
		}()
	}

	fmt.Println("── scripted session ──")

	app.Nav().Push("/")
	app.Nav().Push("/users/42")
	app.Nav().PushNamed("user", nav.WithParams(nav.Params{"id": int64(7)}))
	app.Nav().Push("/files/docs/readme.txt")

	fmt.Println("── settings is guarded: expect a redirect to /login ──")
	app.Nav().Push("/settings")

	fmt.Println("── logging in, retrying ──")
	loggedIn = true
	app.Nav().Push("/settings")

	fmt.Println("── traversal ──")
	app.Nav().Back()
	app.Nav().Back()
	app.Nav().Forward()

	fmt.Printf("\nhistory (%d entries, cursor %d):\n", len(app.Nav().History()), app.Nav().HistoryIndex())
	for i, entry := range app.Nav().History() {
		marker := "  "
		if i == app.Nav().HistoryIndex() {
			marker = "▶ "
		}
		fmt.Printf("  %s%d: %s\n", marker, i, entry.Path)
	}

	if inspectAddr != "" {
		fmt.Printf("\ninspector on http://%s (routes, history, current, metrics, events)\n", inspectAddr)
		fmt.Println("press enter to exit")
		fmt.Scanln()
	}
	return nil
}

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
