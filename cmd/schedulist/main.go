package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/schedulist/schedulist/internal/cache"
	"github.com/schedulist/schedulist/internal/config"
	"github.com/schedulist/schedulist/internal/editor"
	"github.com/schedulist/schedulist/internal/rpc"
	"github.com/schedulist/schedulist/internal/tui"
	"github.com/schedulist/schedulist/pkg/logging"
)

func main() {
	configPath := flag.String("config", "./schedulist.yaml", "path to config file")
	email := flag.String("email", "", "log in with this email before starting")
	password := flag.String("password", "", "password for -email")
	register := flag.Bool("register", false, "register a new account instead of logging in")
	name := flag.String("name", "", "display name for -register")
	slug := flag.String("slug", "", "profile slug for -register")
	flag.Parse()

	// The TUI owns the terminal; keep diagnostics out of it.
	logging.SetupWithLevel(logging.ParseLevel("error"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *email != "" {
		if err := login(cfg, *configPath, *email, *password, *register, *name, *slug); err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.Client.Token == "" {
		fmt.Fprintln(os.Stderr, "no session token; run with -email and -password (add -register -name -slug for a new account)")
		os.Exit(1)
	}

	client := rpc.NewClient(http.DefaultClient, cfg.Client.ServerURL, cfg.Client.Token)
	coll := cache.NewCollection(client.FetchGroups)
	defer coll.Close()

	controller := tui.NewController(client, coll, nil, cfg.PublicBaseURL)
	ed := editor.New(client, coll, controller)
	controller.SetEditor(ed)
	defer ed.Close()

	if cfg.Client.RefreshCron != "" {
		if err := ed.StartAutoRefresh(cfg.Client.RefreshCron); err != nil {
			slog.Warn("invalid refresh cron spec", "spec", cfg.Client.RefreshCron, "error", err)
		}
	}

	if err := controller.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		os.Exit(1)
	}
}

// login obtains a session token and persists it in the config file.
func login(cfg *config.Config, path, email, password string, register bool, name, slug string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := rpc.NewClient(http.DefaultClient, cfg.Client.ServerURL, "")

	var resp *rpc.AuthResponse
	var err error
	if register {
		resp, err = client.Register(ctx, &rpc.RegisterRequest{
			Email:       email,
			DisplayName: name,
			Slug:        slug,
			Password:    password,
		})
	} else {
		resp, err = client.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}

	cfg.Client.Token = resp.Token
	return config.Save(path, cfg)
}
