package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"learnhub/internal/apiclient"
	"learnhub/internal/session"

	log "github.com/sirupsen/logrus"
)

const usage = `usage: learnhub <command> [flags]

commands:
  login     -email -password
  logout
  courses   [-title] [-type all|free|paid]
  enroll    -row N [-title] [-type] [-name -number -expiry -cvv]
  enrolled
  theme     [dark|light]`

type app struct {
	cfg    *Config
	store  *session.Store
	sess   session.Session
	client *apiclient.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	os.Exit(realMain())
}

func realMain() int {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o700); err != nil {
		log.Fatalf("creating state dir: %v", err)
	}

	store, err := session.OpenStore(cfg.StorePath)
	if err != nil {
		log.Fatalf("opening state: %v", err)
	}
	defer store.Close()

	sess, err := store.Load()
	if err != nil {
		log.Fatalf("loading session: %v", err)
	}

	a := &app{
		cfg:    cfg,
		store:  store,
		sess:   sess,
		client: apiclient.New(cfg.APIURL, sess),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "courses":
		return a.courses(ctx, args)
	case "enroll":
		return a.enroll(ctx, args)
	case "enrolled":
		return a.enrolled(ctx)
	case "theme":
		return a.theme(args)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}
