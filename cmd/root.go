// Package cmd implements the CLI command structure for tdl.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tdlapp/tdl-go/internal/config"
	"github.com/tdlapp/tdl-go/internal/identity"
	"github.com/tdlapp/tdl-go/internal/logging"
	"github.com/tdlapp/tdl-go/internal/store"
	"github.com/tdlapp/tdl-go/internal/task"
	"github.com/tdlapp/tdl-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app bundles the wired services every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *store.Store
	repo   *task.Repository
	ids    *identity.Service
	out    io.Writer
}

// Run executes the tdl CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tdl", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	st := store.New(cfg.DataDir)
	repo := task.NewRepository(st)
	a := &app{
		cfg:    cfg,
		logger: logging.New(cfg),
		store:  st,
		repo:   repo,
		ids:    identity.NewService(st, repo),
		out:    os.Stdout,
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return ui.RunTUI(ctx, cfg, st, repo, a.ids)
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "done":
		return a.doneCommand(remainingArgs)
	case "rm":
		return a.rmCommand(remainingArgs)
	case "edit":
		return a.editCommand(remainingArgs)
	case "mv":
		return a.mvCommand(remainingArgs)
	case "register":
		return a.registerCommand(remainingArgs)
	case "login":
		return a.loginCommand(remainingArgs)
	case "logout":
		return a.logoutCommand(remainingArgs)
	case "whoami":
		return a.whoamiCommand(remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(a.out)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// owner resolves the task collection the CLI operates on: the active
// session's account, or the shared local collection when logged out.
func (a *app) owner() (string, error) {
	id, ok, err := a.ids.Current()
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	if !ok {
		return "", nil
	}
	return id.Email, nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tdl version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tdl - A to-do list for your terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tdl [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui             Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  list            List tasks")
	fmt.Fprintln(w, "  add <title>     Add a task")
	fmt.Fprintln(w, "  done <task>     Toggle a task done/pending")
	fmt.Fprintln(w, "  rm <task>       Remove a task")
	fmt.Fprintln(w, "  edit <task>     Edit a task's fields")
	fmt.Fprintln(w, "  mv <from> <to>  Move a task to a new position")
	fmt.Fprintln(w, "  register        Create an account and sign in")
	fmt.Fprintln(w, "  login           Sign in to an account")
	fmt.Fprintln(w, "  logout          Sign out")
	fmt.Fprintln(w, "  whoami          Show the active account")
	fmt.Fprintln(w, "  doctor          Check config and dataset validity")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A <task> is a 1-based list position or an id prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (all|pending|done)")
	fmt.Fprintln(w, "  -manual")
	fmt.Fprintln(w, "        Use manual order instead of due-date order")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add/Edit Options:")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Task priority (high|medium|low)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (YYYY-MM-DD)")
	fmt.Fprintln(w, "  -desc string")
	fmt.Fprintln(w, "        Task description")
}
