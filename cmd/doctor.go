package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/tdlapp/tdl-go/internal/appdir"
	"github.com/tdlapp/tdl-go/internal/identity"
	"github.com/tdlapp/tdl-go/internal/task"
)

// doctorCommand checks the data directory, config, and every dataset.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("tdl doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Fprintln(a.out, "Tdl Doctor")
	fmt.Fprintln(a.out, "==========")
	fmt.Fprintln(a.out)

	allOK := true

	// Check data directory
	fmt.Fprintf(a.out, "Data directory: %s\n", a.cfg.DataDir)
	if info, err := os.Stat(a.cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(a.out, "  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Fprintf(a.out, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(a.out, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(a.out, "  ✅ OK")
	}
	fmt.Fprintln(a.out)

	// Check config
	fmt.Fprintln(a.out, "Config:")
	fmt.Fprintf(a.out, "  ✅ Theme: %s\n", a.cfg.Theme)
	fmt.Fprintf(a.out, "  ✅ Clock interval: %ds\n", a.cfg.ClockIntervalSeconds)
	fmt.Fprintln(a.out)

	// Check accounts
	var users []identity.User
	usersFound, err := a.store.Read(appdir.UsersKey, &users)
	fmt.Fprintln(a.out, "Accounts:")
	switch {
	case err != nil:
		fmt.Fprintf(a.out, "  ❌ %s: %v\n", appdir.UsersKey, err)
		allOK = false
	case !usersFound:
		fmt.Fprintln(a.out, "  ⚠️  No accounts registered")
	default:
		fmt.Fprintf(a.out, "  ✅ %d account(s)\n", len(users))
		if *verbose {
			for _, u := range users {
				fmt.Fprintf(a.out, "    - %s\n", u.Email)
			}
		}
	}
	fmt.Fprintln(a.out)

	// Check session
	fmt.Fprintln(a.out, "Session:")
	session, active, err := a.ids.Current()
	switch {
	case err != nil:
		fmt.Fprintf(a.out, "  ❌ %s: %v\n", appdir.SessionKey, err)
		allOK = false
	case !active:
		fmt.Fprintln(a.out, "  ⚠️  Not signed in")
	default:
		known := false
		for _, u := range users {
			if u.Email == session.Email {
				known = true
				break
			}
		}
		if known {
			fmt.Fprintf(a.out, "  ✅ Active: %s\n", session.Email)
		} else {
			fmt.Fprintf(a.out, "  ❌ Active session for unknown account %s\n", session.Email)
			allOK = false
		}
	}
	fmt.Fprintln(a.out)

	// Validate every task collection against the schema
	owners := []string{""}
	for _, u := range users {
		owners = append(owners, u.Email)
	}

	fmt.Fprintln(a.out, "Task collections:")
	for _, owner := range owners {
		label := appdir.LocalOwner
		if owner != "" {
			label = owner
		}

		if !a.store.Exists(appdir.TasksKey(appdir.OwnerKey(owner))) {
			if owner == "" {
				fmt.Fprintf(a.out, "  ⚠️  %s: no collection yet\n", label)
			} else {
				fmt.Fprintf(a.out, "  ❌ %s: collection missing\n", label)
				allOK = false
			}
			continue
		}

		l, err := a.repo.Load(owner)
		if err != nil {
			fmt.Fprintf(a.out, "  ❌ %s: %v\n", label, err)
			allOK = false
			continue
		}
		if err := task.ValidateSchema(l); err != nil {
			fmt.Fprintf(a.out, "  ❌ %s: %v\n", label, err)
			allOK = false
			continue
		}
		fmt.Fprintf(a.out, "  ✅ %s: %d task(s)\n", label, len(l.Tasks))
		if *verbose {
			for _, t := range l.Tasks {
				fmt.Fprintf(a.out, "    - [%s] %s\n", t.Priority, t.Title)
			}
		}
	}
	fmt.Fprintln(a.out)

	// Overall status
	if allOK {
		fmt.Fprintln(a.out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(a.out, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
