package cmd

import (
	"flag"
	"fmt"

	"github.com/tdlapp/tdl-go/internal/appdir"
)

// registerCommand creates an account and signs it in.
func (a *app) registerCommand(args []string) error {
	fs := flag.NewFlagSet("tdl register", flag.ContinueOnError)
	name := fs.String("name", "", "Display name")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 2 {
		return fmt.Errorf("usage: tdl register [-name NAME] <email> <password>")
	}

	id, err := a.ids.Register(*name, fs.Args()[0], fs.Args()[1])
	if err != nil {
		return err
	}
	a.logger.Debug("account created", "email", id.Email)
	fmt.Fprintf(a.out, "Registered and signed in as %s\n", id.Email)
	return nil
}

// loginCommand signs in to an existing account.
func (a *app) loginCommand(args []string) error {
	fs := flag.NewFlagSet("tdl login", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 2 {
		return fmt.Errorf("usage: tdl login <email> <password>")
	}

	id, err := a.ids.Login(fs.Args()[0], fs.Args()[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", id.Email)
	return nil
}

// logoutCommand ends the active session.
func (a *app) logoutCommand(args []string) error {
	fs := flag.NewFlagSet("tdl logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, ok, err := a.ids.Current()
	if err != nil {
		return err
	}
	if err := a.ids.Logout(); err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "Signed out %s\n", id.Email)
	} else {
		fmt.Fprintln(a.out, "Not signed in.")
	}
	return nil
}

// whoamiCommand shows the active account.
func (a *app) whoamiCommand(args []string) error {
	fs := flag.NewFlagSet("tdl whoami", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, ok, err := a.ids.Current()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "Not signed in (using the %s collection)\n", appdir.LocalOwner)
		return nil
	}
	if id.Name != "" {
		fmt.Fprintf(a.out, "%s <%s>\n", id.Name, id.Email)
	} else {
		fmt.Fprintln(a.out, id.Email)
	}
	return nil
}
