// Command ironyy is a project-management console: epics and stories in a
// JSON-backed database, protected by a password and an optional time-based
// second factor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironyy/ironyy/auth"
	"github.com/ironyy/ironyy/internal/store"
	"github.com/ironyy/ironyy/internal/ui"
)

const (
	loginAttempts = 3
	qrFileName    = "enrollment.png"
)

func main() {
	dbPath := flag.String("db", "db.json", "path to the database file")
	debug := flag.Bool("debug", false, "write debug logs to ironyy.log")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*dbPath, log); err != nil {
		log.Error("fatal", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	// Logs go to a file so they do not interleave with the rendered pages.
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"ironyy.log"}
	cfg.ErrorOutputPaths = []string{"ironyy.log"}
	return cfg.Build()
}

func run(dbPath string, log *zap.Logger) error {
	db, err := store.Open(dbPath, log)
	if err != nil {
		return err
	}

	engine, err := auth.New(auth.DefaultConfig())
	if err != nil {
		return err
	}

	prompts := ui.NewPrompts()
	if err := ensureAuthenticated(db, engine, prompts, log); err != nil {
		return err
	}

	nav := ui.NewNavigator(db, prompts, log)
	for {
		page := nav.CurrentPage()
		if page == nil {
			return nil
		}

		clearScreen()
		lines, err := page.Draw()
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}

		input, err := prompts.Line("")
		if err != nil {
			return err
		}
		action, err := page.HandleInput(input)
		if err != nil {
			return err
		}
		if err := nav.Dispatch(action); err != nil {
			return err
		}
	}
}

func clearScreen() {
	fmt.Print("\x1b[2J\x1b[H")
}

// ensureAuthenticated gates the page loop: first run creates the account,
// later runs require the password and, when enrolled, the second factor.
func ensureAuthenticated(db *store.Database, engine *auth.Engine, prompts *ui.Prompts, log *zap.Logger) error {
	acct := db.Account()
	if acct == nil {
		return createAccount(db, engine, prompts, log)
	}
	return login(engine, acct, prompts, log)
}

func createAccount(db *store.Database, engine *auth.Engine, prompts *ui.Prompts, log *zap.Logger) error {
	fmt.Println("No account found. Let's create one.")
	username, err := prompts.Line("Username:")
	if err != nil {
		return err
	}

	var acct *auth.Account
	for {
		password, err := prompts.Password("Choose a password: ")
		if err != nil {
			return err
		}

		acct, err = engine.CreateAccount(username, password)
		if err == nil {
			break
		}
		var violation *auth.PolicyViolation
		if errors.As(err, &violation) {
			// Policy failures are the one case shown with the
			// specific unmet rule.
			fmt.Println(violation.Error())
			continue
		}
		return err
	}

	enable, err := prompts.Line("Enable two-factor authentication? [y/N]:")
	if err != nil {
		return err
	}
	if enable == "y" || enable == "Y" {
		if err := enrollSecondFactor(engine, acct); err != nil {
			return err
		}
	}

	if err := db.SetAccount(acct); err != nil {
		return err
	}
	log.Info("account created", zap.String("username", username))
	fmt.Println("Account created.")
	return nil
}

func enrollSecondFactor(engine *auth.Engine, acct *auth.Account) error {
	enrollment, err := engine.EnableSecondFactor(acct)
	if err != nil {
		return err
	}
	if err := os.WriteFile(qrFileName, enrollment.PNG, 0o600); err != nil {
		return fmt.Errorf("write enrollment image: %w", err)
	}
	fmt.Println("Scan this QR code with your authenticator app:", qrFileName)
	fmt.Println("Or enter the URI manually:", enrollment.URI)
	return nil
}

func login(engine *auth.Engine, acct *auth.Account, prompts *ui.Prompts, log *zap.Logger) error {
	for attempt := 0; attempt < loginAttempts; attempt++ {
		password, err := prompts.Password("Password: ")
		if err != nil {
			return err
		}

		ok, err := engine.VerifyPassword(acct, password)
		if err != nil {
			// Internal hashing failure, not a wrong password.
			return err
		}
		if ok && acct.SecondFactorEnabled() {
			code, codeErr := prompts.Line("Two-factor code:")
			if codeErr != nil {
				return codeErr
			}
			ok, err = engine.VerifySecondFactor(acct, code)
			if err != nil {
				return err
			}
		}
		if ok {
			log.Info("login succeeded", zap.Int("attempts", attempt+1))
			return nil
		}

		// Deliberately generic: no hint whether the password or the
		// code was wrong.
		fmt.Println("Incorrect credentials.")
	}
	return errors.New("too many failed login attempts")
}
