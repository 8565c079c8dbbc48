package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/ledger/infra"
	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  migrate                 apply pending schema migrations
  create-admin <phone>    create the administrator (prompts for name and password)
  balance <phone>         print the balance of an account
  history <phone>         print the transactions of an account, newest first`

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
	failColor = color.New(color.FgYellow)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(cmd string, args []string, in *os.File, out io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	deps, res, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer res.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if cmd == "migrate" {
		version, err := infra.RunMigrations(res.DB)
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "Schema at version %d\n", version) //nolint:errcheck
		return nil
	}

	a := app.New(deps, cfg)
	switch cmd {
	case "create-admin":
		if len(args) < 1 {
			return errors.New("usage: create-admin <phone>")
		}
		admin, err := promptAdmin(in, out, args[0])
		if err != nil {
			return err
		}
		return createAdmin(ctx, a, admin, out)
	case "balance":
		if len(args) < 1 {
			return errors.New("usage: balance <phone>")
		}
		return printBalance(ctx, a, args[0], out)
	case "history":
		if len(args) < 1 {
			return errors.New("usage: history <phone>")
		}
		return printHistory(ctx, a, args[0], out)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func promptAdmin(in *os.File, out io.Writer, phone string) (*config.Admin, error) {
	reader := bufio.NewReader(in)
	fmt.Fprint(out, "Name: ") //nolint:errcheck
	name, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	fmt.Fprint(out, "Aadhaar: ") //nolint:errcheck
	aadhaar, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	fmt.Fprint(out, "Password: ") //nolint:errcheck
	password, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out) //nolint:errcheck
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return &config.Admin{
		Name:     strings.TrimSpace(name),
		Phone:    phone,
		Aadhaar:  strings.TrimSpace(aadhaar),
		Password: string(password),
	}, nil
}

func createAdmin(ctx context.Context, a *app.App, admin *config.Admin, out io.Writer) error {
	acct, created, err := a.UserService.EnsureAdmin(ctx, admin)
	if err != nil {
		return err
	}
	if !created {
		dimColor.Fprintf(out, "Admin %s already exists (%s)\n", acct.Phone, acct.ID) //nolint:errcheck
		return nil
	}
	okColor.Fprintf(out, "Admin %s created (%s)\n", acct.Phone, acct.ID) //nolint:errcheck
	return nil
}

func printBalance(ctx context.Context, a *app.App, phone string, out io.Writer) error {
	acct, err := a.UserService.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	balance, err := a.LedgerService.Balance(ctx, acct.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s, %s): ", acct.Name, acct.Phone, acct.Category) //nolint:errcheck
	okColor.Fprintln(out, balance)                                        //nolint:errcheck
	return nil
}

func printHistory(ctx context.Context, a *app.App, phone string, out io.Writer) error {
	acct, err := a.UserService.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	records, err := a.LedgerService.History(ctx, acct.ID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		dimColor.Fprintln(out, "No transactions") //nolint:errcheck
		return nil
	}
	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s  %12s", r.CreatedAt.Format(time.RFC3339), r.Kind, money.Amount(r.Amount))
		if r.CounterpartyID != nil {
			line += fmt.Sprintf("  %s (%s)", r.CounterpartyName, r.CounterpartyPhone)
		}
		if r.Status == "failed" {
			failColor.Fprintln(out, line+"  failed") //nolint:errcheck
			continue
		}
		fmt.Fprintln(out, line) //nolint:errcheck
	}
	return nil
}
