package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"exptrack/internal/cli"
	"exptrack/internal/config"
	"exptrack/internal/core"
	"exptrack/internal/export"
	"exptrack/internal/ledger"
	"exptrack/internal/session"
)

const usage = `Usage: exptrack <command> [flags]

Account:
  register   Create an account and sign in
  login      Sign in to an existing account
  logout     Sign out, persisting the ledger
  whoami     Show the active account

Expenses:
  add        Record an expense
  edit       Replace an expense's fields
  rm         Delete an expense
  clear      Delete all expenses
  list       List expenses with optional filters
  stats      Show totals for the current month
  trend      Show monthly spending totals
  export     Write expenses to a CSV or JSON file

Run 'exptrack <command> -h' for command flags.
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs.
type app struct {
	cfg     *config.Config
	session *session.Store
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	cli.ValidateConfig(logger, cfg)

	result := cli.InitStore(logger, cfg)
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	ctx := context.Background()
	a := &app{
		cfg:     cfg,
		session: session.NewStore(result.Store, logger),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	if _, err := a.session.Resume(ctx); err != nil {
		// A corrupt or unreadable session must not block commands,
		// logout included. Continue signed out.
		logger.Warn("Failed to resume session, continuing signed out", "error", err)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "whoami":
		return a.whoami(rest)
	case "add":
		return a.add(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "rm":
		return a.remove(ctx, rest)
	case "clear":
		return a.clear(ctx, rest)
	case "list":
		return a.list(rest)
	case "stats":
		return a.stats(rest)
	case "trend":
		return a.trend(rest)
	case "export":
		return a.export(rest)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// activeLedger builds a ledger over the signed-in account or fails when no
// session is active.
func (a *app) activeLedger() (*ledger.Ledger, error) {
	acct := a.session.Current()
	if acct == nil {
		return nil, fmt.Errorf("no active session, run 'exptrack login' first")
	}
	return ledger.New(acct, a.session, nil), nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flag: -email")
	}

	pw, confirm := *password, *password
	if pw == "" {
		var err error
		if pw, err = cli.ReadPassword(a.stdin, a.stdout, "Password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if confirm, err = cli.ReadPassword(a.stdin, a.stdout, "Confirm password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	acct, err := a.session.Register(ctx, *name, *email, pw, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Registered %s, you are now signed in\n", acct.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flag: -email")
	}

	pw := *password
	if pw == "" {
		var err error
		if pw, err = cli.ReadPassword(a.stdin, a.stdout, "Password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	acct, err := a.session.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s\n", acct.Email)
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	fs := a.flagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed out")
	return nil
}

func (a *app) whoami(args []string) error {
	fs := a.flagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}
	acct := a.session.Current()
	if acct == nil {
		fmt.Fprintln(a.stdout, "Not signed in")
		return nil
	}
	name := acct.DisplayName
	if name == "" {
		name = acct.Email
	}
	fmt.Fprintf(a.stdout, "%s <%s>, %d expenses\n", name, acct.Email, len(acct.Expenses))
	return nil
}

// expenseFlags registers the shared expense field flags on fs.
func (a *app) expenseFlags(fs *flag.FlagSet) *cli.ExpenseInput {
	in := &cli.ExpenseInput{}
	fs.StringVar(&in.Amount, "amount", "", "Amount, e.g. 12.50")
	fs.StringVar(&in.Category, "category", "", "One of: "+categoryList())
	fs.StringVar(&in.Date, "date", core.DateOf(time.Now()).String(), "Date in YYYY-MM-DD form")
	fs.StringVar(&in.Description, "desc", "", "Description (optional)")
	fs.StringVar(&in.Currency, "currency", "", "3-letter currency code (optional)")
	return in
}

func categoryList() string {
	cats := core.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	in := a.expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}
	fields, err := in.Fields(a.cfg.DefaultCurrency)
	if err != nil {
		return err
	}
	e, err := led.Add(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added expense %d: %s%s %s\n", e.ID, core.Symbol(e.Currency), e.Amount, e.Category)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := a.flagSet("edit")
	id := fs.Int64("id", 0, "Expense id")
	in := a.expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("missing required flag: -id")
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}
	fields, err := in.Fields(a.cfg.DefaultCurrency)
	if err != nil {
		return err
	}
	e, err := led.Update(ctx, *id, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated expense %d\n", e.ID)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := a.flagSet("rm")
	id := fs.Int64("id", 0, "Expense id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("missing required flag: -id")
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}
	removed, err := led.Remove(ctx, *id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.stdout, "No expense with id %d\n", *id)
		return nil
	}
	fmt.Fprintf(a.stdout, "Removed expense %d\n", *id)
	return nil
}

func (a *app) clear(ctx context.Context, args []string) error {
	fs := a.flagSet("clear")
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("refusing to delete %d expenses without -yes", led.Len())
	}
	if err := led.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Cleared all expenses")
	return nil
}

func (a *app) list(args []string) error {
	fs := a.flagSet("list")
	category := fs.String("category", "", "Filter by category")
	from := fs.String("from", "", "Earliest date, YYYY-MM-DD")
	to := fs.String("to", "", "Latest date, YYYY-MM-DD")
	search := fs.String("search", "", "Search description and category")
	sortBy := fs.String("sort", core.SortDateDesc.String(), "Sort order: date-desc, date-asc, amount-desc, amount-asc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}

	f := core.Filter{
		Category:   core.Category(*category),
		SearchText: *search,
		SortBy:     core.SortOrder(*sortBy),
	}
	if f.Category != "" && !f.Category.IsValid() {
		return fmt.Errorf("unknown category %q, expected one of: %s", *category, categoryList())
	}
	if !f.SortBy.IsValid() {
		return fmt.Errorf("unknown sort order %q", *sortBy)
	}
	if *from != "" {
		if f.DateFrom, err = core.ParseDate(*from); err != nil {
			return fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if *to != "" {
		if f.DateTo, err = core.ParseDate(*to); err != nil {
			return fmt.Errorf("invalid -to date: %w", err)
		}
	}

	records := led.List(f)
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, "No expenses found")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s%s\t%s\n",
			e.ID, e.Date, e.Category, core.Symbol(e.Currency), e.Amount, e.Description)
	}
	return tw.Flush()
}

func (a *app) stats(args []string) error {
	fs := a.flagSet("stats")
	if err := fs.Parse(args); err != nil {
		return err
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}

	sym := core.Symbol(a.cfg.DefaultCurrency)
	today := core.DateOf(time.Now())
	totals := led.Totals(today)
	fmt.Fprintf(a.stdout, "Total spent:      %s%s\n", sym, totals.Total)
	fmt.Fprintf(a.stdout, "This month:       %s%s\n", sym, totals.MonthTotal)
	fmt.Fprintf(a.stdout, "Avg/day (month):  %s%s\n", sym, totals.AvgPerDay)
	fmt.Fprintf(a.stdout, "Categories used:  %d\n", totals.DistinctCategories)

	byCategory := led.CategoryTotals()
	if len(byCategory) > 0 {
		fmt.Fprintln(a.stdout, "\nBy category:")
		tw := tabwriter.NewWriter(a.stdout, 2, 4, 2, ' ', 0)
		for _, c := range byCategory {
			fmt.Fprintf(tw, "  %s\t%s%s\n", c.Name, sym, c.Amount)
		}
		return tw.Flush()
	}
	return nil
}

func (a *app) trend(args []string) error {
	fs := a.flagSet("trend")
	months := fs.Int("months", a.cfg.TrendMonths, "How many months back to include")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *months < 1 {
		return fmt.Errorf("invalid -months %d: must be at least 1", *months)
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}

	sym := core.Symbol(a.cfg.DefaultCurrency)
	buckets := led.Trend(core.DateOf(time.Now()), *months)
	tw := tabwriter.NewWriter(a.stdout, 2, 4, 2, ' ', 0)
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s\t%s%s\n", b.Label, sym, b.Total)
	}
	return tw.Flush()
}

func (a *app) export(args []string) error {
	fs := a.flagSet("export")
	format := fs.String("format", "csv", "Export format: csv or json")
	out := fs.String("o", "", "Output file (defaults to expenses_<today>.<format>)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f := export.Format(*format)
	if !f.IsValid() {
		return fmt.Errorf("unsupported export format %q", *format)
	}

	led, err := a.activeLedger()
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = export.Today(f)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	records := led.List(core.Filter{SortBy: core.SortDateDesc})
	if err := export.Write(file, f, records); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(a.stdout, "Exported %d expenses to %s\n", len(records), path)
	return nil
}
