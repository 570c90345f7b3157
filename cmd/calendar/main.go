// Command calendar is the desktop calendar's command line front end. It
// renders agendas with recurring events expanded, and exchanges events
// with other calendar applications through iCalendar files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/example/desktop-calendar/internal/application"
	"github.com/example/desktop-calendar/internal/config"
	"github.com/example/desktop-calendar/internal/ics"
	"github.com/example/desktop-calendar/internal/logging"
	"github.com/example/desktop-calendar/internal/persistence/sqlite"
	"github.com/example/desktop-calendar/internal/recurrence"
)

const usage = `Usage: calendar [-config file] <command> [options]

Commands:
  agenda    show the expanded agenda for a window
  export    write all events to an iCalendar file
  import    read events from an iCalendar file
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("calendar", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", defaultConfigPath(), "path to the configuration file")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "calendar: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(stderr, cfg.LogLevel)
	ctx = logging.ContextWithLogger(ctx, logger)

	location, err := cfg.Location()
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
		return 1
	}

	pool, err := sqlite.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DatabasePath)
		return 1
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	categoryRepo := sqlite.NewCategoryRepository(pool)
	if err := categoryRepo.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed categories", "error", err)
		return 1
	}

	expander := recurrence.NewExpander(location)
	events := application.NewEventService(
		newEventRepositoryAdapter(sqlite.NewEventRepository(pool)),
		expander, logger, time.Now)

	app := &cli{
		events:   events,
		exporter: ics.NewExporter(time.Now),
		importer: ics.NewImporter(location),
		window:   cfg.DefaultWindow,
		stdout:   stdout,
		stderr:   stderr,
	}

	command, rest := global.Arg(0), global.Args()[1:]
	var cmdErr error
	switch command {
	case "agenda":
		cmdErr = app.agenda(ctx, rest)
	case "export":
		cmdErr = app.export(ctx, rest)
	case "import":
		cmdErr = app.importEvents(ctx, rest)
	default:
		fmt.Fprintf(stderr, "calendar: unknown command %q\n", command)
		fmt.Fprint(stderr, usage)
		return 2
	}

	if cmdErr != nil {
		var vErr *application.ValidationError
		if errors.As(cmdErr, &vErr) {
			for field, message := range vErr.FieldErrors {
				fmt.Fprintf(stderr, "calendar: %s: %s\n", field, message)
			}
			return 1
		}
		fmt.Fprintf(stderr, "calendar: %v\n", cmdErr)
		return 1
	}
	return 0
}

type cli struct {
	events   *application.EventService
	exporter *ics.Exporter
	importer *ics.Importer
	window   time.Duration
	stdout   io.Writer
	stderr   io.Writer
}

func (c *cli) agenda(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agenda", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	from := fs.String("from", "", "window start (YYYY-MM-DD), default today")
	to := fs.String("to", "", "window end (YYYY-MM-DD), default start plus the configured window")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, end, err := c.resolveWindow(*from, *to)
	if err != nil {
		return err
	}

	agenda, err := c.events.Agenda(ctx, application.AgendaParams{Start: start, End: end})
	if err != nil {
		return err
	}

	for _, occurrence := range agenda.Occurrences {
		c.printOccurrence(occurrence)
	}
	for _, warning := range agenda.Warnings {
		fmt.Fprintf(c.stdout, "warning: %q overlaps %q from %s to %s\n",
			warning.FirstTitle, warning.SecondTitle,
			warning.Start.Format("2006-01-02 15:04"),
			warning.End.Format("2006-01-02 15:04"))
	}
	if len(agenda.Occurrences) == 0 {
		fmt.Fprintln(c.stdout, "no events in window")
	}
	return nil
}

func (c *cli) printOccurrence(occurrence application.Occurrence) {
	if occurrence.Event.AllDay {
		fmt.Fprintf(c.stdout, "%s  all day      %s\n",
			occurrence.Start.Format("2006-01-02"), occurrence.Event.Title)
		return
	}
	fmt.Fprintf(c.stdout, "%s  %s-%s  %s\n",
		occurrence.Start.Format("2006-01-02"),
		occurrence.Start.Format("15:04"),
		occurrence.End.Format("15:04"),
		occurrence.Event.Title)
}

func (c *cli) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	out := fs.String("out", "", "output file, default stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	events, err := c.events.ListEvents(ctx)
	if err != nil {
		return err
	}

	w := c.stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := c.exporter.Export(w, events); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "exported %d events\n", len(events))
	return nil
}

func (c *cli) importEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	in := fs.String("in", "", "input iCalendar file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("import requires -in")
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	inputs, err := c.importer.Import(f)
	if err != nil {
		return err
	}

	imported := 0
	for _, input := range inputs {
		if _, err := c.events.CreateEvent(ctx, input); err != nil {
			fmt.Fprintf(c.stderr, "skipping %q: %v\n", input.Title, err)
			continue
		}
		imported++
	}
	fmt.Fprintf(c.stderr, "imported %d of %d events\n", imported, len(inputs))
	return nil
}

func (c *cli) resolveWindow(from, to string) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date %q", from)
		}
		start = parsed
	}

	end := start.Add(c.window)
	if to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date %q", to)
		}
		// The end date is inclusive on the calendar.
		end = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return start, end, nil
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "calendar", "config.yaml")
	}
	return "config.yaml"
}
