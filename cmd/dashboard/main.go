package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tirasundara/momo-dashboard/internal/config"
	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/ingest"
	"github.com/tirasundara/momo-dashboard/internal/logging"
	"github.com/tirasundara/momo-dashboard/internal/repository"
	"github.com/tirasundara/momo-dashboard/internal/service"
	"github.com/tirasundara/momo-dashboard/internal/view"
	"github.com/tirasundara/momo-dashboard/pkg/fileutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Command-line flags, defaulting to the environment configuration
	var (
		search      string
		typeFilter  string
		amount      string
		page        int
		viewName    string
		format      string
		interactive bool
		csvWorkers  int
	)

	flag.StringVar(&cfg.Source, "source", cfg.Source, "Data source: http, file, csv, sms or sqlite")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Base URL of the transactions API")
	flag.StringVar(&cfg.TransactionsFile, "transactions-file", cfg.TransactionsFile, "Path to a transactions JSON document")
	flag.StringVar(&cfg.SummaryFile, "summary-file", cfg.SummaryFile, "Path to a summary JSON document")
	flag.StringVar(&cfg.CSVFile, "csv-file", cfg.CSVFile, "Path to a transactions CSV dump")
	flag.StringVar(&cfg.SMSFile, "sms-file", cfg.SMSFile, "Path to an SMS backup XML file")
	flag.StringVar(&cfg.RulesFile, "rules-file", cfg.RulesFile, "Path to a YAML category rules file")
	flag.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "Path to the SMS import database")
	flag.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "Reload data periodically in interactive mode (0 disables)")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Directory for exported reports, '-' writes to stdout")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.StringVar(&search, "search", "", "Free-text search over SMS body and category")
	flag.StringVar(&typeFilter, "type", "", "Exact category to show")
	flag.StringVar(&amount, "amount", "", "Amount filter: exact match in the list, minimum in charts and reports")
	flag.IntVar(&page, "page", 1, "Page of the transaction list to show")
	flag.StringVar(&viewName, "view", "list", "What to show: list, charts, summary or report")
	flag.StringVar(&format, "format", "json", "Report format: json or csv")
	flag.BoolVar(&interactive, "interactive", false, "Start an interactive session")
	flag.IntVar(&csvWorkers, "workers", 1, "Number of workers parsing CSV dumps")

	flag.Parse()

	if err := cfg.Validate(); err != nil {
		exitWithError(err.Error())
	}

	logger, err := logging.SetupLogging(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to set up logging: %v", err))
	}

	source, closeSource, err := buildSource(cfg, csvWorkers, logger)
	if err != nil {
		exitWithError(fmt.Sprintf("Failed to open data source: %v", err))
	}
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := service.NewDashboardService(source, nil, nil, cfg.PageSize, logger)
	renderer := view.NewRenderer(os.Stdout)
	sink := buildSink(cfg.OutputDir)

	if err := svc.Refresh(ctx); err != nil && !interactive {
		exitWithError(fmt.Sprintf("Failed to load data: %v", err))
	}

	svc.SetCriteria(domain.Criteria{Search: search, Type: typeFilter, Amount: amount})

	if interactive {
		if cfg.RefreshInterval > 0 {
			go svc.Watch(ctx, cfg.RefreshInterval)
		}

		session := newSession(svc, renderer, sink, os.Stdout)
		if err := session.Run(ctx, os.Stdin); err != nil {
			exitWithError(err.Error())
		}
		return
	}

	if page > 1 {
		if _, err := svc.GoToPage(page); err != nil {
			exitWithError(err.Error())
		}
	}

	if err := show(svc, renderer, sink, os.Stdout, viewName, format); err != nil {
		exitWithError(err.Error())
	}
}

// buildSource selects the data source named by the configuration. The
// returned func releases whatever the source holds open.
func buildSource(cfg *config.Config, csvWorkers int, logger *logrus.Logger) (domain.DataSource, func(), error) {
	noop := func() {}

	rules := ingest.DefaultRules()
	if cfg.RulesFile != "" {
		loaded, err := ingest.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, noop, err
		}
		rules = loaded
	}

	switch cfg.Source {
	case config.SourceHTTP:
		return repository.NewHTTPSource(cfg.APIURL, nil, cfg.HTTPTimeout), noop, nil
	case config.SourceFile:
		return repository.NewFileSource(cfg.TransactionsFile, cfg.SummaryFile), noop, nil
	case config.SourceCSV:
		src := repository.NewCSVSource(cfg.CSVFile, rules, logger)
		if csvWorkers > 1 {
			src.NumWorkers = csvWorkers
		}
		return src, noop, nil
	case config.SourceSMS:
		parser := ingest.NewParser(rules, cfg.Location(), logger)
		return repository.NewSMSSource(cfg.SMSFile, parser), noop, nil
	case config.SourceSQLite:
		src, err := repository.NewSQLiteSource(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return src, func() { src.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func buildSink(output string) fileutil.Sink {
	if output == "-" {
		return fileutil.NewWriterSink(os.Stdout)
	}
	return fileutil.NewDirSink(output)
}

// show renders one view of the dashboard to out
func show(svc *service.DashboardService, renderer *view.Renderer, sink fileutil.Sink, out io.Writer, viewName, format string) error {
	switch viewName {
	case "list":
		v, err := svc.List()
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderer.List(v))
	case "charts":
		v, err := svc.Charts()
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderer.Charts(v))
	case "summary":
		s, err := svc.Summary()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderer.Summary(s))
	case "report":
		return export(svc, renderer, sink, out, format)
	default:
		return fmt.Errorf("unknown view %q", viewName)
	}
	return nil
}

func export(svc *service.DashboardService, renderer *view.Renderer, sink fileutil.Sink, out io.Writer, format string) error {
	artifact, err := svc.Export(format, time.Now())
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	location, err := sink.Save(artifact.Data, artifact.ContentType, artifact.FileName)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	// Streaming the report to stdout leaves no room for a description
	if _, ok := sink.(*fileutil.WriterSink); ok {
		return nil
	}

	fmt.Fprint(out, renderer.Report(artifact, location))
	return nil
}

func exitWithError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	os.Exit(1)
}
