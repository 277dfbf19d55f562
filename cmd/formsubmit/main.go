package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	formsubmit "github.com/goliatone/go-formsubmit"
	"github.com/goliatone/go-formsubmit/pkg/submit"
	"github.com/goliatone/go-formsubmit/pkg/view/tui"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	baseURL := flag.String("base-url", "", "server base URL (overrides endpoint.base_url)")
	variant := flag.String("variant", "", "built-in field set: base or email")
	fieldsFile := flag.String("fields", "", "field set file (YAML or JSON)")
	source := flag.String("openapi", "", "OpenAPI document path or URL to derive fields from")
	operation := flag.String("operation", "", "OpenAPI operation ID")
	verbose := flag.Bool("verbose", false, "log submission diagnostics to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "formsubmit: ", log.LstdFlags)

	cfg, err := formsubmit.LoadConfig(*configFile)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	applyFlag(&cfg.Endpoint.BaseURL, *baseURL)
	applyFlag(&cfg.Form.Variant, *variant)
	applyFlag(&cfg.Form.FieldsFile, *fieldsFile)
	applyFlag(&cfg.Form.OpenAPI.Source, *source)
	applyFlag(&cfg.Form.OpenAPI.Operation, *operation)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	form, err := formsubmit.ResolveForm(ctx, cfg)
	if err != nil {
		logger.Fatalf("resolve form: %v", err)
	}
	tr, err := formsubmit.NewTransport(cfg)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	view, err := tui.New(form.Fields)
	if err != nil {
		logger.Fatalf("terminal view: %v", err)
	}

	ctrlLogger := log.New(io.Discard, "", 0)
	if *verbose {
		ctrlLogger = logger
	}
	ctrl, err := formsubmit.NewController(cfg, form, view, tr,
		submit.WithLogger(ctrlLogger),
		submit.WithOutcomeHook(func(outcome submit.Outcome) {
			if outcome.Kind == submit.OutcomeSucceeded {
				_ = view.Info(ctx, "Submitted.")
			}
		}),
	)
	if err != nil {
		logger.Fatalf("controller: %v", err)
	}
	if err := ctrl.Bind(ctx, view); err != nil {
		logger.Fatalf("bind: %v", err)
	}

	fmt.Printf("Posting %s fields to %s%s\n", form.Fields.Name, cfg.Endpoint.BaseURL, form.Endpoint)
	if err := view.Run(ctx); err != nil && !tui.IsAborted(err) {
		logger.Fatalf("%v", err)
	}
}

func applyFlag(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
