package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kapil1024/Redfish-Service-Validator/internal/config"
	"github.com/kapil1024/Redfish-Service-Validator/internal/payload"
	"github.com/kapil1024/Redfish-Service-Validator/internal/report"
	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
	"github.com/kapil1024/Redfish-Service-Validator/internal/validator"
)

// ValidateOptions carries the per-run options shared by the validate and
// crosscheck commands.
type ValidateOptions struct {
	Verbose         bool
	Format          string
	UseColour       bool
	ContinueOnError bool
	Lenient         bool
	TypeOverride    string
	Workers         int
}

// Manager defines the business logic for payload validation operations.
type Manager interface {
	Catalog() *schema.Catalog
	ValidatePayload(ctx context.Context, target string, opts ValidateOptions) error
	WatchValidation(ctx context.Context, target string, opts ValidateOptions,
		readyChan chan<- struct{}) error
	Inspect(name, format string) ([]byte, error)
	Crosscheck(ctx context.Context, packDir, target string, opts ValidateOptions) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Catalog() *schema.Catalog {
	return l.check().Catalog()
}

func (l *LazyManager) ValidatePayload(ctx context.Context, target string, opts ValidateOptions) error {
	return l.check().ValidatePayload(ctx, target, opts)
}

func (l *LazyManager) WatchValidation(ctx context.Context, target string, opts ValidateOptions,
	readyChan chan<- struct{},
) error {
	return l.check().WatchValidation(ctx, target, opts, readyChan)
}

func (l *LazyManager) Inspect(name, format string) ([]byte, error) {
	return l.check().Inspect(name, format)
}

func (l *LazyManager) Crosscheck(ctx context.Context, packDir, target string, opts ValidateOptions) error {
	return l.check().Crosscheck(ctx, packDir, target, opts)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	catalog        *schema.Catalog
	cfg            *config.Config
	reporterWriter io.Writer
}

func NewCLIManager(l *slog.Logger, c *schema.Catalog, cfg *config.Config) *CLIManager {
	return &CLIManager{
		logger:         l,
		catalog:        c,
		cfg:            cfg,
		reporterWriter: os.Stdout,
	}
}

func (m *CLIManager) Catalog() *schema.Catalog {
	return m.catalog
}

// newRunner builds a runner over the given catalog with the run's options
// applied. Strict checking holds unless the config or the run relaxes it.
func (m *CLIManager) newRunner(cat *schema.Catalog, opts ValidateOptions) *schema.Runner {
	runner := schema.NewRunner(cat)
	runner.SetStrict(m.cfg.IsStrict() && !opts.Lenient)
	runner.SetStopOnFirstError(!opts.ContinueOnError)
	if opts.TypeOverride != "" {
		runner.SetTypeOverride(opts.TypeOverride)
	}

	workers := opts.Workers
	if workers == 0 {
		workers = m.cfg.Workers
	}
	if workers > 0 {
		runner.SetNumWorkers(workers)
	}
	return runner
}

func (m *CLIManager) reporterFor(opts ValidateOptions) schema.Reporter {
	switch opts.Format {
	case "json":
		return &report.JSONReporter{}
	default:
		return &report.TextReporter{Verbose: opts.Verbose, UseColour: opts.UseColour}
	}
}

func (m *CLIManager) ValidatePayload(ctx context.Context, target string, opts ValidateOptions) error {
	m.logger.Debug("validating payloads", "target", target, "verbose", opts.Verbose,
		"format", opts.Format, "useColour", opts.UseColour, "continueOnError", opts.ContinueOnError,
		"lenient", opts.Lenient, "typeOverride", opts.TypeOverride)

	return m.validateTarget(ctx, m.catalog, target, opts)
}

// validateTarget runs one validation pass over the target and writes the
// report. A target directory is walked; a target file is validated alone.
// A run whose cases failed returns a ValidationFailedError after the report
// is written, so the CLI exits non-zero.
func (m *CLIManager) validateTarget(ctx context.Context, cat *schema.Catalog, target string, opts ValidateOptions) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	runner := m.newRunner(cat, opts)

	var vr *schema.ValidationReport
	if info.IsDir() {
		vr, err = runner.ValidateTree(ctx, target)
	} else {
		vr, err = runner.ValidateSingle(ctx, target)
	}
	if err != nil {
		return err
	}

	if wErr := m.reporterFor(opts).Write(m.reporterWriter, vr); wErr != nil {
		return wErr
	}

	if _, failed := vr.Counts(); failed > 0 {
		return &schema.ValidationFailedError{Failed: failed}
	}
	return nil
}

// WatchValidation watches the metadata and payload directories and triggers
// validation on changes. A schema document change reloads the catalog and
// revalidates the whole target; a payload change revalidates just that file.
// If you want to know when the watcher is ready to start listening to
// changes, pass a non-nil readyChan to be notified.
func (m *CLIManager) WatchValidation(ctx context.Context, target string, opts ValidateOptions,
	readyChan chan<- struct{},
) error {
	m.logger.Debug("watching validation", "target", target, "verbose", opts.Verbose,
		"format", opts.Format, "useColour", opts.UseColour, "continueOnError", opts.ContinueOnError)

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	payloadDir := target
	if !info.IsDir() {
		payloadDir = filepath.Dir(target)
	}

	dirs := []string{payloadDir}
	if m.catalog.Dir() != "" && m.catalog.Dir() != payloadDir {
		dirs = append(dirs, m.catalog.Dir())
	}

	watcher := schema.NewWatcher(m.logger, dirs...)

	// The catalog in use; replaced when a schema document changes.
	cat := m.catalog

	callback := func(event schema.WatchEvent) {
		path := target
		if event.SchemaChanged {
			m.logger.Info("Schema changed:", "document", event.Path)
			fresh, loadErr := schema.Load(cat.Dir())
			if loadErr != nil {
				if fresh == nil {
					m.logger.Error("Catalog reload failed", "error", loadErr)
					return
				}
				m.logger.Warn("some schema documents were skipped", "error", loadErr)
			}
			cat = fresh
		} else {
			m.logger.Info("Payload changed:", "payload", event.Path)
			path = event.Path
		}

		if vErr := m.validateTarget(ctx, cat, path, opts); vErr != nil {
			var failed *schema.ValidationFailedError
			if !errors.As(vErr, &failed) {
				m.logger.Error("Validation failed", "error", vErr)
			}
		}
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			readyChan <- struct{}{}
		}()
	}

	return watcher.Watch(ctx, callback)
}

// Inspect resolves a qualified type name and renders its skeleton: kind,
// base chain, flattened properties and enum members.
func (m *CLIManager) Inspect(name, format string) ([]byte, error) {
	m.logger.Debug("inspecting type", "type", name, "format", format)

	t, err := m.catalog.GetTypeInCatalog(name)
	if err != nil {
		return nil, err
	}

	if format == "json" {
		return marshalTypeJSON(t)
	}
	return renderTypeText(t), nil
}

// Crosscheck validates the target payloads against the Redfish JSON Schema
// pack as a second opinion alongside the CSDL catalog. Each payload's
// @odata.type picks the schema file: the exact versioned file when the pack
// carries it, the unversioned base file otherwise.
func (m *CLIManager) Crosscheck(ctx context.Context, packDir, target string, opts ValidateOptions) error {
	m.logger.Debug("crosschecking payloads", "pack", packDir, "target", target)

	if packDir == "" {
		packDir = m.cfg.JSONSchemaPackDir
	}
	if packDir == "" {
		return &config.MissingPropertyError{Property: "jsonSchemaPackDir"}
	}

	pack, err := validator.LoadPack(packDir, validator.NewSanthoshCompiler())
	if err != nil {
		return err
	}

	sources, err := collectSources(ctx, target)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		if ce := ctx.Err(); ce != nil {
			return ce
		}

		file, vErr := m.crosscheckSource(pack, src)
		if vErr != nil {
			failed++
			fmt.Fprintf(m.reporterWriter, "✗ %s: %v\n", src.Path, vErr)
			continue
		}
		fmt.Fprintf(m.reporterWriter, "✓ %s (%s)\n", src.Path, file)
	}

	fmt.Fprintf(m.reporterWriter, "%d payload(s) checked, %d failed\n", len(sources), failed)

	if failed > 0 {
		return &schema.ValidationFailedError{Failed: failed}
	}
	return nil
}

// crosscheckSource validates one payload source against the pack, returning
// the schema file it validated against.
func (m *CLIManager) crosscheckSource(pack *validator.Pack, src payload.Source) (string, error) {
	if src.OdataType == "" {
		return "", &schema.NoTypeForPayloadError{Path: src.Path}
	}

	tn := schema.NewTypeName(src.OdataType)
	v, file, err := pack.ValidatorFor(
		tn.Namespace()+validator.PackSuffix,
		tn.Base()+validator.PackSuffix,
	)
	if err != nil {
		return "", err
	}

	var doc validator.JSONDocument
	if err := json.Unmarshal(src.Data, &doc); err != nil {
		return "", err
	}

	if vErr := v.Validate(doc); vErr != nil {
		return "", vErr
	}
	return file, nil
}

// collectSources gathers the payload sources under a target path: the file
// itself, or every payload document in a directory tree.
func collectSources(ctx context.Context, target string) ([]payload.Source, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		src, err := payload.Read(target)
		if err != nil {
			return nil, err
		}
		return []payload.Source{src}, nil
	}

	var sources []payload.Source
	for res := range payload.Walk(ctx, target) {
		if res.Err != nil {
			return nil, res.Err
		}
		sources = append(sources, res.Source)
	}
	return sources, nil
}
