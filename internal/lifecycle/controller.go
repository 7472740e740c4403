// Package lifecycle orchestrates user-triggered project actions (run,
// clear cache, change engine, edit arguments, remove), gated on whether
// each project's pinned engine version is currently installed.
//
// The controller subscribes to the engine registry and re-evaluates every
// project synchronously inside the notification handler. Gated operations
// additionally re-evaluate against a fresh snapshot at call time while
// holding the controller lock, so an action can never be permitted against
// a stale verdict: a concurrent registry change settles strictly before or
// strictly after the decision.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/nothingTVatYT/Seed/internal/engine"
	"github.com/nothingTVatYT/Seed/internal/history"
	"github.com/nothingTVatYT/Seed/internal/log"
	"github.com/nothingTVatYT/Seed/internal/project"
	"github.com/nothingTVatYT/Seed/internal/pubsub"
	"github.com/nothingTVatYT/Seed/internal/reconcile"
	"github.com/nothingTVatYT/Seed/internal/tracing"
)

// StatusChange is published on the controller's event stream whenever a
// project's verdict or persisted fields change. Observers re-read the store
// for field values; the event only says what moved.
type StatusChange struct {
	Path   string
	Status reconcile.Status
}

// Controller coordinates the project store, the engine registry, and the
// side-effecting collaborators. Operations are safe to call from any
// goroutine; mutations are serialized by the controller lock and followed
// by exactly one store Save.
type Controller struct {
	mu sync.Mutex

	store    *project.Store
	registry *engine.Registry

	launcher Launcher
	cleaner  CacheCleaner
	opener   FolderOpener
	notifier Notifier
	history  history.Repository
	tracer   trace.Tracer

	statuses map[string]reconcile.Status
	broker   *pubsub.Broker[StatusChange]
}

// Option configures optional collaborators on the controller.
type Option func(*Controller)

// WithLauncher wires the process-launch collaborator used by Run.
func WithLauncher(l Launcher) Option {
	return func(c *Controller) { c.launcher = l }
}

// WithCacheCleaner wires the cache-clear collaborator used by ClearCache.
func WithCacheCleaner(cl CacheCleaner) Option {
	return func(c *Controller) { c.cleaner = cl }
}

// WithFolderOpener wires the file-manager collaborator used by OpenFolder.
func WithFolderOpener(o FolderOpener) Option {
	return func(c *Controller) { c.opener = o }
}

// WithNotifier wires the user-notification collaborator for refusals.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithHistory wires the launch-history repository. Recording is advisory;
// failures are logged and never surface to callers.
func WithHistory(repo history.Repository) Option {
	return func(c *Controller) { c.history = repo }
}

// WithTracer sets the tracer for span instrumentation. A nil tracer keeps
// the default no-op.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewController creates a controller over the store and registry.
func NewController(store *project.Store, registry *engine.Registry, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		registry: registry,
		notifier: nopNotifier{},
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		statuses: make(map[string]reconcile.Status),
		broker:   pubsub.NewBroker[StatusChange](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start performs the initial reconciliation and begins consuming registry
// change notifications until ctx is cancelled. Each notification triggers a
// full synchronous re-evaluation before the next one is read.
func (c *Controller) Start(ctx context.Context) {
	c.Refresh(ctx)
	events := c.registry.Subscribe(ctx)
	go func() {
		for range events {
			c.Refresh(ctx)
		}
	}()
}

// Refresh re-evaluates every project against the current registry snapshot,
// refreshes cached engine back-references, and publishes one event per
// project whose verdict changed.
func (c *Controller) Refresh(ctx context.Context) {
	_ = ctx

	c.mu.Lock()
	snapshot := c.registry.Snapshot()
	var changes []StatusChange
	seen := make(map[string]struct{})
	for _, p := range c.store.Projects() {
		seen[p.Path()] = struct{}{}
		status := applyResolution(p, snapshot)
		if c.statuses[p.Path()] != status {
			c.statuses[p.Path()] = status
			changes = append(changes, StatusChange{Path: p.Path(), Status: status})
		}
	}
	for path := range c.statuses {
		if _, ok := seen[path]; !ok {
			delete(c.statuses, path)
		}
	}
	c.mu.Unlock()

	for _, change := range changes {
		log.Debug(log.CatLifecycle, "project status changed", "path", change.Path, "status", change.Status)
		c.broker.Publish(pubsub.UpdatedEvent, change)
	}
}

// Status returns the last reconciliation verdict for the project at path.
// StatusUnknown means the project has never been evaluated.
func (c *Controller) Status(path string) reconcile.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.statuses[path]
	if !ok {
		return reconcile.StatusUnknown
	}
	return status
}

// Run launches the project at path with its pinned engine. Refused with
// MissingEngineError when the engine is not installed; an immediate process
// start failure surfaces as LaunchError. Run never mutates the project and
// never persists.
func (c *Controller) Run(ctx context.Context, path string) error {
	ctx, span := c.tracer.Start(ctx, "lifecycle.run", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrProjectPath, path))

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.store.Get(path)
	if !ok {
		return fmt.Errorf("%w: %s", project.ErrNotFound, path)
	}
	span.SetAttributes(attribute.String(tracing.AttrEngineVersion, p.EngineVersion().String()))

	status, resolved := c.reconcileLocked(p)
	if status != reconcile.StatusInstalled || resolved == nil {
		err := MissingEngineError{Project: p.Name(), Version: p.EngineVersion()}
		c.refuse(NoticeMissingEngine, p.Name(), err)
		span.RecordError(err)
		return err
	}

	if c.launcher == nil {
		return fmt.Errorf("no launcher configured")
	}

	spec := LaunchSpec{
		EngineBinary: resolved.BinaryPath(),
		ProjectPath:  p.Path(),
		Arguments:    p.Arguments(),
	}
	if err := c.launcher.Launch(ctx, spec); err != nil {
		c.record(ctx, p, history.OutcomeFailed)
		span.RecordError(err)
		return err
	}

	log.Info(log.CatLifecycle, "project launched", "path", p.Path(), "engine", p.EngineVersion())
	c.record(ctx, p, history.OutcomeLaunched)
	return nil
}

// ClearCache removes the project's build cache. Gated exactly like Run.
func (c *Controller) ClearCache(ctx context.Context, path string) error {
	ctx, span := c.tracer.Start(ctx, "lifecycle.clear_cache", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrProjectPath, path))

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.store.Get(path)
	if !ok {
		return fmt.Errorf("%w: %s", project.ErrNotFound, path)
	}

	status, _ := c.reconcileLocked(p)
	if status != reconcile.StatusInstalled {
		err := MissingEngineError{Project: p.Name(), Version: p.EngineVersion()}
		c.refuse(NoticeMissingEngine, p.Name(), err)
		span.RecordError(err)
		return err
	}

	if c.cleaner == nil {
		return fmt.Errorf("no cache cleaner configured")
	}

	if err := c.cleaner.Clear(ctx, p.Path()); err != nil {
		span.RecordError(err)
		return err
	}
	log.Info(log.CatLifecycle, "cache cleared", "path", p.Path())
	return nil
}

// ToggleTemplate flips the project's template flag and persists. Not gated:
// metadata edits stay possible while an engine is missing.
func (c *Controller) ToggleTemplate(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.store.Get(path)
	if !ok {
		return fmt.Errorf("%w: %s", project.ErrNotFound, path)
	}

	p.SetTemplate(!p.IsTemplate())
	if err := c.store.Save(ctx); err != nil {
		// Roll back so memory and disk never silently diverge.
		p.SetTemplate(!p.IsTemplate())
		return err
	}

	c.broker.Publish(pubsub.UpdatedEvent, StatusChange{Path: path, Status: c.statuses[path]})
	return nil
}

// EditArguments replaces the project's launch argument text and persists.
// The text is opaque; no validation happens here or anywhere downstream
// until the launcher splits it.
func (c *Controller) EditArguments(ctx context.Context, path, arguments string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.store.Get(path)
	if !ok {
		return fmt.Errorf("%w: %s", project.ErrNotFound, path)
	}

	prev := p.Arguments()
	p.SetArguments(arguments)
	if err := c.store.Save(ctx); err != nil {
		p.SetArguments(prev)
		return err
	}

	c.broker.Publish(pubsub.UpdatedEvent, StatusChange{Path: path, Status: c.statuses[path]})
	return nil
}

// ChangeEngineVersion repins the project to v. The empty registry is its own
// refusal, checked before v is considered at all; an uninstalled v refuses
// with EngineNotFoundError and leaves the project untouched. On success the
// project is repinned, its engine cache resolved, the verdict set to
// Installed, and the collection persisted.
func (c *Controller) ChangeEngineVersion(ctx context.Context, path string, v engine.Version) error {
	ctx, span := c.tracer.Start(ctx, "lifecycle.change_engine", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrProjectPath, path),
		attribute.String(tracing.AttrEngineVersion, v.String()),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.store.Get(path)
	if !ok {
		return fmt.Errorf("%w: %s", project.ErrNotFound, path)
	}

	if c.registry.IsEmpty() {
		err := NoEnginesInstalledError{}
		c.refuse(NoticeNoEngines, p.Name(), err)
		span.RecordError(err)
		return err
	}

	target, ok := c.registry.Resolve(v)
	if !ok {
		err := EngineNotFoundError{Version: v}
		c.refuse(NoticeEngineNotFound, p.Name(), err)
		span.RecordError(err)
		return err
	}

	prevVersion := p.EngineVersion()
	prevEngine := p.Engine()
	prevStatus := c.statuses[path]

	p.SetEngineVersion(v)
	p.SetEngine(&target)
	c.statuses[path] = reconcile.StatusInstalled

	if err := c.store.Save(ctx); err != nil {
		p.SetEngineVersion(prevVersion)
		p.SetEngine(prevEngine)
		c.statuses[path] = prevStatus
		return err
	}

	log.Info(log.CatLifecycle, "engine version changed", "path", path, "from", prevVersion, "to", v)
	c.broker.Publish(pubsub.UpdatedEvent, StatusChange{Path: path, Status: reconcile.StatusInstalled})
	return nil
}

// RemoveProject deletes the project at path from the store and persists the
// shrunken collection. Removing an unknown path is a no-op that still
// persists, so removing twice ends in the same state as removing once.
func (c *Controller) RemoveProject(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, existed := c.store.Remove(path)
	prevStatus := c.statuses[path]
	delete(c.statuses, path)

	if err := c.store.Save(ctx); err != nil {
		if existed {
			// Restore; insertion order is display-only, so re-adding at the
			// end is acceptable.
			_ = c.store.Add(removed)
			c.statuses[path] = prevStatus
		}
		return err
	}

	if existed {
		log.Info(log.CatLifecycle, "project removed", "path", path)
		c.broker.Publish(pubsub.DeletedEvent, StatusChange{Path: path, Status: reconcile.StatusUnknown})
	}
	return nil
}

// ImportProject registers an existing project directory and persists the
// expanded collection. The project is reconciled immediately.
func (c *Controller) ImportProject(ctx context.Context, name, path string, v engine.Version) (*project.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := project.New(name, path, v)
	if err != nil {
		return nil, err
	}
	if err := c.store.Add(p); err != nil {
		return nil, err
	}

	status, _ := c.reconcileLocked(p)

	if err := c.store.Save(ctx); err != nil {
		c.store.Remove(path)
		delete(c.statuses, path)
		return nil, err
	}

	log.Info(log.CatLifecycle, "project imported", "path", path, "engine", v, "status", status)
	return p, nil
}

// OpenFolder reveals the project directory in the system file manager.
// Fire-and-forget: failures are logged, not returned.
func (c *Controller) OpenFolder(path string) {
	c.mu.Lock()
	p, ok := c.store.Get(path)
	c.mu.Unlock()
	if !ok || c.opener == nil {
		return
	}
	go func() {
		if err := c.opener.Open(p.Path()); err != nil {
			log.ErrorErr(log.CatLifecycle, "opening project folder", err, "path", p.Path())
		}
	}()
}

// Projects returns the known projects in display order.
func (c *Controller) Projects() []*project.Project {
	return c.store.Projects()
}

// Engines returns the installed engines, sorted by version.
func (c *Controller) Engines() []engine.Engine {
	return c.registry.Snapshot()
}

// Subscribe returns the controller's status event stream.
func (c *Controller) Subscribe(ctx context.Context) <-chan pubsub.Event[StatusChange] {
	return c.broker.Subscribe(ctx)
}

// Close shuts down the event stream. The registry subscription ends with
// the context passed to Start.
func (c *Controller) Close() {
	c.broker.Close()
}

// reconcileLocked re-evaluates one project against a fresh registry
// snapshot, updates its cached engine and the status map, and publishes a
// change event if the verdict moved. Callers hold c.mu.
func (c *Controller) reconcileLocked(p *project.Project) (reconcile.Status, *engine.Engine) {
	snapshot := c.registry.Snapshot()

	var resolved *engine.Engine
	status := reconcile.StatusMissing
	if e, ok := reconcile.ResolveEngine(p, snapshot); ok {
		resolved = &e
		status = reconcile.StatusInstalled
	}
	p.SetEngine(resolved)

	if c.statuses[p.Path()] != status {
		c.statuses[p.Path()] = status
		c.broker.Publish(pubsub.UpdatedEvent, StatusChange{Path: p.Path(), Status: status})
	}
	return status, resolved
}

func (c *Controller) refuse(kind NoticeKind, projectName string, err error) {
	log.Warn(log.CatLifecycle, "action refused", "project", projectName, "reason", err.Error())
	c.notifier.Notify(Notice{Kind: kind, Project: projectName, Message: err.Error()})
}

func (c *Controller) record(ctx context.Context, p *project.Project, outcome history.Outcome) {
	if c.history == nil {
		return
	}
	rec := history.NewRecord(p.Path(), p.EngineVersion(), outcome)
	if err := c.history.Record(ctx, rec); err != nil {
		log.ErrorErr(log.CatDB, "recording launch", err, "path", p.Path())
	}
}

// applyResolution resolves one project against a snapshot and refreshes its
// cached back-reference.
func applyResolution(p *project.Project, snapshot []engine.Engine) reconcile.Status {
	if e, ok := reconcile.ResolveEngine(p, snapshot); ok {
		p.SetEngine(&e)
		return reconcile.StatusInstalled
	}
	p.SetEngine(nil)
	return reconcile.StatusMissing
}
