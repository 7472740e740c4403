package lifecycle

import (
	"context"
)

// LaunchSpec carries everything the launcher needs to start a project.
type LaunchSpec struct {
	// EngineBinary is the resolved engine executable.
	EngineBinary string

	// ProjectPath is the project directory handed to the engine.
	ProjectPath string

	// Arguments is the project's opaque launch argument text. Splitting and
	// interpretation belong to the launcher.
	Arguments string
}

// Launcher starts the engine process for a project. Launch returns quickly:
// an error means the process failed to start at all; the child's further
// lifetime is not owned by Seed.
type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) error
}

// CacheCleaner removes a project's build cache.
type CacheCleaner interface {
	Clear(ctx context.Context, projectPath string) error
}

// FolderOpener reveals a project directory in the system file manager.
// Fire-and-forget; the controller ignores the result beyond logging.
type FolderOpener interface {
	Open(path string) error
}

// NoticeKind classifies user-facing refusals.
type NoticeKind int

const (
	// NoticeMissingEngine reports a Run/ClearCache refusal.
	NoticeMissingEngine NoticeKind = iota

	// NoticeNoEngines reports an engine-change refusal with an empty registry.
	NoticeNoEngines

	// NoticeEngineNotFound reports an engine-change refusal for an absent version.
	NoticeEngineNotFound
)

// Notice is a user-facing refusal message. The controller produces typed
// errors regardless of any UI; a Notifier turns them into dialogs, status
// bar flashes, or nothing at all.
type Notice struct {
	Kind    NoticeKind
	Project string
	Message string
}

// Notifier receives refusal notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// nopNotifier is the default when no Notifier is wired.
type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}
