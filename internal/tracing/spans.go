package tracing

// Span attribute keys used across Seed's lifecycle spans.
const (
	AttrProjectPath   = "project.path"
	AttrProjectName   = "project.name"
	AttrEngineVersion = "engine.version"
	AttrLaunchBinary  = "launch.binary"
	AttrLaunchOutcome = "launch.outcome"
	AttrErrorMessage  = "error.message"
)
