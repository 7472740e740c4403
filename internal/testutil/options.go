package testutil

// projectData holds all data for a project fixture.
type projectData struct {
	name       string
	version    string
	template   bool
	arguments  string
	icon       bool
	brokenIcon bool
	cacheFiles int
}

// defaultProject returns a projectData with sensible defaults.
func defaultProject(name string) projectData {
	return projectData{
		name:    name,
		version: "1.0.0",
	}
}

// ProjectOption configures a project fixture during builder setup.
type ProjectOption func(*projectData)

// Pinned sets the engine version the project is pinned to.
func Pinned(version string) ProjectOption {
	return func(p *projectData) { p.version = version }
}

// Template marks the project as a template.
func Template() ProjectOption {
	return func(p *projectData) { p.template = true }
}

// Arguments sets the project's launch argument text.
func Arguments(args string) ProjectOption {
	return func(p *projectData) { p.arguments = args }
}

// WithIcon writes a small valid icon.png into the project directory.
func WithIcon() ProjectOption {
	return func(p *projectData) { p.icon = true }
}

// WithBrokenIcon writes an icon.png that is not a PNG.
func WithBrokenIcon() ProjectOption {
	return func(p *projectData) { p.brokenIcon = true }
}

// WithBuildCache populates .seed/cache with n small files.
func WithBuildCache(n int) ProjectOption {
	return func(p *projectData) { p.cacheFiles = n }
}
