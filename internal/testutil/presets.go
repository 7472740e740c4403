package testutil

// WithStandardWorkspace adds the standard fixture set used by UI and app
// tests: two installed engines and three projects, one of which is pinned
// to an engine that is not installed and one of which is a template.
func (b *Builder) WithStandardWorkspace() *Builder {
	return b.
		WithEngine("1.0.0").
		WithEngine("1.1.0").
		WithProject("shooter",
			Pinned("1.0.0"), Arguments("--fullscreen"), WithIcon(), WithBuildCache(3)).
		WithProject("puzzle",
			Pinned("2.0.0")).
		WithProject("base-template",
			Pinned("1.1.0"), Template())
}
