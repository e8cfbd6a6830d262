// Package orchestrator wires the build pipeline: ensure the build directory,
// load the template, load the data entries, aggregate them by provider, then
// render and write the output document. Each stage is injectable.
package orchestrator
