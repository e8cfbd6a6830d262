// Package dataset exposes the public contracts for loading provider entries:
// the Source abstraction, the Loader interface, and the errors loaders return.
// The implementation lives under internal/dataset/loader so the YAML decoder
// stays an implementation detail.
package dataset
