// Package infra contains technical adapters such as artifact decoders,
// metrics exporters and the logger. These packages should depend only on
// the interfaces defined in the core packages.
package infra
