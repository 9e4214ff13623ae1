// Package pipeline fans batch design jobs out to a bounded worker pool and
// hands each finished job to a visit callback on a single goroutine.
//
// The only contract to implement is Designer. This keeps the pipeline
// swappable and testable.
package pipeline
