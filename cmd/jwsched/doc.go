// Package main hosts the jwsched CLI entrypoint and command graph.
//
// The Cobra-based command tree parses publication files into schedule
// results, lists enhanced-parsing languages, and scaffolds configuration.
// It centralizes configuration resolution and logging setup so subcommands
// can focus on output shape.
//
// Keep this package lean: extraction logic belongs in the internal
// packages; commands only translate flags into parser options and render
// results.
package main
