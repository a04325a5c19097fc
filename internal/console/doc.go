// Package console implements the interactive text menu for tickler.
//
// The menu reads line-oriented input from any io.Reader and writes to any
// io.Writer, so it runs against a terminal in production and against
// strings in tests. Invalid input re-prompts rather than aborting.
package console
