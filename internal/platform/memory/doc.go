// Package memory implements the store interfaces with process-local,
// mutex-guarded state. Nothing survives a restart.
package memory
