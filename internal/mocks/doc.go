// Package mocks provides function-field test doubles for the service
// interfaces used by the HTTP layer.
package mocks
