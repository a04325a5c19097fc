// Package service contains the application use cases shared by the console
// and the HTTP API. It orchestrates the task item store (internal/store), the
// reminder scheduler and the event emitter, and translates store errors into
// service-level sentinels that the delivery layers map to user-facing
// responses.
//
// The service layer depends on domain entities and store interfaces, but
// never on a specific store implementation.
package service
