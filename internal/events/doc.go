// Package events provides a small in-process publish/subscribe layer.
//
// Services emit events without knowing which handlers will process them.
// The reminder service emits task.added and task.updated; the notification
// worker emits reminder.fired, which the console and the HTTP server's
// event log consume.
//
// The primary components are:
// - Event: a typed, JSON-encoded message with a unique id
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
