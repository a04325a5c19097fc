// Package store defines interfaces for task item storage.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so the reminder scheduler and the front ends
// depend only on the locking contract described here.
package store
