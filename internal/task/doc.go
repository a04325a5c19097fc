// Package task runs background jobs on a bounded queue drained by a pool of
// workers. The reminder scheduler uses it to deliver notifications outside the
// store's critical section.
package task
