// Package scheduler runs the periodic reminder check. Each cycle asks the
// task item store to complete everything that is due and hands every fired
// item to the notification worker pool.
package scheduler
