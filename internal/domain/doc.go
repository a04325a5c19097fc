// Package domain contains the core entities of the reminder tracker: task
// items, priorities and the reminder time format. It is independent of any
// storage, transport or scheduling mechanism.
package domain
