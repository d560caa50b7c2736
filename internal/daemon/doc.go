// Package daemon wires the watch monitor, admission filter, work
// queue, driver loop, and ledger into a single lifecycle with
// flock-based locking so only one hopperd runs per state directory.
package daemon
