// Package worker contains the claim/process/account loop: the
// processor that simulates an order's work by sleeping, the statistics
// tracker with its rolling window, and the driver that ties dequeue,
// claim, processing, accounting, and cleanup together.
package worker
