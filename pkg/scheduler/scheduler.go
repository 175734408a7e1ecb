package scheduler

import (
	"context"
)

// JobKind discriminates the payloads travelling through the settlement queue.
type JobKind string

const (
	// JobSettleCharge fans out the deferred splits of a paid closing charge.
	JobSettleCharge JobKind = "settle_charge"

	// JobSweepStaleWithdrawals reconciles withdrawals stuck in processing.
	JobSweepStaleWithdrawals JobKind = "sweep_stale_withdrawals"
)

// Job is the unit of asynchronous work. Exactly one of the optional fields is
// set, according to Kind.
type Job struct {
	Kind     JobKind `json:"kind"`
	ChargeID string  `json:"charge_id,omitempty"`
	DriverID string  `json:"driver_id,omitempty"`
}

// Scheduler defines the interface for a component that enqueues settlement
// work for asynchronous processing.
type Scheduler interface {
	// ScheduleJob enqueues a job for asynchronous processing.
	ScheduleJob(ctx context.Context, job *Job) error
}
