package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobDropped = "Worker pool stopped, job dropped"
	LogMsgWorkerPoolStart  = "Worker pool started"
	LogMsgWorkerPoolStop   = "Worker pool stopped"
)

// ============================================================================
// Log Messages - Session Purge Job
// ============================================================================

const (
	LogMsgSessionPurgeStarting  = "Session purge starting"
	LogMsgSessionPurgeCompleted = "Session purge completed"
	LogMsgSessionPurgeFailed    = "Session purge failed"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
