package event

import "time"

// EventSchemaVersion is stamped on every event; bump it when a payload changes shape
const EventSchemaVersion = "1.0"

const (
	// RetryQueueBufferSize bounds events waiting for another delivery attempt.
	// Overflow goes straight to the dead-letter file.
	RetryQueueBufferSize = 256

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay = time.Minute

	DeadLetterFilePermissions = 0644
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "%d handler(s) failed for %s: %v"
)

// CalculateRetryDelay doubles baseDelay per attempt (attempt 1 waits baseDelay)
// and never exceeds MaxRetryDelay.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return delay
}
