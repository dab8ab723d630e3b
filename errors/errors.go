package errors

import "fmt"

var (
	ErrUtteranceTooShort = fmt.Errorf("message is too short")
	ErrUtteranceTooLong  = fmt.Errorf("message is too long")
	ErrSendInFlight      = fmt.Errorf("a message is already being sent")
	ErrNothingToRetry    = fmt.Errorf("no failed message to retry")
)
