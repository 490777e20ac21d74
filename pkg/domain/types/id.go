package types

import "github.com/google/uuid"

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x RequestID) String() string {
	return string(x)
}

// RunID correlates all artifacts of one pipeline invocation: logs, the fix
// branch, the audit record and the change request.
type RunID string

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}

// Short returns the leading segment of the run ID, used as a branch name
// suffix where the full UUID would be noise.
func (x RunID) Short() string {
	if len(x) < 8 {
		return string(x)
	}
	return string(x[:8])
}
