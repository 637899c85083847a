package model

// TaskStatus is the lifecycle state of a conversion. A task moves from
// Pending through Checking (ffmpeg decode probe) and Converting to one of
// Completed, Error or Stopped. Stopping sits between a user cancel and the
// subprocess exiting.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusChecking   TaskStatus = "Checking"
	TaskStatusConverting TaskStatus = "Converting"
	TaskStatusStopping   TaskStatus = "Stopping"
	TaskStatusStopped    TaskStatus = "Stopped"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusError      TaskStatus = "Error"
)

func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether ffmpeg work may still be running for the task:
// preflight, a conversion step, or a pending cancel.
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusChecking, TaskStatusConverting, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished reports whether the task reached a final state. Finished tasks
// never change again.
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusCompleted, TaskStatusStopped, TaskStatusError:
		return true
	}
	return false
}
