// internal/services/progress_service.go
package services

import (
	"fmt"
	"sync"
	"time"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ProgressUpdate is one progress notification of a generation task.
type ProgressUpdate struct {
	Stage    string `json:"stage"`
	Progress int    `json:"progress"` // 0-100
	Message  string `json:"message"`
	Status   string `json:"status"`
}

// ProgressTracker follows a single long running task.
type ProgressTracker struct {
	TaskID      string
	Stage       string
	Progress    int
	Message     string
	Status      string
	StartTime   time.Time
	UpdateTime  time.Time
	Subscribers map[chan ProgressUpdate]bool
	Done        chan struct{}
	mutex       sync.Mutex
}

// ProgressService keeps the trackers of running and recently finished tasks.
type ProgressService struct {
	trackers map[string]*ProgressTracker
	mutex    sync.RWMutex
}

func NewProgressService() *ProgressService {
	return &ProgressService{
		trackers: make(map[string]*ProgressTracker),
	}
}

// CreateTracker returns the tracker for taskID, creating it when needed.
func (s *ProgressService) CreateTracker(taskID string) *ProgressTracker {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if tracker, exists := s.trackers[taskID]; exists {
		return tracker
	}

	now := time.Now()
	tracker := &ProgressTracker{
		TaskID:      taskID,
		Stage:       "queued",
		Message:     "task queued",
		Status:      StatusRunning,
		StartTime:   now,
		UpdateTime:  now,
		Subscribers: make(map[chan ProgressUpdate]bool),
		Done:        make(chan struct{}),
	}
	s.trackers[taskID] = tracker
	return tracker
}

func (s *ProgressService) GetTracker(taskID string) (*ProgressTracker, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tracker, exists := s.trackers[taskID]
	return tracker, exists
}

// RemoveTracker forgets taskID. Subscribers keep their channels until they
// unsubscribe.
func (s *ProgressService) RemoveTracker(taskID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.trackers, taskID)
}

// Len returns the number of trackers held, finished ones included.
func (s *ProgressService) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.trackers)
}

// ActiveCount returns the number of trackers still running.
func (s *ProgressService) ActiveCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, tracker := range s.trackers {
		tracker.mutex.Lock()
		if tracker.Status == StatusRunning {
			count++
		}
		tracker.mutex.Unlock()
	}
	return count
}

// CleanupCompletedTasks drops finished trackers older than maxAge.
func (s *ProgressService) CleanupCompletedTasks(maxAge time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for id, tracker := range s.trackers {
		tracker.mutex.Lock()
		finished := tracker.Status != StatusRunning
		old := now.Sub(tracker.UpdateTime) > maxAge
		tracker.mutex.Unlock()

		if finished && old {
			delete(s.trackers, id)
		}
	}
}

// Report moves the tracker to a new stage. Progress never goes backwards.
// It has the ProgressFunc signature so it can be handed to the pipeline.
func (t *ProgressTracker) Report(stage string, progress int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.Status != StatusRunning {
		return
	}
	if progress > t.Progress {
		t.Progress = progress
	}
	t.Stage = stage
	t.Message = stage
	t.UpdateTime = time.Now()
	t.notify()
}

// Complete marks the task as finished.
func (t *ProgressTracker) Complete(message string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.Status != StatusRunning {
		return
	}
	t.Progress = 100
	t.Stage = "done"
	t.Message = message
	if t.Message == "" {
		t.Message = "task completed"
	}
	t.Status = StatusCompleted
	t.UpdateTime = time.Now()
	t.notify()
	close(t.Done)
}

// Fail marks the task as failed.
func (t *ProgressTracker) Fail(errorMsg string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.Status != StatusRunning {
		return
	}
	t.Message = fmt.Sprintf("task failed: %s", errorMsg)
	t.Status = StatusFailed
	t.UpdateTime = time.Now()
	t.notify()
	close(t.Done)
}

// Subscribe returns a channel receiving every update, starting with the
// current state.
func (t *ProgressTracker) Subscribe() chan ProgressUpdate {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subscriber := make(chan ProgressUpdate, 10)
	t.Subscribers[subscriber] = true
	subscriber <- t.snapshot()
	return subscriber
}

func (t *ProgressTracker) Unsubscribe(subscriber chan ProgressUpdate) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.Subscribers[subscriber]; !ok {
		return
	}
	delete(t.Subscribers, subscriber)
	close(subscriber)
}

func (t *ProgressTracker) snapshot() ProgressUpdate {
	return ProgressUpdate{
		Stage:    t.Stage,
		Progress: t.Progress,
		Message:  t.Message,
		Status:   t.Status,
	}
}

// notify must be called with the mutex held. Slow subscribers miss updates
// instead of blocking the task.
func (t *ProgressTracker) notify() {
	update := t.snapshot()
	for subscriber := range t.Subscribers {
		select {
		case subscriber <- update:
		default:
		}
	}
}
