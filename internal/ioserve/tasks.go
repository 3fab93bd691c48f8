package ioserve

import (
	"sync"

	"github.com/rbhughes/purr-petra/pkg/petra"
)

// memTaskStore implements petra.TaskStore with a mutex-guarded map.
// Tasks live for the process lifetime; the API has no task GC.
type memTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*petra.Task
}

// NewTaskStore creates an in-memory task store.
func NewTaskStore() petra.TaskStore {
	return &memTaskStore{tasks: make(map[string]*petra.Task)}
}

func (s *memTaskStore) Put(task *petra.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *task
	s.tasks[task.ID] = &clone
}

func (s *memTaskStore) Get(id string) (*petra.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	clone := *task
	return &clone, true
}

func (s *memTaskStore) SetStatus(id string, status petra.TaskStatus, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok {
		task.Status = status
		if message != "" {
			task.Message = message
		}
	}
}
