package task

import (
	"sync"

	"canopy/internal/config"
)

// Source is the live task registry shared by every component that resolves
// tasks. A config reload replaces its contents, so makers and cached
// components always see the current definitions rather than the slice built
// at startup.
//
// Update is called from the config watcher goroutine while the UI loop reads,
// hence the lock.
type Source struct {
	mu    sync.RWMutex
	tasks []Task
}

// NewSource builds a source from the loaded configuration.
func NewSource(conf config.AppConfig) *Source {
	return &Source{tasks: FromConfig(conf)}
}

// Update replaces the task definitions with those of conf.
func (s *Source) Update(conf config.AppConfig) {
	tasks := FromConfig(conf)
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

// All returns a copy of the current task list.
func (s *Source) All() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Get returns the current definition of the task with the given ID.
func (s *Source) Get(id int) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
