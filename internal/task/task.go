// Package task is the demo domain: shell commands declared in the config
// file, executed on demand. Execution happens off the UI loop; the TUI wraps
// Run in a command and receives the outcome as an addressed message.
package task

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"canopy/internal/config"
	"canopy/internal/logger"
)

// Task is a runnable command with a stable ID. IDs are the task's position
// in the config file, so they survive re-loads as long as the list order does.
type Task struct {
	ID      int
	Name    string
	Command string
	Args    []string
}

// String returns the full command line for display.
func (t Task) String() string {
	if len(t.Args) == 0 {
		return t.Command
	}
	return t.Command + " " + strings.Join(t.Args, " ")
}

// FromConfig builds the task list from the loaded configuration.
func FromConfig(conf config.AppConfig) []Task {
	tasks := make([]Task, 0, len(conf.Tasks))
	for i, tc := range conf.Tasks {
		if tc.Command == "" {
			continue
		}
		name := tc.Name
		if name == "" {
			name = tc.Command
		}
		tasks = append(tasks, Task{ID: i, Name: name, Command: tc.Command, Args: tc.Args})
	}
	return tasks
}

// Result is the outcome of a single run.
type Result struct {
	Output   string
	Err      error
	Duration time.Duration
}

// Timeout bounds a single task run. Long-running work should not be able to
// hold a worker goroutine forever.
const Timeout = 30 * time.Second

// Run executes the task and captures combined output. It blocks, so it must
// never be called from the UI loop directly.
func Run(ctx context.Context, t Task) Result {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	logger.Info(ctx, "running task %q: %s", t.Name, t.String())

	start := time.Now()
	cmd := exec.CommandContext(ctx, t.Command, t.Args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("timed out after %s", Timeout)
	}
	if err != nil {
		logger.Warn(ctx, "task %q failed after %s: %v", t.Name, elapsed, err)
	} else {
		logger.Debug(ctx, "task %q finished in %s", t.Name, elapsed)
	}

	return Result{Output: buf.String(), Err: err, Duration: elapsed}
}
