// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tdo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Like the real backend, the task list is kept newest-first.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64

	email    string
	password string
	token    string

	// Calls records method names in invocation order, so tests can assert
	// that an operation never reached the service.
	Calls []string

	// Error injection for testing
	LoginErr  error
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeService creates an empty FakeService that accepts any credentials
// and issues "test-token".
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1, token: "test-token"}
}

// SetCredentials restricts Login to the given credential pair.
func (f *FakeService) SetCredentials(email, password, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
	f.password = password
	f.token = token
}

// AddTask seeds a task and returns it with its assigned id.
func (f *FakeService) AddTask(title string, completed bool, priority service.Priority) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	task := service.Task{
		ID:        f.nextID,
		Title:     title,
		Completed: completed,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.nextID++
	f.tasks = append([]service.Task{task}, f.tasks...)
	return task
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (string, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.email != "" && (email != f.email || password != f.password) {
		return "", fmt.Errorf("%w: Incorrect email or password", service.ErrLoginFailed)
	}
	return f.token, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	priority := draft.Priority
	if priority == "" {
		priority = service.PriorityMedium
	}
	now := time.Now().UTC()
	task := service.Task{
		ID:          f.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    priority,
		DueDate:     draft.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.nextID++
	f.tasks = append([]service.Task{task}, f.tasks...)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		if patch.Priority != nil {
			f.tasks[i].Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			f.tasks[i].DueDate = patch.DueDate
		}
		f.tasks[i].UpdatedAt = time.Now().UTC()
		return f.tasks[i], nil
	}
	return service.Task{}, fmt.Errorf("%w: server returned 404 Not Found", service.ErrUpdateFailed)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: server returned 404 Not Found", service.ErrDeleteFailed)
}
