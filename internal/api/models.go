package api

import "github.com/phrazzld/tasktracker/internal/domain"

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title    string `json:"title"    validate:"required"`
	Deadline string `json:"deadline" validate:"required"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Deadline:  task.Deadline,
		Completed: task.Completed,
	}
}

// tasksToResponse converts tasks to responses. The result is never nil.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
