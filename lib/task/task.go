// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package task

import "fmt"

// AssignedTask is a task instance placed on this worker by the
// scheduler.
type AssignedTask struct {
	// TaskID uniquely identifies this task instance.
	TaskID string `json:"task_id"`

	// Task is the task configuration from the job definition.
	Task TaskConfig `json:"task"`
}

// TaskConfig is the scheduler-supplied task configuration.
type TaskConfig struct {
	Job       Job       `json:"job"`
	Container Container `json:"container,omitempty"`
}

// Job identifies the job a task belongs to.
type Job struct {
	// Role is the job-level identity. It doubles as the default OS
	// account that owns the task's sandbox.
	Role string `json:"role"`

	// Environment is the deployment environment (devel, staging, prod).
	Environment string `json:"environment,omitempty"`

	// Name is the job name within the role/environment pair.
	Name string `json:"name,omitempty"`
}

// Container declares the task's execution environment. At most one of
// Mesos and Docker is set; both nil means the task runs directly on
// the host.
type Container struct {
	Mesos  *MesosContainer  `json:"mesos,omitempty"`
	Docker *DockerContainer `json:"docker,omitempty"`
}

// MesosContainer is the Mesos containerizer configuration. An empty
// Image means the task shares the host filesystem.
type MesosContainer struct {
	Image string `json:"image,omitempty"`
}

// DockerContainer is the Docker containerizer configuration.
type DockerContainer struct {
	Image string `json:"image"`
}

// IsDocker reports whether the task runs under the Docker
// containerizer.
func (c Container) IsDocker() bool {
	return c.Docker != nil
}

// HasImage reports whether the task runs under the Mesos containerizer
// from a filesystem image.
func (c Container) HasImage() bool {
	return c.Mesos != nil && c.Mesos.Image != ""
}

// Validate checks structural constraints on the descriptor.
func (a *AssignedTask) Validate() error {
	if a.TaskID == "" {
		return fmt.Errorf("task_id is required")
	}
	if a.Task.Container.Mesos != nil && a.Task.Container.Docker != nil {
		return fmt.Errorf("task %s: container declares both mesos and docker", a.TaskID)
	}
	if a.Task.Container.IsDocker() && a.Task.Container.Docker.Image == "" {
		return fmt.Errorf("task %s: docker container requires an image", a.TaskID)
	}
	return nil
}
