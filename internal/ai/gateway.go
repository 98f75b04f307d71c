package ai

import (
	"context"
	"fmt"
)

// Task selects what the gateway is asked to extract.
type Task string

const (
	// TaskJob extracts required skills and required years of experience.
	TaskJob Task = "job"
	// TaskResume extracts skills and total years of experience.
	TaskResume Task = "resume"
)

func (t Task) Validate() error {
	switch t {
	case TaskJob, TaskResume:
		return nil
	default:
		return fmt.Errorf("unknown extraction task %q", string(t))
	}
}

type Request struct {
	Task Task
	Text string
}

// Gateway converts raw text into a structured extraction payload.
//
// The returned string is the provider's raw answer. It is expected to hold a
// JSON object with "skills" and "experience_years" but callers must not trust it.
type Gateway interface {
	Extract(ctx context.Context, req Request) (string, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, req Request) (string, error)

func (f GatewayFunc) Extract(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
