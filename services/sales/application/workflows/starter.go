package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
)

// Started identifies a workflow execution started by Starter.
type Started struct {
	WorkflowID string
	RunID      string
}

// Starter launches SeedWorkflow executions and queries their progress.
type Starter struct {
	client    client.Client
	taskQueue string
}

func NewStarter(c client.Client, taskQueue string) *Starter {
	return &Starter{client: c, taskQueue: taskQueue}
}

// Start returns ErrSeedRunInProgress while another pipeline is running.
func (s *Starter) Start(ctx context.Context, in SeedInput) (*Started, error) {
	opts := client.StartWorkflowOptions{ID: SeedWorkflowID, TaskQueue: s.taskQueue}
	opts.WorkflowExecutionErrorWhenAlreadyStarted = true

	run, err := s.client.ExecuteWorkflow(ctx, opts, SeedWorkflow, in)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			return nil, salesdomain.ErrSeedRunInProgress
		}
		return nil, fmt.Errorf("start seed workflow: %w", err)
	}
	return &Started{WorkflowID: run.GetID(), RunID: run.GetRunID()}, nil
}

// Progress queries the latest pipeline execution. It returns nil, nil when
// no execution exists.
func (s *Starter) Progress(ctx context.Context) (*Progress, error) {
	val, err := s.client.QueryWorkflow(ctx, SeedWorkflowID, "", ProgressQuery)
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query seed workflow: %w", err)
	}
	var p Progress
	if err := val.Get(&p); err != nil {
		return nil, fmt.Errorf("decode seed workflow progress: %w", err)
	}
	return &p, nil
}
