// Package workers runs the background jobs of the API server.
//
// A Worker is started once with Run and stopped with Stop. Workers groups
// them so cmd/server can manage all background jobs as one unit.
package workers

import "context"

// Worker is a background job.
//
// Run starts the job and returns immediately. Stop prevents new executions
// and waits for a running one until ctx expires.
type Worker interface {
	Run()
	Stop(ctx context.Context) error
}
