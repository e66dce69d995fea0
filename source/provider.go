/*
Package source supplies raw schedule datasets to the analysis engine.

PURPOSE:
  The engine only consumes an in-memory Dataset; where that table comes
  from is a provider concern. This package ships a local CSV provider and
  an HTTP provider for sheets exported to a document store. Swapping the
  original bulk-file fetch for another backend only requires a new
  Provider implementation.

SEE ALSO:
  - csv.go:  Local CSV files
  - http.go: Remote CSV over HTTP with bearer auth
*/
package source

import (
	"context"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

// Provider fetches one raw schedule dataset per call.
type Provider interface {
	Fetch(ctx context.Context) (schedule.Dataset, error)
}
