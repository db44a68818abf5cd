package engine

import (
	"context"

	"github.com/cbodonnell/sceneflow/pkg/log"
)

// Loadable is a scene the engine prepares in the background.
type Loadable interface {
	ID() string
	// Prepare loads the scene's resources. It runs on a loader goroutine.
	Prepare() error
	// MarkReady signals the outcome of Prepare to anyone waiting on the scene.
	MarkReady(err error)
}

type LoaderWorker struct {
	jobs <-chan Loadable
}

// NewLoaderWorker creates a worker that prepares queued scenes one at a time.
func NewLoaderWorker(jobs <-chan Loadable) *LoaderWorker {
	return &LoaderWorker{
		jobs: jobs,
	}
}

func (w *LoaderWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case l, ok := <-w.jobs:
			if !ok {
				return
			}
			w.prepare(l)
		}
	}
}

func (w *LoaderWorker) prepare(l Loadable) {
	log.Trace("Preparing scene %s", l.ID())
	err := l.Prepare()
	if err != nil {
		log.Error("Failed to prepare scene %s: %v", l.ID(), err)
	}
	l.MarkReady(err)
}
