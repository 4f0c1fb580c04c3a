package interactions

import (
	"context"
	"log"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"tubewise/models"
)

type interactionWriter interface {
	RecordInteraction(ctx context.Context, videoID string, action models.Action) error
}

// Recorder sends interaction writes to the backend without waiting for them.
// Failures are logged and otherwise ignored: the card already shows the
// intended state and is never rolled back.
type Recorder struct {
	writer interactionWriter
	wg     conc.WaitGroup
}

// NewRecorder returns a recorder writing through w.
func NewRecorder(w interactionWriter) *Recorder {
	return &Recorder{writer: w}
}

// Record issues the write in the background. ctx only contributes values; its
// cancellation does not abort the write.
func (r *Recorder) Record(ctx context.Context, videoID string, action models.Action) {
	ctx = context.WithoutCancel(ctx)
	r.wg.Go(func() {
		var pc panics.Catcher
		pc.Try(func() {
			if err := r.writer.RecordInteraction(ctx, videoID, action); err != nil {
				log.Printf("[interactions] record %s for video %s failed: %v", action, videoID, err)
			}
		})
		if rec := pc.Recovered(); rec != nil {
			log.Printf("[interactions] record %s for video %s panicked: %v", action, videoID, rec.Value)
		}
	})
}

// Wait blocks until in-flight writes finish or ctx is done.
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
