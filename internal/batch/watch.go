package batch

import (
	"context"

	"github.com/nguyentantai21042004/textify/internal/document"
	"github.com/nguyentantai21042004/textify/internal/files"
	"github.com/nguyentantai21042004/textify/internal/watcher"
)

// HandleEvent re-checks eligibility for the event's path and runs the
// matching pipeline. Already marked files fall out at the eligibility check,
// which absorbs duplicate notifications.
func (r *implRunner) HandleEvent(ctx context.Context, ev watcher.Event) {
	eligible, err := files.Eligible(ctx, files.Source{Files: []string{ev.Path}}, r.cfg.Input.Verbose, r.logger)
	if err != nil {
		r.logger.Error(ctx, "Failed to check %s: %v", ev.Path, err)
		return
	}
	if len(eligible) == 0 {
		return
	}

	av, docs := files.Categorize(eligible)
	r.addStats(Stats{Eligible: len(eligible), AudioVideo: len(av), Documents: len(docs)})

	if len(av) > 0 {
		model, err := r.ensureModel(ctx)
		if err != nil {
			r.logger.Error(ctx, "%v", err)
		} else {
			r.addMedia(r.media.Process(ctx, model, av, r.mediaOptions()))
		}
	}
	if len(docs) > 0 {
		r.addDocuments(r.documents.Process(ctx, docs, document.Options{}))
	}
}
