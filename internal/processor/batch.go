package processor

import (
	"context"
	"net/http"
	"sync"

	"github.com/woozymasta/geojson/internal/config"

	"github.com/rs/zerolog/log"
)

// DefaultConcurrency is used when a non-positive concurrency is requested.
const DefaultConcurrency = 4

type job struct {
	Doc   config.Document
	Index int
}

type result struct {
	Res   Result
	Index int
}

// ProcessAll runs ProcessDocument over docs with a fixed pool of workers and
// returns the results in input order. A failed document does not stop the
// others.
func ProcessAll(
	ctx context.Context,
	client *http.Client,
	docs []config.Document,
	outDir string,
	concurrency int,
	force bool,
) []Result {

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	jobs := make(chan job, len(docs))
	results := make(chan result, len(docs))

	go func() {
		for i, d := range docs {
			jobs <- job{Doc: d, Index: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					results <- result{Index: j.Index, Res: Result{Name: j.Doc.Name, Status: StatusFailed, Err: ctx.Err()}}
					continue
				}

				res, err := ProcessDocument(ctx, client, j.Doc, outDir, force)
				if err != nil {
					log.Error().
						Err(err).
						Str("document", j.Doc.Name).
						Msg("Failed to process document")
				}
				results <- result{Index: j.Index, Res: res}
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make([]Result, len(docs))
	for r := range results {
		out[r.Index] = r.Res
	}

	return out
}
