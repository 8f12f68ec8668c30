package importer

import (
	"log/slog"
	"sync"

	"github.com/dtnitsch/wsi-tile-labeler/models"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/labelstats"
	"github.com/dtnitsch/wsi-tile-labeler/pkg/matcher"
)

// matchTiles labels every tile against the annotation set using a fixed
// worker pool. Workers claim tile indices, so each tile is written by exactly
// one goroutine; per-worker label counts are merged once the pool drains.
func matchTiles(logger *slog.Logger, m *matcher.Matcher, annotations []models.Annotation, tiles []*models.Tile, workerCount int) map[string]int {
	if workerCount < 1 {
		workerCount = 1
	}

	logger.Info("Starting concurrent matching phase", "annotation_count", len(annotations), "tile_count", len(tiles), "workers", workerCount, "overlap_threshold", m.Threshold())

	var wg sync.WaitGroup
	jobs := make(chan int, len(tiles))
	counts := make(chan map[string]int, workerCount)

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go matchWorker(w, logger, m, annotations, tiles, &wg, jobs, counts)
	}

	for i := range tiles {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(counts)
	logger.Info("All match workers finished")

	shards := make([]map[string]int, 0, workerCount)
	for shard := range counts {
		shards = append(shards, shard)
	}
	return labelstats.Merge(shards)
}

func matchWorker(id int, logger *slog.Logger, m *matcher.Matcher, annotations []models.Annotation, tiles []*models.Tile, wg *sync.WaitGroup, jobs <-chan int, counts chan<- map[string]int) {
	defer wg.Done()

	processed := 0
	local := make(map[string]int)
	for i := range jobs {
		m.MatchTile(annotations, tiles[i])
		local[tiles[i].Label]++
		processed++
	}

	logger.Debug("Match worker finished", "worker_id", id, "tiles_processed", processed)
	counts <- local
}
