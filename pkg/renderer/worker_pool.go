package renderer

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

var ErrTilePanic = errors.New("tile render panicked")

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int         // For deterministic ordering
	Image  *image.RGBA // Shared output image, each task writes only its tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	completed   atomic.Int64
}

// Worker handles individual tile rendering tasks. Each worker owns its
// BVH traversal stack.
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	scratch      *geometry.Scratch
	taskQueue    chan TileTask
	resultQueue  chan TileResult
	pool         *WorkerPool
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of tasks and results buffered at once.
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 1 {
		queueSize = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			tileRenderer: tileRenderer,
			scratch:      geometry.NewScratch(),
			taskQueue:    wp.taskQueue,
			resultQueue:  wp.resultQueue,
			pool:         wp,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of tasks finished so far, failed ones included
func (wp *WorkerPool) Completed() int {
	return int(wp.completed.Load())
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := w.render(task)
		w.pool.completed.Add(1)
		w.resultQueue <- result
	}
}

// render renders one tile, turning a panic into an error on the result
func (w *Worker) render(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Stats = RenderStats{}
			result.Error = fmt.Errorf("tile %d: %w: %v", task.Tile.ID, ErrTilePanic, r)
		}
	}()

	result.Stats = w.tileRenderer.RenderTile(task.Tile, task.Image, w.scratch)
	return result
}
