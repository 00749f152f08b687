package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

type JobKind string

const (
	JobKindReport JobKind = "report"
	JobKindJSON   JobKind = "json"
)

const finishedJobRetention = time.Hour

var (
	ErrExportQueueFull    = errors.New("export queue full")
	ErrExportWorkerClosed = errors.New("export worker closed")
	ErrExportJobNotFound  = errors.New("export job not found")
)

type FileExporter interface {
	ExportReport(ctx context.Context, dateRange DateRange, password string) (ExportFile, error)
	SaveJSON(ctx context.Context, dateRange DateRange) (ExportFile, error)
}

type ExportJob struct {
	ID         string      `json:"id"`
	Kind       JobKind     `json:"kind"`
	Status     JobStatus   `json:"status"`
	Period     string      `json:"period"`
	From       time.Time   `json:"from"`
	To         time.Time   `json:"to"`
	Encrypted  bool        `json:"encrypted"`
	File       *ExportFile `json:"file,omitempty"`
	Error      string      `json:"error,omitempty"`
	ErrorKind  ErrorKind   `json:"error_kind,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}

type ExportResult struct {
	JobID string
	File  ExportFile
	Err   error
}

type exportTask struct {
	id        string
	kind      JobKind
	dateRange DateRange
	password  string
	result    chan ExportResult
}

// ExportWorker runs exports on a fixed goroutine pool so callers never block
// on record queries, encryption or file writes.
type ExportWorker struct {
	exporter FileExporter
	queue    chan exportTask
	workers  int
	now      func() time.Time

	mu     sync.RWMutex
	jobs   map[string]*ExportJob
	closed bool

	wg sync.WaitGroup
}

func NewExportWorker(exporter FileExporter, workers int, queueSize int) *ExportWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 8
	}
	return &ExportWorker{
		exporter: exporter,
		queue:    make(chan exportTask, queueSize),
		now:      time.Now,
		jobs:     make(map[string]*ExportJob),
		workers:  workers,
	}
}

// Start launches the pool. When ctx is cancelled the worker stops accepting
// jobs and fails every queued one with ctx.Err().
func (worker *ExportWorker) Start(ctx context.Context) {
	for index := 0; index < worker.workers; index++ {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			for {
				select {
				case <-ctx.Done():
					worker.abandon(ctx.Err())
					return
				case task, ok := <-worker.queue:
					if !ok {
						return
					}
					worker.run(ctx, task)
				}
			}
		}()
	}
}

// abandon closes the queue if it is still open and fails what is left in it.
func (worker *ExportWorker) abandon(cause error) {
	worker.mu.Lock()
	if !worker.closed {
		worker.closed = true
		close(worker.queue)
	}
	worker.mu.Unlock()

	for task := range worker.queue {
		worker.finish(task, ExportFile{}, cause)
	}
}

func (worker *ExportWorker) SubmitReport(dateRange DateRange, password string) (string, <-chan ExportResult, error) {
	return worker.submit(JobKindReport, dateRange, password)
}

func (worker *ExportWorker) SubmitJSON(dateRange DateRange) (string, <-chan ExportResult, error) {
	return worker.submit(JobKindJSON, dateRange, "")
}

func (worker *ExportWorker) submit(kind JobKind, dateRange DateRange, password string) (string, <-chan ExportResult, error) {
	task := exportTask{
		id:        uuid.NewString(),
		kind:      kind,
		dateRange: dateRange,
		password:  password,
		result:    make(chan ExportResult, 1),
	}

	worker.mu.Lock()
	defer worker.mu.Unlock()
	if worker.closed {
		return "", nil, ErrExportWorkerClosed
	}
	worker.pruneLocked()

	select {
	case worker.queue <- task:
	default:
		return "", nil, ErrExportQueueFull
	}

	worker.jobs[task.id] = &ExportJob{
		ID:        task.id,
		Kind:      kind,
		Status:    JobQueued,
		Period:    dateRange.Period,
		From:      dateRange.From,
		To:        dateRange.To,
		Encrypted: password != "",
		CreatedAt: worker.now(),
	}
	return task.id, task.result, nil
}

func (worker *ExportWorker) run(ctx context.Context, task exportTask) {
	worker.update(task.id, func(job *ExportJob) {
		job.Status = JobRunning
	})

	var file ExportFile
	var err error
	switch task.kind {
	case JobKindJSON:
		file, err = worker.exporter.SaveJSON(ctx, task.dateRange)
	default:
		file, err = worker.exporter.ExportReport(ctx, task.dateRange, task.password)
	}

	worker.finish(task, file, err)
}

func (worker *ExportWorker) finish(task exportTask, file ExportFile, err error) {
	finishedAt := worker.now()
	worker.update(task.id, func(job *ExportJob) {
		job.FinishedAt = &finishedAt
		if err != nil {
			job.Status = JobFailed
			job.Error = err.Error()
			job.ErrorKind = KindOf(err)
			return
		}
		job.Status = JobDone
		job.File = &file
	})

	if err != nil {
		log.Printf("exports: job %s (%s) failed: %v", task.id, task.kind, err)
	}
	task.result <- ExportResult{JobID: task.id, File: file, Err: err}
	close(task.result)
}

func (worker *ExportWorker) update(id string, apply func(job *ExportJob)) {
	worker.mu.Lock()
	defer worker.mu.Unlock()
	if job, ok := worker.jobs[id]; ok {
		apply(job)
	}
}

// Job returns a snapshot of the job state.
func (worker *ExportWorker) Job(id string) (ExportJob, bool) {
	worker.mu.RLock()
	defer worker.mu.RUnlock()
	job, ok := worker.jobs[id]
	if !ok {
		return ExportJob{}, false
	}
	snapshot := *job
	if job.File != nil {
		file := *job.File
		snapshot.File = &file
	}
	return snapshot, true
}

func (worker *ExportWorker) pruneLocked() {
	cutoff := worker.now().Add(-finishedJobRetention)
	for id, job := range worker.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(worker.jobs, id)
		}
	}
}

// Close stops accepting jobs and waits for queued ones to finish. Jobs no
// worker picked up fail with ErrExportWorkerClosed.
func (worker *ExportWorker) Close() {
	worker.mu.Lock()
	if worker.closed {
		worker.mu.Unlock()
		worker.wg.Wait()
		return
	}
	worker.closed = true
	close(worker.queue)
	worker.mu.Unlock()

	worker.wg.Wait()
	for task := range worker.queue {
		worker.finish(task, ExportFile{}, ErrExportWorkerClosed)
	}
}
