package worker

import (
	"context"
	"time"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/application/applicationsrv"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

// AnalysisWorker drains the analysis queue in the background.
type AnalysisWorker struct {
	service *applicationsrv.Service
	queue   application.AnalysisQueue
	workers int
}

func NewAnalysisWorker(service *applicationsrv.Service, queue application.AnalysisQueue, workers int) *AnalysisWorker {
	return &AnalysisWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *AnalysisWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d analysis workers", w.workers)

	// Start delayed job mover
	go w.moveDelayedJobs(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *AnalysisWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Nil data means the blocking pop timed out with nothing queued
			if len(data) == 0 {
				continue
			}

			logx.Infof("Worker %d processing analysis job", workerID)
			if err := w.service.ProcessAnalysisJob(ctx, data); err != nil {
				logx.Errorf("Worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *AnalysisWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
