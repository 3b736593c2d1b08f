package sweeper

import (
	"log"
	"sync"
	"time"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
)

const (
	DefaultInterval        = time.Minute
	DefaultRetentionWindow = 24 * time.Hour
)

// Sweeper periodically soft-deletes tasks that have sat in the done status
// beyond the retention window. It runs as a privileged system process with
// no caller identity and is owned by the process lifecycle: started on boot,
// stopped on shutdown.
type Sweeper struct {
	taskRepo  repository.TaskRepository
	interval  time.Duration
	retention time.Duration
	stop      chan struct{}
	wg        sync.WaitGroup
}

// New creates a Sweeper. Non-positive durations fall back to the defaults.
func New(taskRepo repository.TaskRepository, interval, retention time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if retention <= 0 {
		retention = DefaultRetentionWindow
	}
	return &Sweeper{
		taskRepo:  taskRepo,
		interval:  interval,
		retention: retention,
		stop:      make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop halts the sweep loop and waits for it to exit. Must be called at
// most once.
func (s *Sweeper) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	log.Printf("retention sweeper started (interval %s, retention %s)", s.interval, s.retention)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce()
		case <-s.stop:
			log.Println("retention sweeper stopped")
			return
		}
	}
}

// SweepOnce performs a single sweep tick. Done tasks whose recorded done
// timestamp is older than the retention window are marked soft-deleted; done
// tasks without a recorded done timestamp are never swept. Failures are
// logged and end the tick; the next tick retries from scratch, and
// re-marking an already soft-deleted task is a no-op in effect.
func (s *Sweeper) SweepOnce() {
	tasks, err := s.taskRepo.ListByStatus(models.TaskStatusDone)
	if err != nil {
		log.Printf("sweeper: failed to list done tasks: %v", err)
		return
	}

	now := time.Now()
	for _, task := range tasks {
		if task.DoneAt == nil {
			continue
		}
		if now.Sub(*task.DoneAt) <= s.retention {
			continue
		}

		err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{
			"is_deleted": true,
		})
		if err != nil {
			log.Printf("sweeper: failed to soft delete task %d: %v", task.ID, err)
			return
		}
	}
}
