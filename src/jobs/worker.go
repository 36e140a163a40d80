package jobs

import (
	"log"

	"github.com/Adribv/Placement-Site-Backend/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq worker loop. It blocks, so call it from a
// goroutine; it is a no-op when Redis is not configured.
func StartWorker() {
	if database.RedisURI == "" {
		log.Println("Redis not configured, background worker disabled")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBackfillProgress, HandleBackfillProgressTask)

	if err := srv.Run(mux); err != nil {
		log.Println("worker stopped:", err)
	}
}

// EnqueueBackfillProgress schedules a backfill run, silently skipping when
// the broker is unavailable.
func EnqueueBackfillProgress(moduleID string) {
	if database.AsynqClient == nil {
		return
	}
	task, err := NewBackfillProgressTask(moduleID)
	if err != nil {
		log.Println("failed to build backfill task:", err)
		return
	}
	if _, err := database.AsynqClient.Enqueue(task); err != nil {
		log.Println("failed to enqueue backfill task:", err)
	}
}
