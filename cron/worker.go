package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"reservo/config"
	"reservo/database/repository"
	"reservo/models"
)

const TypeBookingExpire = "booking:expire"

// ExpirePayload identifies the payment-pending booking to re-check.
type ExpirePayload struct {
	BookingID string `json:"bookingId"`
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Scheduler enqueues deferred expiry checks for payment-pending bookings.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler() *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpt())}
}

// ScheduleExpiry queues an expiry task that fires after the reservation window.
func (s *Scheduler) ScheduleExpiry(bookingID string, delay time.Duration) error {
	payload, err := json.Marshal(ExpirePayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingExpire, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(delay))
	return err
}

// reclaimStaleHolds expires payment-pending bookings whose reservation
// window already lapsed but whose expiry task never fired, e.g. after a
// queue flush or a restart. Runs once on worker start; per-booking tasks
// handle the steady state.
func reclaimStaleHolds(repo repository.BookingRepository, reservationTTL time.Duration) {
	cutoff := time.Now().Add(-reservationTTL).Unix()
	stale, err := repo.ListPendingPaymentBefore(cutoff)
	if err != nil {
		log.Printf("[ExpiryWorker] startup sweep failed: %v", err)
		return
	}
	for _, b := range stale {
		if err := repo.UpdateStatus(b.ID, models.BookingExpired, models.PaymentFailed); err != nil {
			log.Printf("[ExpiryWorker] failed to expire stale hold %s: %v", b.ID, err)
			continue
		}
		log.Printf("[ExpiryWorker] reclaimed stale hold %s", b.ID)
	}
}

// InitExpiryWorker runs the async worker in background. Bookings still
// awaiting payment when their task fires are flipped to EXPIRED/FAILED;
// anything already paid or cancelled is left alone.
func InitExpiryWorker(repo repository.BookingRepository) {
	reclaimStaleHolds(repo, time.Duration(config.AppConfig.PaymentReservationMinutes)*time.Minute)

	srv := asynq.NewServer(
		redisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(repo))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(repo repository.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}

		booking, err := repo.GetByID(p.BookingID)
		if err != nil {
			log.Printf("[ExpiryWorker] booking %s not found: %v", p.BookingID, err)
			return err
		}
		if booking.Status != models.BookingPendingPayment {
			return nil
		}

		log.Printf("[ExpiryWorker] reservation %s expired without payment", p.BookingID)
		return repo.UpdateStatus(p.BookingID, models.BookingExpired, models.PaymentFailed)
	}
}
