package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetcare-booking/internal/domain/entity"
	"vetcare-booking/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotHeld is returned when another booking already holds the slot.
var ErrSlotHeld = errors.New("slot is already held")

// moveHoldScript atomically moves a hold from the old slot key to the new one.
// Fails without touching anything when the target slot is already held.
var moveHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[2]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
	redis.call('DEL', KEYS[1])
	return 1
`)

const (
	// Redis key prefix for per-slot booking holds
	slotHoldKeyPrefix = "turno:hold:"

	// Batch size for the startup warm-up query
	warmupBatchSize = 500
)

// SlotReservationService guards the read-then-write gap between availability
// checks and turno inserts. The database stays the source of truth; redis
// holds one key per (fecha, hora) slot so that two submissions racing for the
// same slot cannot both commit. Holds expire on their own the day after the
// visit.
type SlotReservationService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	turnoRepo   repository.AppointmentRepository
}

func NewSlotReservationService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, turnoRepo repository.AppointmentRepository) *SlotReservationService {
	return &SlotReservationService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		turnoRepo:   turnoRepo,
	}
}

// Reserve places an exclusive hold on the slot. Returns ErrSlotHeld when the
// slot is already taken by a concurrent booking.
func (s *SlotReservationService) Reserve(ctx context.Context, fecha time.Time, hora string, holder string) error {
	key := slotHoldKey(fecha, hora)
	ttl := holdTTL(fecha)

	ok, err := s.redisClient.SetNX(ctx, key, holder, ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to reserve slot %s: %+v", key, err)
		return fmt.Errorf("reserve slot %s: %w", key, err)
	}
	if !ok {
		return ErrSlotHeld
	}

	s.log.Debugf("Reserved slot %s for %s", key, holder)
	return nil
}

// Release frees a hold after a cancellation, deletion, or a failed insert
// (compensation). Releasing an absent hold is a no-op.
func (s *SlotReservationService) Release(ctx context.Context, fecha time.Time, hora string) error {
	key := slotHoldKey(fecha, hora)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}
	s.log.Debugf("Released slot %s", key)
	return nil
}

// Move transfers a hold to a new slot in one atomic step, for admin
// reschedules. Returns ErrSlotHeld when the target slot is taken.
func (s *SlotReservationService) Move(ctx context.Context, oldFecha time.Time, oldHora string, newFecha time.Time, newHora string, holder string) error {
	oldKey := slotHoldKey(oldFecha, oldHora)
	newKey := slotHoldKey(newFecha, newHora)
	ttl := holdTTL(newFecha)

	result, err := moveHoldScript.Run(ctx, s.redisClient, []string{oldKey, newKey}, holder, ttl.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed to move hold %s -> %s: %+v", oldKey, newKey, err)
		return fmt.Errorf("move hold %s to %s: %w", oldKey, newKey, err)
	}
	if result == 0 {
		return ErrSlotHeld
	}

	s.log.Debugf("Moved hold %s -> %s", oldKey, newKey)
	return nil
}

// WarmUp rebuilds the hold keys from the database for every future
// non-cancelled turno. Should run before accepting traffic, so a redis
// restart cannot open slots that are already booked.
func (s *SlotReservationService) WarmUp(ctx context.Context) error {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping slot warm-up: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	startTime := time.Now()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	turnos, err := s.turnoRepo.FindActiveFromFecha(s.db.WithContext(ctx), today)
	if err != nil {
		return fmt.Errorf("query future turnos: %w", err)
	}

	total := 0
	for start := 0; start < len(turnos); start += warmupBatchSize {
		end := start + warmupBatchSize
		if end > len(turnos) {
			end = len(turnos)
		}

		// New pipeline per batch to bound memory
		pipe := s.redisClient.TxPipeline()
		for _, t := range turnos[start:end] {
			pipe.Set(ctx, slotHoldKey(t.Fecha, t.Hora), t.ID.String(), holdTTL(t.Fecha))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("warm-up pipeline exec: %w", err)
		}
		total += end - start

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot warm-up completed: %d holds rebuilt in %v", total, time.Since(startTime))
	return nil
}

func slotHoldKey(fecha time.Time, hora string) string {
	return fmt.Sprintf("%s%s:%s", slotHoldKeyPrefix, entity.DateKey(fecha), hora)
}

// holdTTL keeps the hold until 24 hours after the visit date.
func holdTTL(fecha time.Time) time.Duration {
	expireAt := fecha.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return 1 * time.Minute
	}
	return ttl
}
