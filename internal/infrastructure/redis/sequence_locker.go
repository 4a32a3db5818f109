package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appdocument "github.com/jhoicas/stockflow-api/internal/application/document"
)

var _ appdocument.SequenceLocker = (*SequenceLocker)(nil)

// ErrLockNotObtained el lock sigue tomado por otro proceso tras agotar la espera.
var ErrLockNotObtained = errors.New("lock de numeración no obtenido")

// SequenceLocker implementa el lock de numeración con redislock.
// Espera como máximo wait reintentando cada 25ms; si no lo obtiene, el llamador sigue sin lock.
type SequenceLocker struct {
	locker *redislock.Client
	wait   time.Duration
	log    zerolog.Logger
}

// NewSequenceLocker construye el locker sobre un cliente ya conectado.
func NewSequenceLocker(client goredis.UniversalClient, wait time.Duration, log zerolog.Logger) *SequenceLocker {
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &SequenceLocker{locker: redislock.New(client), wait: wait, log: log}
}

// Acquire obtiene el lock key con el TTL dado. release libera con un contexto propio para
// no depender del contexto del request, que puede estar cancelado.
func (s *SequenceLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()

	lock, err := s.locker.Obtain(waitCtx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(25 * time.Millisecond),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}

	return func() {
		relCtx, relCancel := context.WithTimeout(context.Background(), time.Second)
		defer relCancel()
		if err := lock.Release(relCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock de numeración")
		}
	}, nil
}
