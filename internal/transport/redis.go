package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const traceKeyPrefix = "deepresearch:trace:"

type RedisTransport struct {
	rdb *redis.Client
}

func NewRedisTransport(rdb *redis.Client) *RedisTransport {
	return &RedisTransport{
		rdb: rdb,
	}
}

func (t *RedisTransport) SetTrace(ctx context.Context, trace *Trace) error {
	if len(trace.ID) == 0 {
		return fmt.Errorf("invalid trace ID")
	}

	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return err
	}

	res, err := t.rdb.Set(ctx, traceKey(trace.ID), traceJSON, TraceExpiry).Result()
	if err != nil {
		return err
	}

	slog.Debug("received result from redis", "res", res)
	return nil
}

func (t *RedisTransport) GetTrace(ctx context.Context, traceId string) (*Trace, error) {
	traceJSON, err := t.rdb.Get(ctx, traceKey(traceId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTraceNotFound
	}
	if err != nil {
		return nil, err
	}

	var trace Trace
	if err := json.Unmarshal(traceJSON, &trace); err != nil {
		return nil, fmt.Errorf("failed to deserialize trace: %w", err)
	}
	return &trace, nil
}

func (t *RedisTransport) Close() error {
	return t.rdb.Close()
}

func traceKey(id string) string {
	return traceKeyPrefix + id
}
