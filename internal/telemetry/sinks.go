package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// LogSink writes records to a logger at debug level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a log sink.
func NewLogSink(logger *log.Logger) LogSink {
	return LogSink{logger: logger}
}

// Record implements Hook.
func (s LogSink) Record(r Record) {
	s.logger.Debug("telemetry",
		"game", r.GameID,
		"seq", r.Seq,
		"kind", r.Kind,
		"quarter", r.Quarter,
		"clock", r.Clock,
		"side", r.Side,
		"detail", r.Detail,
		"dice", r.Dice,
		"points", r.Points,
	)
}

// DefaultStream is the Redis stream key records are added to.
const DefaultStream = "gridiron.telemetry"

// XAdder is the part of a Redis client the sink uses.
type XAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisSink publishes records to a Redis stream from a background goroutine.
// Record never blocks: when the buffer is full the record is dropped.
type RedisSink struct {
	client  XAdder
	stream  string
	timeout time.Duration
	logger  *log.Logger

	mu     sync.RWMutex
	closed bool
	ch     chan Record
	done   chan struct{}

	dropped atomic.Uint64
	failed  atomic.Uint64
}

// NewRedisSink starts a sink. buffer <= 0 uses 1024.
func NewRedisSink(client XAdder, stream string, buffer int, logger *log.Logger) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	if buffer <= 0 {
		buffer = 1024
	}
	s := &RedisSink{
		client:  client,
		stream:  stream,
		timeout: 2 * time.Second,
		logger:  logger,
		ch:      make(chan Record, buffer),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Record implements Hook.
func (s *RedisSink) Record(r Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}
	select {
	case s.ch <- r:
	default:
		s.dropped.Add(1)
	}
}

// Close stops accepting records and waits for the buffer to drain.
func (s *RedisSink) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
	<-s.done
	return nil
}

// Dropped is the number of records discarded because the buffer was full
// or the sink was closed.
func (s *RedisSink) Dropped() uint64 { return s.dropped.Load() }

// Failed is the number of records Redis rejected.
func (s *RedisSink) Failed() uint64 { return s.failed.Load() }

func (s *RedisSink) run() {
	defer close(s.done)
	for r := range s.ch {
		if err := s.publish(r); err != nil {
			s.failed.Add(1)
			if s.logger != nil {
				s.logger.Warn("telemetry publish failed", "stream", s.stream, "err", err)
			}
		}
	}
}

func (s *RedisSink) publish(r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"data":    string(data),
			"game_id": r.GameID,
			"kind":    string(r.Kind),
		},
	}).Err()
}
