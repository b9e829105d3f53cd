package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	mu    sync.Mutex
	added []*redis.XAddArgs
	err   error
	block chan struct{}
}

func (f *fakeRedis) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, a)
	return redis.NewStringResult("0-1", f.err)
}

func (f *fakeRedis) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

type recorder struct{ got []Record }

func (r *recorder) Record(rec Record) { r.got = append(r.got, rec) }

type panicky struct{}

func (panicky) Record(Record) { panic("boom") }

func TestRedisSinkPublishes(t *testing.T) {
	fake := &fakeRedis{}
	sink := NewRedisSink(fake, "", 16, nil)
	sink.Record(Record{GameID: "g1", Kind: KindScore, Points: 6, Side: "Home"})
	sink.Record(Record{GameID: "g1", Kind: KindDice, Dice: []int{3, 4}})
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	if fake.count() != 2 {
		t.Fatalf("published %d records, want 2", fake.count())
	}
	first := fake.added[0]
	if first.Stream != DefaultStream {
		t.Errorf("stream = %q, want %q", first.Stream, DefaultStream)
	}
	values := first.Values.(map[string]interface{})
	if values["game_id"] != "g1" || values["kind"] != "score" {
		t.Errorf("values = %v", values)
	}
	var decoded Record
	if err := json.Unmarshal([]byte(values["data"].(string)), &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.Points != 6 || decoded.Side != "Home" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRedisSinkDropsWhenFull(t *testing.T) {
	fake := &fakeRedis{block: make(chan struct{})}
	sink := NewRedisSink(fake, "test", 1, nil)

	// One record may be held by the blocked publisher and one in the buffer;
	// the rest must be dropped without blocking the caller.
	for i := 0; i < 10; i++ {
		sink.Record(Record{Kind: KindDelta})
	}
	if sink.Dropped() < 8 {
		t.Errorf("dropped = %d, want at least 8", sink.Dropped())
	}

	close(fake.block)
	sink.Close()
	sink.Record(Record{Kind: KindDelta})
	if sink.Dropped() < 9 {
		t.Error("records after Close should be dropped")
	}
}

func TestRedisSinkCountsFailures(t *testing.T) {
	fake := &fakeRedis{err: errors.New("connection refused")}
	var buf bytes.Buffer
	sink := NewRedisSink(fake, "test", 4, log.New(&buf))
	sink.Record(Record{Kind: KindOutcome})
	sink.Close()
	if sink.Failed() != 1 {
		t.Errorf("failed = %d, want 1", sink.Failed())
	}
	if !strings.Contains(buf.String(), "telemetry publish failed") {
		t.Errorf("failure not logged: %q", buf.String())
	}
}

func TestSafeSwallowsPanics(t *testing.T) {
	var buf bytes.Buffer
	h := Safe(panicky{}, log.New(&buf))
	h.Record(Record{Kind: KindScore})
	if !strings.Contains(buf.String(), "panicked") {
		t.Errorf("panic not logged: %q", buf.String())
	}

	if _, ok := Safe(nil, nil).(Nop); !ok {
		t.Error("Safe(nil) should be Nop")
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Multi{a, Nop{}, b}.Record(Record{Kind: KindDice})
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Errorf("fan-out = %d/%d", len(a.got), len(b.got))
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	NewLogSink(logger).Record(Record{Kind: KindScore, Detail: "touchdown"})
	if !strings.Contains(buf.String(), "touchdown") {
		t.Errorf("log sink output = %q", buf.String())
	}
}
