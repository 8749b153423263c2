package server

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// brokenCodec 编码总是失败
type brokenCodec struct{ JSONCodec }

func (brokenCodec) Name() string { return "broken" }

func (brokenCodec) Encode(string, any) ([]byte, error) { return nil, errors.New("boom") }

func TestMoveRightPolicy(t *testing.T) {
	move := MoveRight(0.5)
	start := Player{ID: "a", Position: InitialPosition}

	if got := move(start, nil); got != start {
		t.Fatalf("expected nil key set to leave player unchanged, got %+v", got)
	}
	got := move(start, KeySet{KeyMoveRight: true, "ArrowLeft": true})
	if got.Position.X != 0.5 || got.Rotation.Y != 0.5 || got.Position.Y != 5 {
		t.Fatalf("expected only x and yaw to advance, got %+v", got)
	}
}

func TestFullSnapshotEncodesPerCodec(t *testing.T) {
	jsonA, jsonB := newFakeSender(), newFakeSender()
	pack := &fakeSender{codec: MsgPackCodec{}}
	closed := newFakeSender()
	closed.Close()

	snap := Snapshot{"a": {Position: InitialPosition}}
	queued, dropped := FullSnapshot{}.Broadcast(snap, []Sender{jsonA, pack, jsonB, closed})
	if queued != 3 || dropped != 1 {
		t.Fatalf("expected 3 queued and 1 dropped, got %d/%d", queued, dropped)
	}

	// 同编码的会话共享同一份字节
	if &jsonA.frames[0][0] != &jsonB.frames[0][0] {
		t.Fatalf("expected json sessions to share one encoded frame")
	}
	if got := lastSnapshot(t, pack); got["a"] != snap["a"] {
		t.Fatalf("expected msgpack session to decode snapshot, got %v", got)
	}
}

func TestHubEncodeErrorsUseHubLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hub := NewHub(NewWorld(nil), WithLogger(zap.New(core).Sugar()))

	good := newFakeSender()
	broken := &fakeSender{codec: brokenCodec{}}
	hub.Connect("good", good)
	hub.Connect("broken", broken)

	if err := hub.HandleAction("good", actionMessage(t, map[string]bool{KeyMoveRight: true})); err != nil {
		t.Fatalf("expected action to be accepted, got %v", err)
	}

	if n := logs.FilterMessageSnippet("encode snapshot (broken)").Len(); n != 1 {
		t.Fatalf("expected one encode error on the hub logger, got %d", n)
	}
	if snap := lastSnapshot(t, good); snap["good"].Position.X != 0.1 {
		t.Fatalf("expected healthy session to still receive the update, got %v", snap)
	}
	if m := hub.Metrics().Snapshot(); m["queue_full_dropped"] != int64(1) {
		t.Fatalf("expected the broken session's frame to be counted as dropped, got %v", m["queue_full_dropped"])
	}
}
