// SPDX-License-Identifier: Unlicense OR MIT

package hypr

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeHypr serves canned request replies and streams events written to
// its events pipe.
type fakeHypr struct {
	replies map[string]string
	events  net.Conn
}

func (f *fakeHypr) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	client, server := net.Pipe()
	switch filepath.Base(addr) {
	case requestSocket:
		go func() {
			defer server.Close()
			buf := make([]byte, 256)
			n, err := server.Read(buf)
			if err != nil {
				return
			}
			io.WriteString(server, f.replies[string(buf[:n])])
		}()
	case eventSocket:
		f.events = server
	default:
		return nil, errors.New("unknown socket " + addr)
	}
	return client, nil
}

func newFake() *fakeHypr {
	return &fakeHypr{replies: map[string]string{
		"j/workspaces":      `[{"id":1,"name":"1"},{"id":3,"name":"3"},{"id":2,"name":"2"}]`,
		"j/activeworkspace": `{"id":3,"name":"3","monitor":"DP-1"}`,
	}}
}

func TestWorkerRun(t *testing.T) {
	fake := newFake()
	w := &Worker{Signature: "test", Dial: fake.dial}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, out) }()

	want := []Event{
		{Kind: WorkspaceReset},
		{Kind: WorkspaceCreate, ID: 1},
		{Kind: WorkspaceCreate, ID: 3},
		{Kind: WorkspaceCreate, ID: 2},
		{Kind: WorkspaceActive, ID: 3},
	}
	for i, ev := range want {
		select {
		case got := <-out:
			if got != ev {
				t.Fatalf("event %d: have %v, want %v", i, got, ev)
			}
		case <-ctx.Done():
			t.Fatal("timeout waiting for initial state")
		}
	}

	go io.WriteString(fake.events, "activewindow>>foot,~\nworkspace>>2\n")
	select {
	case got := <-out:
		if want := (Event{Kind: WorkspaceActive, ID: 2}); got != want {
			t.Errorf("have %v, want %v", got, want)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}

	fake.events.Close()
	if err := <-done; !errors.Is(err, ErrClosed) {
		t.Errorf("Run returned %v, want ErrClosed", err)
	}
}

func TestWorkerRunCancel(t *testing.T) {
	fake := newFake()
	w := &Worker{Signature: "test", Dial: fake.dial}
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Event, 16)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, out) }()
	// Wait for the initial state, then cancel while idle.
	for i := 0; i < 5; i++ {
		<-out
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWorkerBadReply(t *testing.T) {
	fake := newFake()
	fake.replies["j/activeworkspace"] = "unknown request"
	w := &Worker{Signature: "test", Dial: fake.dial}
	if _, err := w.ActiveWorkspace(context.Background()); err == nil {
		t.Error("expected error for invalid reply")
	}
	ids, err := w.Workspaces(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 2 {
		t.Errorf("Workspaces: have %v", ids)
	}
}

func TestSocketPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "hypr", "sig"), 0o755); err != nil {
		t.Fatal(err)
	}
	w := &Worker{Signature: "sig", RuntimeDir: dir}
	if got, want := w.SocketPath(eventSocket), filepath.Join(dir, "hypr", "sig", eventSocket); got != want {
		t.Errorf("have %q, want %q", got, want)
	}
	w.Signature = "other"
	if got := w.SocketPath(eventSocket); !strings.HasPrefix(got, "/tmp/hypr/other/") {
		t.Errorf("fallback path %q", got)
	}
}

func TestNewWorkerOutsideSession(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, err := NewWorker(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("have %v, want ErrNotRunning", err)
	}
}
