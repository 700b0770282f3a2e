// SPDX-License-Identifier: Unlicense OR MIT

package hypr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ErrNotRunning is returned by NewWorker outside a Hyprland session.
var ErrNotRunning = errors.New("hypr: HYPRLAND_INSTANCE_SIGNATURE is not set")

// ErrClosed is returned by Run when the compositor closes the event
// socket.
var ErrClosed = errors.New("hypr: event socket closed")

const (
	requestSocket = ".socket.sock"
	eventSocket   = ".socket2.sock"
)

// Worker streams workspace events from a Hyprland instance.
type Worker struct {
	// Signature identifies the Hyprland instance.
	Signature string
	// RuntimeDir is the XDG runtime directory. Sockets are looked up
	// in RuntimeDir/hypr/Signature, falling back to /tmp/hypr.
	RuntimeDir string
	// Dial defaults to a net.Dialer.
	Dial func(ctx context.Context, network, addr string) (net.Conn, error)
	// Logger receives trace output when Verbose is set. Defaults to
	// the standard logger.
	Logger  *log.Logger
	Verbose bool
}

// NewWorker returns a worker for the instance named by the
// environment.
func NewWorker() (*Worker, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return nil, ErrNotRunning
	}
	return &Worker{
		Signature:  sig,
		RuntimeDir: os.Getenv("XDG_RUNTIME_DIR"),
	}, nil
}

// SocketPath returns the path of the named socket.
func (w *Worker) SocketPath(name string) string {
	if w.RuntimeDir != "" {
		dir := filepath.Join(w.RuntimeDir, "hypr", w.Signature)
		if _, err := os.Stat(dir); err == nil {
			return filepath.Join(dir, name)
		}
	}
	return filepath.Join("/tmp/hypr", w.Signature, name)
}

func (w *Worker) dial(ctx context.Context, name string) (net.Conn, error) {
	dial := w.Dial
	if dial == nil {
		dial = new(net.Dialer).DialContext
	}
	conn, err := dial(ctx, "unix", w.SocketPath(name))
	if err != nil {
		return nil, fmt.Errorf("hypr: %w", err)
	}
	return conn, nil
}

// Request sends cmd on the request socket and returns the full reply.
func (w *Worker) Request(ctx context.Context, cmd string) ([]byte, error) {
	conn, err := w.dial(ctx, requestSocket)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}
	if _, err := io.WriteString(conn, cmd); err != nil {
		return nil, fmt.Errorf("hypr: request %q: %w", cmd, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("hypr: request %q: %w", cmd, err)
	}
	return reply, nil
}

// Workspaces returns the ids of the existing workspaces.
func (w *Worker) Workspaces(ctx context.Context) ([]int, error) {
	reply, err := w.Request(ctx, "j/workspaces")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(reply) {
		return nil, fmt.Errorf("hypr: invalid workspaces reply %q", reply)
	}
	var ids []int
	for _, id := range gjson.GetBytes(reply, "#.id").Array() {
		ids = append(ids, int(id.Int()))
	}
	return ids, nil
}

// ActiveWorkspace returns the id of the focused workspace.
func (w *Worker) ActiveWorkspace(ctx context.Context) (int, error) {
	reply, err := w.Request(ctx, "j/activeworkspace")
	if err != nil {
		return 0, err
	}
	id := gjson.GetBytes(reply, "id")
	if !gjson.ValidBytes(reply) || !id.Exists() {
		return 0, fmt.Errorf("hypr: invalid active workspace reply %q", reply)
	}
	return int(id.Int()), nil
}

// Run sends a WorkspaceReset followed by the current state, then every
// workspace event, until ctx is done or the event socket fails.
func (w *Worker) Run(ctx context.Context, out chan<- Event) error {
	conn, err := w.dial(ctx, eventSocket)
	if err != nil {
		return err
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		conn.Close()
	}()

	send := func(ev Event) error {
		select {
		case out <- ev:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := send(Event{Kind: WorkspaceReset}); err != nil {
		return err
	}
	ids, err := w.Workspaces(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := send(Event{Kind: WorkspaceCreate, ID: id}); err != nil {
			return err
		}
	}
	active, err := w.ActiveWorkspace(ctx)
	if err != nil {
		return err
	}
	if err := send(Event{Kind: WorkspaceActive, ID: active}); err != nil {
		return err
	}

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		ev, ok := ParseLine(sc.Text())
		if !ok {
			w.tracef("hypr: ignoring %q", sc.Text())
			continue
		}
		if err := send(ev); err != nil {
			return err
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("hypr: event socket: %w", err)
	}
	return ErrClosed
}

func (w *Worker) tracef(format string, args ...interface{}) {
	if !w.Verbose {
		return
	}
	if w.Logger != nil {
		w.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
