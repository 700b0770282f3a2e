// SPDX-License-Identifier: Unlicense OR MIT

// Package hypr follows workspace state through the Hyprland event and
// request sockets.
package hypr

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// EventKind is the kind of a workspace Event.
type EventKind uint8

const (
	// WorkspaceReset clears all known workspaces.
	WorkspaceReset EventKind = iota
	WorkspaceCreate
	WorkspaceDestroy
	// WorkspaceActive changes the focused workspace.
	WorkspaceActive
)

// Event is a change of workspace state.
type Event struct {
	Kind EventKind
	// ID is the workspace id. It is zero for WorkspaceReset.
	ID int
}

// ParseEvent parses one event socket message, such as the command
// "workspace" with data "3". Messages about anything other than
// workspaces with numeric ids are ignored.
func ParseEvent(cmd, data string) (Event, bool) {
	var kind EventKind
	switch cmd {
	case "workspace":
		kind = WorkspaceActive
	case "createworkspace":
		kind = WorkspaceCreate
	case "destroyworkspace":
		kind = WorkspaceDestroy
	default:
		return Event{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(data))
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: kind, ID: id}, true
}

// ParseLine splits a "cmd>>data" line and parses it.
func ParseLine(line string) (Event, bool) {
	cmd, data, ok := strings.Cut(line, ">>")
	if !ok {
		return Event{}, false
	}
	return ParseEvent(cmd, data)
}

// ParseEvents parses every complete line of chunk.
func ParseEvents(chunk []byte) []Event {
	var evs []Event
	sc := bufio.NewScanner(bytes.NewReader(chunk))
	for sc.Scan() {
		if ev, ok := ParseLine(sc.Text()); ok {
			evs = append(evs, ev)
		}
	}
	return evs
}

func (k EventKind) String() string {
	switch k {
	case WorkspaceReset:
		return "WorkspaceReset"
	case WorkspaceCreate:
		return "WorkspaceCreate"
	case WorkspaceDestroy:
		return "WorkspaceDestroy"
	case WorkspaceActive:
		return "WorkspaceActive"
	default:
		panic("unreachable")
	}
}
