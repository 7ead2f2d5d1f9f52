package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/echomaze/physics"
)

// move is a held movement direction
type move uint8

const (
	moveForward move = iota
	moveBackward
	moveLeft
	moveRight
	moveCount
)

// command is a one-shot key action
type command uint8

const (
	cmdNone command = iota
	cmdQuit
	cmdPing
	cmdTurnLeft
	cmdTurnRight
	cmdToggleEcho
	cmdContinue
	cmdRestart
	cmdJump // level jump, digit in keyBinding.level
)

type keyBinding struct {
	move    move
	hasMove bool
	run     bool
	cmd     command
	level   int
}

// bindKey maps a terminal key to a movement or command
// Uppercase movement letters run
func bindKey(k tcell.Key, r rune) keyBinding {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyBinding{cmd: cmdQuit}
	case tcell.KeyUp:
		return keyBinding{move: moveForward, hasMove: true}
	case tcell.KeyDown:
		return keyBinding{move: moveBackward, hasMove: true}
	case tcell.KeyLeft:
		return keyBinding{cmd: cmdTurnLeft}
	case tcell.KeyRight:
		return keyBinding{cmd: cmdTurnRight}
	case tcell.KeyEnter:
		return keyBinding{cmd: cmdContinue}
	case tcell.KeyRune:
	default:
		return keyBinding{}
	}

	switch r {
	case 'w', 'W':
		return keyBinding{move: moveForward, hasMove: true, run: r == 'W'}
	case 's', 'S':
		return keyBinding{move: moveBackward, hasMove: true, run: r == 'S'}
	case 'a', 'A':
		return keyBinding{move: moveLeft, hasMove: true, run: r == 'A'}
	case 'd', 'D':
		return keyBinding{move: moveRight, hasMove: true, run: r == 'D'}
	case 'q':
		return keyBinding{cmd: cmdTurnLeft}
	case 'e':
		return keyBinding{cmd: cmdTurnRight}
	case ' ':
		return keyBinding{cmd: cmdPing}
	case 'x':
		return keyBinding{cmd: cmdToggleEcho}
	case 'r':
		return keyBinding{cmd: cmdRestart}
	}
	if r >= '1' && r <= '9' {
		return keyBinding{cmd: cmdJump, level: int(r - '1')}
	}
	return keyBinding{}
}

// heldKeys emulates key-up for terminals that only report presses
// A press keeps its direction active for hold, renewed by key repeat
type heldKeys struct {
	hold    time.Duration
	until   [moveCount]time.Time
	running time.Time
}

func (h *heldKeys) press(m move, run bool, now time.Time) {
	h.until[m] = now.Add(h.hold)
	if run {
		h.running = now.Add(h.hold)
	}
}

func (h *heldKeys) input(now time.Time) physics.Input {
	return physics.Input{
		Forward:  now.Before(h.until[moveForward]),
		Backward: now.Before(h.until[moveBackward]),
		Left:     now.Before(h.until[moveLeft]),
		Right:    now.Before(h.until[moveRight]),
		Running:  now.Before(h.running),
	}
}

func (h *heldKeys) reset() {
	h.until = [moveCount]time.Time{}
	h.running = time.Time{}
}
