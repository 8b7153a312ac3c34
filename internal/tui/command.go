package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hearthforge/hearthforge-go/internal/game"
	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
)

type commandKind int

const (
	cmdPlay commandKind = iota
	cmdAttack
	cmdPower
	cmdEnd
	cmdQuit
	cmdHelp
)

// command is a parsed input line. Indices are zero-based; target holds the
// raw target token.
type command struct {
	kind   commandKind
	index  int
	target string
}

// parseCommand reads one input line. Hand and board numbers are typed
// one-based.
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "play", "p":
		if len(fields) < 2 || len(fields) > 3 {
			return command{}, fmt.Errorf("usage: play <card> [target]")
		}
		idx, err := parseIndex(fields[1])
		if err != nil {
			return command{}, err
		}
		c := command{kind: cmdPlay, index: idx}
		if len(fields) == 3 {
			c.target = fields[2]
		}
		return c, nil

	case "attack", "a":
		if len(fields) != 3 {
			return command{}, fmt.Errorf("usage: attack <minion> <target>")
		}
		idx, err := parseIndex(fields[1])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdAttack, index: idx, target: fields[2]}, nil

	case "power", "hp":
		if len(fields) > 2 {
			return command{}, fmt.Errorf("usage: power [target]")
		}
		c := command{kind: cmdPower}
		if len(fields) == 2 {
			c.target = fields[1]
		}
		return c, nil

	case "end", "e":
		return command{kind: cmdEnd}, nil

	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil

	case "help", "?":
		return command{kind: cmdHelp}, nil

	default:
		return command{}, fmt.Errorf("unknown command %q, type help", fields[0])
	}
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a card number", s)
	}
	return n - 1, nil
}

// resolveTarget maps a target token onto the board in snap:
// "face" is the enemy hero, "me" the player's hero, "e<n>" an enemy minion
// and "f<n>" a friendly minion.
func resolveTarget(token string, snap game.Snapshot) (*targeting.Target, error) {
	if token == "" {
		return nil, nil
	}
	switch token {
	case "face", "enemy", "hero":
		t := targeting.HeroTarget(entity.SideBot)
		return &t, nil
	case "me", "self":
		t := targeting.HeroTarget(entity.SidePlayer)
		return &t, nil
	}

	side := entity.SideBot
	switch token[0] {
	case 'e':
	case 'f':
		side = entity.SidePlayer
	default:
		return nil, fmt.Errorf("unknown target %q", token)
	}
	idx, err := parseIndex(token[1:])
	if err != nil {
		return nil, fmt.Errorf("unknown target %q", token)
	}
	board := snap.Side(side).Board
	if idx >= len(board) {
		return nil, fmt.Errorf("no minion at %s", token)
	}
	t := targeting.MinionTarget(side, board[idx].ID)
	return &t, nil
}

var helpLines = []string{
	"play <n> [target]     play the n-th card in hand",
	"attack <n> <target>   attack with the n-th minion on your board",
	"power [target]        use your hero power",
	"end                   end your turn",
	"quit                  leave the match",
	"targets: face, me, e<n> (enemy minion), f<n> (your minion)",
}
