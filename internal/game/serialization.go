package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

func init() {
	gob.Register(&entity.Minion{})
	gob.Register(&entity.Spell{})
}

// Checksum is a SHA-256 over a canonical rendering of the snapshot. The
// match id is left out so that two matches played from the same seed with
// the same actions produce the same checksum.
func (s Snapshot) Checksum() string {
	sum := sha256.Sum256([]byte(s.canonical()))
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum reports whether the snapshot still hashes to expected.
func (s Snapshot) VerifyChecksum(expected string) bool {
	return s.Checksum() == expected
}

func (s Snapshot) canonical() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MATCH:%s|%d|%t|%t\n", s.CurrentTurn, s.TurnNumber, s.GameOver, s.PlayerWon)
	for _, side := range []entity.Side{entity.SidePlayer, entity.SideBot} {
		v := s.Side(side)
		fmt.Fprintf(&buf, "SIDE:%s|%d|%d|%d|%d\n", side, v.Mana, v.MaxMana, v.DeckSize, v.Fatigue)
		if h := v.Hero; h != nil {
			fmt.Fprintf(&buf, "  HERO:%s|%d|%d|%d\n", h.Name, h.Health, h.MaxHealth, h.Armor)
			if p := h.Power; p != nil {
				fmt.Fprintf(&buf, "  POWER:%d|%s|%d|%t\n", p.ID, p.Name, p.Cost, p.UsedThisTurn)
			}
		}
		// hand and board order are part of the state
		for _, c := range v.Hand {
			fmt.Fprintf(&buf, "  HAND:%d|%s|%d\n", c.CardID(), c.CardName(), c.Cost())
		}
		for _, m := range v.Board {
			fmt.Fprintf(&buf, "  BOARD:%d|%s|%d|%d|%d|%t|%s\n",
				m.CardID(), m.CardName(), m.Attack, m.Health, m.MaxHealth, m.DivineShield, m.State())
		}
	}
	return buf.String()
}

// MarshalBinary gob-encodes the snapshot.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshotWire(s)); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	var wire snapshotWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&wire); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	*s = Snapshot(wire)
	return nil
}

// snapshotWire has Snapshot's fields without its methods so that gob does
// not recurse into MarshalBinary.
type snapshotWire Snapshot
