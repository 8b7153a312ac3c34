package game

import (
	"context"
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/hearthforge/hearthforge-go/internal/game/targeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReplayRecordsEveryAction(t *testing.T) {
	recorder := NewReplayRecorder(zaptest.NewLogger(t), t.TempDir())
	e := newTestEngine(t, WithReplayRecorder(recorder), WithMatchID("match-1"))

	require.NoError(t, e.EndTurn())
	require.NoError(t, e.RunBotTurn(context.Background()))

	replay, ok := recorder.Replay("match-1")
	require.True(t, ok)
	require.GreaterOrEqual(t, replay.Size(), 3)
	assert.Equal(t, "start", replay.FrameAt(0).Action)
	assert.Equal(t, "end_turn", replay.FrameAt(1).Action)
	assert.Equal(t, e.Snapshot().Checksum(), replay.FrameAt(replay.Size()-1).Checksum)
	require.NoError(t, replay.Verify())
}

func TestReplaySaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	recorder := NewReplayRecorder(zaptest.NewLogger(t), dir)
	e := newTestEngine(t, WithReplayRecorder(recorder), WithMatchID("match-2"))

	setBoard(e, entity.SidePlayer, ready(entity.NewMinion(4000, "Giant", 1, 8, 8)))
	e.side(entity.SideBot).hero.Health = 4
	require.NoError(t, e.Attack(entity.SidePlayer, 0, targeting.HeroTarget(entity.SideBot)))
	require.True(t, e.Snapshot().GameOver)
	assert.False(t, recorder.IsRecording("match-2"))

	path, err := recorder.SaveReplay("match-2")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, ok := recorder.Replay("match-2")
	assert.False(t, ok, "saved replays are dropped from memory")

	loaded, err := recorder.LoadReplay("match-2")
	require.NoError(t, err)
	assert.Equal(t, "match-2", loaded.MatchID)
	require.Equal(t, 2, loaded.Size())
	require.NoError(t, loaded.Verify())

	last := loaded.FrameAt(1)
	assert.Equal(t, "game_over", last.Action)
	assert.True(t, last.State.GameOver)
	assert.True(t, last.State.PlayerWon)
	assert.Len(t, last.State.Player.Hand, 3)

	loaded.Start()
	assert.Equal(t, "start", loaded.Next().Action)
	assert.Equal(t, "game_over", loaded.Next().Action)
	assert.Nil(t, loaded.Next())
	assert.Equal(t, "game_over", loaded.Previous().Action)
}

func TestSnapshotBinaryRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	data, err := snap.MarshalBinary()
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, snap.Checksum(), decoded.Checksum())
	assert.Equal(t, snap.MatchID, decoded.MatchID)
}

func TestChecksumTracksState(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot()
	assert.Equal(t, before.Checksum(), e.Snapshot().Checksum())

	require.NoError(t, e.EndTurn())
	assert.NotEqual(t, before.Checksum(), e.Snapshot().Checksum())
	assert.True(t, before.VerifyChecksum(before.Checksum()))
}

func TestSaveUnknownReplay(t *testing.T) {
	recorder := NewReplayRecorder(nil, t.TempDir())
	_, err := recorder.SaveReplay("missing")
	require.Error(t, err)
}
