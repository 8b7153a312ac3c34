package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 1

// ReplayFrame is the match state after one action.
type ReplayFrame struct {
	Action   string
	Checksum string
	State    Snapshot
	Recorded time.Time
}

// Replay is the ordered list of frames of one match.
type Replay struct {
	MatchID      string
	Frames       []*ReplayFrame
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(matchID string) *Replay {
	return &Replay{
		MatchID: matchID,
		Frames:  make([]*ReplayFrame, 0),
	}
}

// Record appends a frame for state.
func (r *Replay) Record(action string, state Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Frames = append(r.Frames, &ReplayFrame{
		Action:   action,
		Checksum: state.Checksum(),
		State:    state,
		Recorded: time.Now(),
	})
}

// Start rewinds to the first frame.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Next returns the current frame and advances, or nil at the end.
func (r *Replay) Next() *ReplayFrame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.Frames) {
		frame := r.Frames[r.CurrentIndex]
		r.CurrentIndex++
		return frame
	}
	return nil
}

// Previous steps back one frame.
func (r *Replay) Previous() *ReplayFrame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.Frames[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of frames.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Frames)
}

// FrameAt returns the frame at index, or nil.
func (r *Replay) FrameAt(index int) *ReplayFrame {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.Frames) {
		return r.Frames[index]
	}
	return nil
}

// Verify recomputes every frame checksum and reports the first mismatch.
func (r *Replay) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, frame := range r.Frames {
		if !frame.State.VerifyChecksum(frame.Checksum) {
			return fmt.Errorf("frame %d (%s): checksum mismatch", i, frame.Action)
		}
	}
	return nil
}

type replayHeader struct {
	MatchID    string
	Saved      time.Time
	Version    int
	FrameCount int
}

// SaveToFile writes the replay as gzipped gob to <directory>/<match id>.replay.
func (r *Replay) SaveToFile(directory string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("create replay directory: %w", err)
	}
	filename := filepath.Join(directory, r.MatchID+".replay")
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gz)

	header := replayHeader{
		MatchID:    r.MatchID,
		Saved:      time.Now(),
		Version:    replayVersion,
		FrameCount: len(r.Frames),
	}
	if err := encoder.Encode(&header); err != nil {
		return "", fmt.Errorf("encode replay header: %w", err)
	}
	for i, frame := range r.Frames {
		if err := encoder.Encode(frame); err != nil {
			return "", fmt.Errorf("encode frame %d: %w", i, err)
		}
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("flush replay file: %w", err)
	}
	return filename, nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory, matchID string) (*Replay, error) {
	file, err := os.Open(filepath.Join(directory, matchID+".replay"))
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	decoder := gob.NewDecoder(gz)
	var header replayHeader
	if err := decoder.Decode(&header); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if header.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", header.Version)
	}

	replay := NewReplay(header.MatchID)
	for i := 0; i < header.FrameCount; i++ {
		var frame ReplayFrame
		if err := decoder.Decode(&frame); err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		replay.Frames = append(replay.Frames, &frame)
	}
	return replay, nil
}

// ReplayRecorder collects replays for the matches it is attached to.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[string]*Replay
	enabled map[string]bool
	saveDir string
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		enabled: make(map[string]bool),
		saveDir: saveDir,
	}
}

// StartRecording begins a new replay for matchID.
func (rr *ReplayRecorder) StartRecording(matchID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.replays[matchID] = NewReplay(matchID)
	rr.enabled[matchID] = true
	rr.logger.Debug("started replay recording", zap.String("match_id", matchID))
}

// StopRecording keeps the replay but ignores further frames.
func (rr *ReplayRecorder) StopRecording(matchID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.enabled[matchID] = false
}

// IsRecording reports whether frames for matchID are being kept.
func (rr *ReplayRecorder) IsRecording(matchID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.enabled[matchID]
}

// RecordState appends a frame when recording is enabled for matchID.
func (rr *ReplayRecorder) RecordState(matchID, action string, state Snapshot) {
	rr.mu.RLock()
	enabled := rr.enabled[matchID]
	replay := rr.replays[matchID]
	rr.mu.RUnlock()

	if !enabled || replay == nil {
		return
	}
	replay.Record(action, state)
}

// Replay returns the in-memory replay for matchID.
func (rr *ReplayRecorder) Replay(matchID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	replay, ok := rr.replays[matchID]
	return replay, ok
}

// SaveReplay writes the replay to disk and drops it from memory.
func (rr *ReplayRecorder) SaveReplay(matchID string) (string, error) {
	rr.mu.Lock()
	replay, ok := rr.replays[matchID]
	if !ok {
		rr.mu.Unlock()
		return "", fmt.Errorf("no replay found for match %s", matchID)
	}
	delete(rr.replays, matchID)
	delete(rr.enabled, matchID)
	rr.mu.Unlock()

	path, err := replay.SaveToFile(rr.saveDir)
	if err != nil {
		return "", fmt.Errorf("save replay: %w", err)
	}
	rr.logger.Info("saved replay",
		zap.String("match_id", matchID),
		zap.Int("frames", replay.Size()),
		zap.String("path", path),
	)
	return path, nil
}

// LoadReplay reads a saved replay from the recorder's directory.
func (rr *ReplayRecorder) LoadReplay(matchID string) (*Replay, error) {
	return LoadReplayFromFile(rr.saveDir, matchID)
}

// ClearReplay drops a replay without saving it.
func (rr *ReplayRecorder) ClearReplay(matchID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	delete(rr.replays, matchID)
	delete(rr.enabled, matchID)
}
