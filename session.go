package netplay

import (
	"errors"
	"time"

	"github.com/netplay-go/netplay/internal/monotime"
	"github.com/netplay-go/netplay/internal/protocol"
	"github.com/netplay-go/netplay/internal/reconciler"
	"github.com/netplay-go/netplay/internal/timing"
	"github.com/netplay-go/netplay/internal/utils"
	"github.com/netplay-go/netplay/logging"
)

// A Session drives client-side prediction for a single server connection.
//
// The transport feeds it snapshot messages via HandleSnapshot and packet
// statistics via AddPacketStats; the render loop calls OnFrame once per
// frame and steps the simulation by the returned tick count worth of
// speculative prediction (the session runs the Tick calls itself).
//
// A Session is not safe for concurrent use. All methods must be called from
// the same goroutine, usually the game loop.
type Session struct {
	config *Config
	sim    Simulation

	reconciler *reconciler.Reconciler
	timer      *timing.PredictionTimer
	tracer     *logging.SessionTracer
	logger     utils.Logger

	tickTime time.Duration

	// set once the first authoritative snapshot arrived; until then there
	// is no game time to predict on
	started bool

	predictedTick Tick
	// client-clock start time of the current tick, the anchor all timing
	// feedback is measured against
	lastGameTick monotime.Time

	// newest and second newest adopted authoritative state, for baseline
	// decisions and anti-ping reverts
	lastSnap     []byte
	lastSnapTick Tick
	hasLastSnap  bool
	prevSnap     []byte
	hasPrevSnap  bool

	inputs       inputBuffer
	localPlayers []PlayerID
	pendingAcks  []SnapshotAck
}

// NewSession creates a prediction session on top of the given simulation.
// The codec reverses the server's snapshot delta-encoding.
// The config may be nil.
func NewSession(sim Simulation, codec PatchCodec, config *Config) *Session {
	return newSession(sim, codec, populateConfig(config), monotime.Now())
}

func newSession(sim Simulation, codec PatchCodec, config *Config, now monotime.Time) *Session {
	if sim == nil {
		panic("netplay: nil Simulation")
	}
	if codec == nil {
		panic("netplay: nil PatchCodec")
	}
	logger := utils.DefaultLogger.WithPrefix("session")
	return &Session{
		config:     config,
		sim:        sim,
		reconciler: reconciler.New(codec, logger),
		timer:      timing.NewPredictionTimer(config.InitialPing, now),
		tracer:     config.Tracer,
		logger:     logger,
		tickTime:   time.Second / time.Duration(config.TicksPerSecond),
	}
}

// Started reports whether the first authoritative snapshot was handled.
func (s *Session) Started() bool { return s.started }

// PredictedTick returns the tick the speculative simulation state is at.
// It never decreases.
func (s *Session) PredictedTick() Tick { return s.predictedTick }

// HandleSnapshot processes an authoritative snapshot message.
//
// Undecodable or stale messages are dropped without failing the session;
// prediction continues from the last good baseline.
func (s *Session) HandleSnapshot(now time.Time, snap *Snapshot) {
	s.handleSnapshot(monotime.FromTime(now), snap)
}

func (s *Session) handleSnapshot(now monotime.Time, snap *Snapshot) {
	// The server's processing time is not network delay. Without this
	// correction a loaded server would make every client think it runs
	// behind and speed up.
	timestamp := now.Add(-snap.OverheadTime)

	res, err := s.reconciler.Reconstruct(snap.Data, snap.GameMonotonicTickDiff, snap.SnapIDDiffed, snap.DiffID)
	if err != nil {
		reason := logging.SnapshotDropPatchFailed
		if errors.Is(err, reconciler.ErrMissingDiffBase) {
			reason = logging.SnapshotDropMissingBase
		}
		s.logger.Errorf("dropping snapshot: %s", err)
		if s.tracer != nil && s.tracer.DroppedSnapshot != nil {
			s.tracer.DroppedSnapshot(reason)
		}
		return
	}

	if !s.started {
		s.initFirstSnapshot(timestamp, res.MonotonicTick)
	}

	prevTick := s.predictedTick

	// Input acks piggyback on the snapshot message and are valid even
	// when the snapshot itself is a duplicate.
	for _, ack := range snap.InputAcks {
		ping, ok := s.reconciler.AckInput(ack.ID, ack.LogicOverhead, now)
		if ok {
			s.timer.AddPing(ping, now)
		}
		if s.tracer != nil && s.tracer.AckedInput != nil {
			s.tracer.AckedInput(ack.ID, ping, ok)
		}
	}

	if !s.reconciler.AlreadyHandled(res.SnapID) {
		if s.tracer != nil && s.tracer.ReceivedSnapshot != nil {
			s.tracer.ReceivedSnapshot(res.SnapID, res.MonotonicTick, len(res.Snapshot), res.DiffID != InvalidSnapshotID)
		}
		if s.adoptAndReplay(&res, prevTick) {
			s.reconciler.Commit(res, snap.AsDiff)
			s.pendingAcks = append(s.pendingAcks, SnapshotAck{SnapID: res.SnapID, AsDiff: snap.AsDiff})
			if s.tracer != nil && s.tracer.AckedSnapshot != nil {
				s.tracer.AckedSnapshot(res.SnapID)
			}
			// input at or above the server tick may still be replayed
			s.inputs.pruneBelow(res.MonotonicTick)
		}
	}

	// Timing feedback runs for duplicates too: every arrival carries
	// information about the clock offset.
	s.addSnapTiming(timestamp, prevTick, res.MonotonicTick)
}

// initFirstSnapshot anchors game time so that the client starts exactly one
// prediction margin ahead of the server state it just received.
func (s *Session) initFirstSnapshot(timestamp monotime.Time, tick Tick) {
	s.started = true
	s.predictedTick = tick
	s.lastGameTick = timestamp.Add(-s.timer.PredMaxSmooth(s.tickTime))
	s.logger.Infof("game started at tick %d", tick)
}

// adoptAndReplay picks the replay baseline, loads it into the simulation
// and replays buffered input up to the prediction target. It reports
// whether the snapshot was actually used.
func (s *Session) adoptAndReplay(res *reconciler.Result, prevTick Tick) bool {
	baselineTick := res.MonotonicTick
	authoritative := true
	// A snapshot can be newer by id yet older by tick after heavy
	// reordering. The older state carries nothing the buffered prior
	// state doesn't, so keep predicting from the latter.
	if s.hasLastSnap && res.MonotonicTick < s.lastSnapTick {
		baselineTick = s.lastSnapTick
		authoritative = false
		if err := s.sim.ApplySnapshot(s.lastSnap); err != nil {
			s.logger.Errorf("dropping snapshot %d: reloading prior state failed: %s", res.SnapID, err)
			if s.tracer != nil && s.tracer.DroppedSnapshot != nil {
				s.tracer.DroppedSnapshot(logging.SnapshotDropApplyFailed)
			}
			return false
		}
	} else {
		if err := s.sim.ApplySnapshot(res.Snapshot); err != nil {
			s.logger.Errorf("dropping snapshot %d: applying failed: %s", res.SnapID, err)
			if s.tracer != nil && s.tracer.DroppedSnapshot != nil {
				s.tracer.DroppedSnapshot(logging.SnapshotDropApplyFailed)
			}
			return false
		}
		s.prevSnap = append(s.prevSnap[:0], s.lastSnap...)
		s.hasPrevSnap = s.hasLastSnap
		s.lastSnap = append(s.lastSnap[:0], res.Snapshot...)
		s.lastSnapTick = res.MonotonicTick
		s.hasLastSnap = true
	}
	if s.tracer != nil && s.tracer.AdoptedBaseline != nil {
		s.tracer.AdoptedBaseline(baselineTick, authoritative)
	}

	target := prevTick
	if res.MonotonicTick > target {
		target = res.MonotonicTick
	}
	s.predictedTick = target

	s.replay(baselineTick, target, prevTick)
	return true
}

// revertReference returns the snapshot reverted non-local entities are
// restored to.
func (s *Session) revertReference() []byte {
	if s.config.RevertReference == RevertToPreviousSnapshot && s.hasPrevSnap {
		return s.prevSnap
	}
	return s.lastSnap
}

func (s *Session) replay(from, target, prevTick Tick) {
	maxTicks := Tick(protocol.MaxCatchUpFactor * s.config.TicksPerSecond)
	action := PostTickNone
	if !s.config.AntiPing {
		action = PostTickRevertNonLocal
	}

	reverted := false
	tick := from
	var steps Tick
	for tick < target && steps < maxTicks {
		tick++
		steps++
		s.applyBufferedInput(tick)
		s.sim.Tick()
		if action == PostTickRevertNonLocal && tick == prevTick {
			s.revertNonLocal()
			reverted = true
		}
	}
	// the replay was capped before reaching the previously predicted
	// tick, revert at wherever it stopped
	if action == PostTickRevertNonLocal && !reverted && tick > from {
		s.revertNonLocal()
	}
	capped := tick < target
	if capped {
		s.logger.Debugf("replay capped after %d ticks, %d behind", steps, target-tick)
	}
	if s.tracer != nil && s.tracer.ReplayedTicks != nil {
		s.tracer.ReplayedTicks(from, tick, capped)
	}
}

func (s *Session) applyBufferedInput(tick Tick) {
	inputs, ok := s.inputs.forTick(tick)
	if !ok {
		return
	}
	for id, inp := range inputs {
		s.sim.SetPlayerInput(id, inp)
	}
}

func (s *Session) revertNonLocal() {
	if err := s.sim.RevertNonLocalEntities(s.revertReference(), s.localPlayers); err != nil {
		s.logger.Errorf("reverting non-local entities failed: %s", err)
	}
}

// addSnapTiming feeds the arrival of a snapshot into the prediction timer.
// The reported offset is zero when the snapshot arrived exactly one
// prediction margin before the client simulates its tick.
func (s *Session) addSnapTiming(timestamp monotime.Time, predTick, monotonicTick Tick) {
	predictMax := s.timer.PredMaxSmooth(s.tickTime)
	ticksInPred := uint64(predictMax / s.tickTime)
	timeInPred := predictMax % s.tickTime

	tickDiff := float64(int64(predTick)-int64(monotonicTick)) - float64(ticksInPred)
	timeDiff := timestamp.Sub(s.lastGameTick).Seconds() - timeInPred.Seconds()
	s.timer.AddSnap(tickDiff*s.tickTime.Seconds()+timeDiff, timestamp)

	if s.tracer != nil && s.tracer.UpdatedTimingStats != nil {
		s.tracer.UpdatedTimingStats(s.timer.Stats())
	}
}

// OnFrame is called once per rendered frame. It records the frame time,
// applies the pending smooth timer adjustment to the game clock and runs
// the speculative prediction ticks that became due. It returns the number
// of ticks the simulation advanced.
func (s *Session) OnFrame(now time.Time, frameTime time.Duration) int {
	return s.onFrame(monotime.FromTime(now), frameTime)
}

func (s *Session) onFrame(now monotime.Time, frameTime time.Duration) int {
	s.timer.AddFrameTime(frameTime, now)
	if !s.started {
		return 0
	}

	if adj := s.timer.SmoothAdjustmentTime(); adj != 0 {
		s.lastGameTick = s.lastGameTick.Add(time.Duration(adj * float64(time.Second)))
		if s.tracer != nil && s.tracer.AdjustedTimer != nil {
			s.tracer.AdjustedTimer(adj)
		}
	}

	ticks := 0
	maxTicks := int(protocol.MaxCatchUpFactor * s.config.TicksPerSecond)
	for now.Sub(s.lastGameTick) > s.tickTime && ticks < maxTicks {
		s.lastGameTick = s.lastGameTick.Add(s.tickTime)
		s.predictedTick++
		s.applyBufferedInput(s.predictedTick)
		s.sim.Tick()
		ticks++
	}
	return ticks
}

// IntraTickTime returns how far into the current tick the game clock is,
// for render interpolation. It is at most one tick time.
func (s *Session) IntraTickTime(now time.Time) time.Duration {
	if !s.started {
		return 0
	}
	d := monotime.FromTime(now).Sub(s.lastGameTick)
	if d < 0 {
		return 0
	}
	if d > s.tickTime {
		return s.tickTime
	}
	return d
}

// InputTicksToRespect returns for how many ticks the current input should
// be sent redundantly, so that it likely reaches the server despite packet
// loss. The result is in [1, maxTicks].
func (s *Session) InputTicksToRespect(maxTicks uint64) uint64 {
	return s.timer.TimeUnitsToRespect(s.tickTime, maxTicks)
}

// PredictionMargin returns how far ahead of the authoritative state the
// client currently predicts.
func (s *Session) PredictionMargin() time.Duration {
	margin := s.timer.PredMaxSmooth(s.tickTime)
	if s.tracer != nil && s.tracer.UpdatedPredictionMargin != nil {
		s.tracer.UpdatedPredictionMargin(margin)
	}
	return margin
}

// BufferInput stores a player's input for a tick, to be applied during
// speculative prediction and reconciliation replays.
func (s *Session) BufferInput(tick Tick, player PlayerID, input PlayerInput) {
	s.inputs.add(tick, player, input)
}

// SetLocalPlayers declares which players are controlled by this client.
// Their entities are never reverted to the authoritative state.
func (s *Session) SetLocalPlayers(ids []PlayerID) {
	s.localPlayers = append(s.localPlayers[:0], ids...)
}

// RecordSentInput remembers the send time of an input batch. Input ids must
// be strictly increasing.
func (s *Session) RecordSentInput(id InputID, now time.Time) {
	s.reconciler.RecordSentInput(id, monotime.FromTime(now))
}

// LastConfirmedInput returns the highest input id the server acked.
func (s *Session) LastConfirmedInput() (InputID, bool) {
	return s.reconciler.LastConfirmedInput()
}

// AddPacketStats records how many packets were sent to and reported lost
// by the server since the last call.
func (s *Session) AddPacketStats(now time.Time, packetsSent, packetsLost uint64) {
	s.timer.AddPacketStats(monotime.FromTime(now), packetsSent, packetsLost)
}

// DrainAcks returns the queued snapshot acks and clears the queue. The
// caller sends them to the server, batched with the next outgoing message.
func (s *Session) DrainAcks() []SnapshotAck {
	acks := s.pendingAcks
	s.pendingAcks = nil
	return acks
}

// TimingStats returns a view of the prediction timer state.
func (s *Session) TimingStats() logging.TimingStats {
	return s.timer.Stats()
}
