// Package timing implements the adaptive prediction timer: rolling
// per-second statistics of ping, frame time and packet loss, and the
// smoothing logic that turns them into a prediction margin and a per-frame
// timer adjustment.
package timing

import (
	"math"
	"time"

	"github.com/netplay-go/netplay/internal/monotime"
	"github.com/netplay-go/netplay/internal/utils/ringbuffer"
)

const (
	// FrameMargin is a small extra offset to smooth out normal jitter in
	// frame times.
	FrameMargin = 500 * time.Microsecond
	// NetMargin covers the combined overhead of the network implementation
	// on the server and on the client.
	NetMargin = 500 * time.Microsecond

	// Pings above this value are untrusted and clamped.
	maxTrustedPing = 3 * time.Second
	// Frame times above this value are lags outside of reach and clamped.
	maxTrustedFrameTime = time.Second / 25

	frameTimeWindowSeconds   = 2
	packetStatsWindowSeconds = 2
)

// A pingBucket aggregates all ping samples of one whole second.
// The average is kept as a running sum, divided by count on read.
type pingBucket struct {
	max   time.Duration
	min   time.Duration
	sum   time.Duration
	count int
}

func (b *pingBucket) average() time.Duration {
	return b.sum / time.Duration(b.count)
}

// packetStats are the packet counters of one whole second.
type packetStats struct {
	sent uint64
	lost uint64
}

// Stats is a copyable view of the timer state, for debugging and tracing.
type Stats struct {
	PingMax       time.Duration
	PingMin       time.Duration
	PingAverage   time.Duration
	JitterRange   time.Duration
	PacketLoss    float64
	MaxFrameTime  time.Duration
	SmoothMaxPing float64
	// LastForcedWeight is the most recent forced timer correction, in
	// seconds. Only for debugging.
	LastForcedWeight float64
}

// A PredictionTimer estimates how far ahead of the last authoritative state
// the local simulation should run, and spreads timer corrections over the
// frames of a second.
//
// It is owned by a single session and must not be used concurrently.
type PredictionTimer struct {
	pings       ringbuffer.RingBuffer[pingBucket]
	frameTimes  ringbuffer.RingBuffer[time.Duration]
	packetStats ringbuffer.RingBuffer[packetStats]

	// slowly decaying extra slack, in seconds, that builds up when the
	// observed max ping drops
	smoothMaxPing float64
	// pending timer correction, in seconds, drained frame by frame
	smoothAdjustmentTime float64
	jitterRange          time.Duration

	// rolling average of snapshot timing errors since the last applied
	// correction
	lastSnapsAverage      float64
	lastSnapsAverageCount int
	lastForcedWeight      float64

	curWholeSecond          uint64
	curWholeSecondFrameTime uint64
	curWholeSecondStats     uint64
	lastSnapTime            monotime.Time
}

// NewPredictionTimer seeds the timer with a first ping measurement, usually
// taken from the connection handshake.
func NewPredictionTimer(firstPing time.Duration, now monotime.Time) *PredictionTimer {
	t := &PredictionTimer{
		curWholeSecond:          now.WholeSeconds(),
		curWholeSecondFrameTime: now.WholeSeconds(),
		curWholeSecondStats:     now.WholeSeconds(),
		lastSnapTime:            now,
	}
	t.pings.Init(64)
	t.pings.PushFront(pingBucket{max: firstPing, min: firstPing, sum: firstPing, count: 1})
	t.frameTimes.Init(frameTimeWindowSeconds)
	t.frameTimes.PushFront(0)
	t.packetStats.Init(packetStatsWindowSeconds)
	t.packetStats.PushFront(packetStats{})
	return t
}

// farsight is the number of per-second buckets to respect for max/min
// aggregates. The more jitter, the more values from the past are used, to
// have more stability in the values.
func (t *PredictionTimer) farsight() int {
	switch ms := t.jitterRange.Milliseconds(); {
	case ms < 2:
		return 2
	case ms < 20:
		return 5
	case ms < 100:
		return 20
	case ms < 1000:
		return 40
	default:
		return 60
	}
}

// farsightAvg is the bucket count for the ping average, which uses a
// smaller window than max/min.
func (t *PredictionTimer) farsightAvg() int {
	switch ms := t.jitterRange.Milliseconds(); {
	case ms < 2:
		return 1
	case ms < 20:
		return 2
	case ms < 100:
		return 3
	case ms < 1000:
		return 4
	default:
		return 10
	}
}

// snapFarsight is how long accumulated snapshot timing errors are averaged
// before a (non-forced) correction is applied.
func (t *PredictionTimer) snapFarsight() time.Duration {
	switch ms := t.jitterRange.Milliseconds(); {
	case ms < 2:
		return time.Second
	case ms < 20:
		return 3 * time.Second
	case ms < 100:
		return 5 * time.Second
	case ms < 1000:
		return 10 * time.Second
	default:
		return 20 * time.Second
	}
}

func (t *PredictionTimer) pingMaxOver(buckets int) time.Duration {
	var max time.Duration
	for i := 0; i < buckets && i < t.pings.Len(); i++ {
		if b := t.pings.At(i); b.max > max {
			max = b.max
		}
	}
	return max
}

func (t *PredictionTimer) pingMinOver(buckets int) time.Duration {
	min := time.Duration(math.MaxInt64)
	for i := 0; i < buckets && i < t.pings.Len(); i++ {
		if b := t.pings.At(i); b.min < min {
			min = b.min
		}
	}
	return min
}

// PingMax returns the highest ping over the current farsight window.
func (t *PredictionTimer) PingMax() time.Duration { return t.pingMaxOver(t.farsight()) }

// PingMin returns the lowest ping over the current farsight window.
func (t *PredictionTimer) PingMin() time.Duration { return t.pingMinOver(t.farsight()) }

// PingAverage returns the average ping. Each bucket contributes its own
// running average; the contributions are then averaged over the (smaller)
// farsight window of the average.
func (t *PredictionTimer) PingAverage() time.Duration {
	count := t.farsightAvg()
	var sum time.Duration
	for i := 0; i < count && i < t.pings.Len(); i++ {
		sum += t.pings.At(i).average()
	}
	return sum / time.Duration(count)
}

// calcJitterRange measures the current spread between max and min ping.
// A window of 3 buckets is used, or 10 if the jitter is already high, so
// that a single calm second doesn't collapse the range.
func (t *PredictionTimer) calcJitterRange() time.Duration {
	buckets := 3
	if t.jitterRange.Milliseconds() > 500 {
		buckets = 10
	}
	return t.pingMaxOver(buckets) - t.pingMinOver(buckets)
}

// AddPing merges a ping sample into the current second's bucket, advancing
// and truncating the window on a second rollover.
func (t *PredictionTimer) AddPing(ping time.Duration, now monotime.Time) {
	wholeSecond := now.WholeSeconds()
	if t.curWholeSecond > wholeSecond {
		wholeSecond = t.curWholeSecond
	}
	if ping < 0 {
		ping = 0
	} else if ping > maxTrustedPing {
		ping = maxTrustedPing
	}

	oldMax := t.PingMax()
	if wholeSecond > t.curWholeSecond {
		t.jitterRange = t.calcJitterRange()

		diff := wholeSecond - t.curWholeSecond
		maxItems := uint64(t.farsight())
		if diff > maxItems {
			diff = maxItems
		}
		// only the last seconds are of interest
		t.pings.Truncate(int(maxItems - diff))
		t.pings.PushFront(pingBucket{max: ping, min: ping, sum: ping, count: 1})
	} else {
		b := t.pings.Front()
		if ping > b.max {
			b.max = ping
		}
		if ping < b.min {
			b.min = ping
		}
		b.count++
		b.sum += ping
	}
	// When the max ping drops out of the window, convert the drop into
	// slowly decaying slack instead of letting the margin jump.
	t.smoothMaxPing += oldMax.Seconds() - t.PingMax().Seconds()
	if t.smoothMaxPing < 0 {
		t.smoothMaxPing = 0
	}
	t.curWholeSecond = wholeSecond
}

// AddFrameTime records a frame time sample into the 2-second max window.
func (t *PredictionTimer) AddFrameTime(frameTime time.Duration, now monotime.Time) {
	wholeSecond := now.WholeSeconds()
	if t.curWholeSecondFrameTime > wholeSecond {
		wholeSecond = t.curWholeSecondFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	} else if frameTime > maxTrustedFrameTime {
		frameTime = maxTrustedFrameTime
	}

	if wholeSecond > t.curWholeSecondFrameTime {
		diff := wholeSecond - t.curWholeSecondFrameTime
		if diff > frameTimeWindowSeconds {
			diff = frameTimeWindowSeconds
		}
		t.frameTimes.Truncate(frameTimeWindowSeconds - int(diff))
		t.frameTimes.PushFront(frameTime)
	} else if cur := t.frameTimes.Front(); frameTime > *cur {
		*cur = frameTime
	}
	t.curWholeSecondFrameTime = wholeSecond
}

// MaxFrameTime returns the highest frame time over the frame-time window.
func (t *PredictionTimer) MaxFrameTime() time.Duration {
	var max time.Duration
	for i := 0; i < t.frameTimes.Len(); i++ {
		if ft := *t.frameTimes.At(i); ft > max {
			max = ft
		}
	}
	return max
}

// AddPacketStats adds packet counters (packets sent & packets lost) to the
// 2-second packet-loss window.
func (t *PredictionTimer) AddPacketStats(now monotime.Time, packetsSent, packetsLost uint64) {
	wholeSecond := now.WholeSeconds()
	if t.curWholeSecondStats > wholeSecond {
		wholeSecond = t.curWholeSecondStats
	}

	if wholeSecond > t.curWholeSecondStats {
		diff := wholeSecond - t.curWholeSecondStats
		if diff > packetStatsWindowSeconds {
			diff = packetStatsWindowSeconds
		}
		t.packetStats.Truncate(packetStatsWindowSeconds - int(diff))
		t.packetStats.PushFront(packetStats{sent: packetsSent, lost: packetsLost})
	} else {
		cur := t.packetStats.Front()
		cur.sent += packetsSent
		cur.lost += packetsLost
	}
	t.curWholeSecondStats = wholeSecond
}

// PacketLoss returns the loss ratio over the packet-stats window, in [0, 1].
func (t *PredictionTimer) PacketLoss() float64 {
	var sent, lost uint64
	for i := 0; i < t.packetStats.Len(); i++ {
		s := t.packetStats.At(i)
		sent += s.sent
		lost += s.lost
	}
	if sent == 0 {
		sent = 1
	}
	loss := float64(lost) / float64(sent)
	if loss > 1 {
		loss = 1
	}
	return loss
}

// extraTimeUnitsByPacketLoss maps the current packet loss to a tick-count
// margin, aiming for a 99% chance that an input isn't lost.
func (t *PredictionTimer) extraTimeUnitsByPacketLoss() uint64 {
	switch loss := t.PacketLoss(); {
	case loss > 0.75:
		// 20 is the maximum margin supported, such packet loss is
		// unlikely anyway
		return 20
	case loss > 0.5:
		return 16
	case loss > 0.1:
		return 7
	case loss > 0:
		return 2
	default:
		return 0
	}
}

// ExtraPredictionMarginByPacketLoss converts the packet-loss tick margin
// into a duration. tickTime is the time one simulation tick takes.
func (t *PredictionTimer) ExtraPredictionMarginByPacketLoss(tickTime time.Duration) time.Duration {
	return tickTime * time.Duration(t.extraTimeUnitsByPacketLoss())
}

// TimeUnitsToRespect is how many ticks of input to keep in flight to have a
// high chance that none are dropped. maxUnits must be at least 1.
func (t *PredictionTimer) TimeUnitsToRespect(tickTime time.Duration, maxUnits uint64) uint64 {
	units := uint64(t.calcJitterRange() / tickTime)
	if byLoss := t.extraTimeUnitsByPacketLoss(); byLoss > units {
		units = byLoss
	}
	if units < 1 {
		units = 1
	}
	if units > maxUnits {
		units = maxUnits
	}
	return units
}

// distRatio computes the damping factor for a timing deviation x relative
// to the expected range [min, max] around mid: deviations near mid are
// damped down to exp(-2), deviations at the range bounds pass through
// almost unscaled.
func distRatio(x, min, max, mid float64) float64 {
	relative := mid + x
	var dist float64
	if relative <= mid {
		d := mid - min
		if d < 0.00000001 {
			dist = math.MaxFloat64
		} else {
			dist = math.Abs(relative-mid) / d
		}
	} else {
		d := max - mid
		if d < 0.00000001 {
			dist = math.MaxFloat64
		} else {
			dist = math.Abs(relative-mid) / d
		}
	}

	const alpha = 2.0
	if dist < 0 {
		dist = 0
	} else if dist > 1 {
		dist = 1
	}
	exp := math.Exp(alpha*dist - alpha)
	if exp > 1 {
		exp = 1
	}
	return exp
}

// AddSnap prepares the smooth timer adjustment based on the likeliness of
// the snapshot being off the expected time. snapDiff is the observed timing
// error in seconds.
//
// Errors within the range implied by the ping jitter only accumulate into a
// rolling average that is applied every snapFarsight; errors outside of it
// mean an actual lag (by network, or because the client clock runs
// behind/fore) and force an immediate correction.
func (t *PredictionTimer) AddSnap(snapDiff float64, timestamp monotime.Time) {
	pingAvg := t.PingAverage().Seconds()/2 + NetMargin.Seconds()/2
	pingMin := t.PingMin().Seconds()/2 + NetMargin.Seconds()
	pingMax := t.PingMax().Seconds() / 2

	var lagWeight float64
	var forced bool
	if snapDiff > 0 && snapDiff > pingMax-pingAvg {
		lagWeight = snapDiff - (pingMax - pingAvg)
		forced = true
	} else if snapDiff < 0 && -snapDiff > pingAvg-pingMin {
		lagWeight = (pingAvg - pingMin) + snapDiff
		forced = true
	}

	if forced || timestamp.After(t.lastSnapTime.Add(t.snapFarsight())) {
		t.lastSnapTime = timestamp
		var adjustFactor float64
		if t.lastSnapsAverageCount != 0 {
			adjustFactor = t.lastSnapsAverage / float64(t.lastSnapsAverageCount)
		}
		if forced {
			t.lastForcedWeight = lagWeight
			adjustFactor = lagWeight
			t.lastSnapsAverage, t.lastSnapsAverageCount = 0, 0
		} else {
			t.lastSnapsAverage, t.lastSnapsAverageCount = snapDiff, 1
			adjustFactor = distRatio(adjustFactor, pingMin, pingMax, pingAvg) * adjustFactor
		}
		t.smoothAdjustmentTime = adjustFactor
	} else {
		t.lastSnapsAverage += snapDiff
		t.lastSnapsAverageCount++
	}
}

// PredMaxSmooth is the time the average snapshot should balance on, i.e.
// how far ahead of the last authoritative state to predict. tickTime is the
// time one simulation tick takes.
//
// Every call decays the smoothed max-ping slack by 10%, clamped to a ±0.01
// step, so a single ping spike cannot permanently inflate the margin.
func (t *PredictionTimer) PredMaxSmooth(tickTime time.Duration) time.Duration {
	maxPing := t.PingMax()/2 + FrameMargin
	maxFrameTime := t.MaxFrameTime() + FrameMargin
	packetLossTime := t.ExtraPredictionMarginByPacketLoss(tickTime)

	decay := t.smoothMaxPing * 0.1
	if decay > 0.01 {
		decay = 0.01
	} else if decay < -0.01 {
		decay = -0.01
	}
	t.smoothMaxPing -= decay

	pred := maxPing.Seconds() + maxFrameTime.Seconds() + t.smoothMaxPing + packetLossTime.Seconds()
	if pred < 0 {
		pred = 0
	}
	return time.Duration(pred * float64(time.Second))
}

// SmoothAdjustmentTime is how much a single frame should adjust the
// prediction time, in seconds. The pending correction is drained
// proportionally to 1/fps, so it spreads evenly across the frames of the
// current second.
func (t *PredictionTimer) SmoothAdjustmentTime() float64 {
	frameTime := t.MaxFrameTime().Seconds()
	if frameTime < 0.000001 {
		frameTime = 0.000001
	}
	fps := 1 / frameTime

	res := t.smoothAdjustmentTime / fps
	t.smoothAdjustmentTime -= res
	return res
}

// Stats takes a snapshot of the timer state. Useful for debugging.
func (t *PredictionTimer) Stats() Stats {
	return Stats{
		PingMax:          t.PingMax(),
		PingMin:          t.PingMin(),
		PingAverage:      t.PingAverage(),
		JitterRange:      t.jitterRange,
		PacketLoss:       t.PacketLoss(),
		MaxFrameTime:     t.MaxFrameTime(),
		SmoothMaxPing:    t.smoothMaxPing,
		LastForcedWeight: t.lastForcedWeight,
	}
}

// PendingAdjustment returns the not yet drained timer correction, in
// seconds. Only for debugging.
func (t *PredictionTimer) PendingAdjustment() float64 { return t.smoothAdjustmentTime }

// JitterRange returns the current jitter range estimate.
func (t *PredictionTimer) JitterRange() time.Duration { return t.jitterRange }
