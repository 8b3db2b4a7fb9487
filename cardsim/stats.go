// Package cardsim encodes batch simulation statistics as FlatBuffers so
// other tools can read them without this module.
//
// Table layout, by slot:
//
//	 0 batch_id:string          1 total_games:uint32
//	 2 wins:[uint32]            3 draws:uint32
//	 4 loops:uint32             5 turn_limits:uint32
//	 6 endings:[uint32]         7 avg_turns:float32
//	 8 median_turns:uint32      9 total_wars:uint64
//	10 longest_war:uint32      11 avg_duration_ns:uint64
//	12 errors:uint32           13 lead_changes:uint32
//	14 decisive_turn_pct:float32
//	15 closest_margin:float32  16 trailing_winners:uint32
//
// endings is indexed by game.Reason.
package cardsim

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/ismaeelS/WarCardGame/simulation"
)

// FileIdentifier marks buffers produced by EncodeStats.
const FileIdentifier = "WARS"

var ErrInvalidBuffer = errors.New("invalid stats buffer")

const (
	slotBatchID = iota
	slotTotalGames
	slotWins
	slotDraws
	slotLoops
	slotTurnLimits
	slotEndings
	slotAvgTurns
	slotMedianTurns
	slotTotalWars
	slotLongestWar
	slotAvgDurationNs
	slotErrors
	slotLeadChanges
	slotDecisiveTurnPct
	slotClosestMargin
	slotTrailingWinners
	numSlots
)

// EncodeStats serializes stats under batchID.
func EncodeStats(batchID string, stats simulation.AggregatedStats) []byte {
	builder := flatbuffers.NewBuilder(256)

	// Strings and vectors must be created before the table.
	idOffset := builder.CreateString(batchID)
	winsOffset := uint32Vector(builder, stats.Wins[:])
	endingsOffset := uint32Vector(builder, stats.Endings[:])

	builder.StartObject(numSlots)
	builder.PrependUOffsetTSlot(slotBatchID, idOffset, 0)
	builder.PrependUint32Slot(slotTotalGames, stats.TotalGames, 0)
	builder.PrependUOffsetTSlot(slotWins, winsOffset, 0)
	builder.PrependUint32Slot(slotDraws, stats.Draws, 0)
	builder.PrependUint32Slot(slotLoops, stats.Loops, 0)
	builder.PrependUint32Slot(slotTurnLimits, stats.TurnLimits, 0)
	builder.PrependUOffsetTSlot(slotEndings, endingsOffset, 0)
	builder.PrependFloat32Slot(slotAvgTurns, stats.AvgTurns, 0)
	builder.PrependUint32Slot(slotMedianTurns, stats.MedianTurns, 0)
	builder.PrependUint64Slot(slotTotalWars, stats.TotalWars, 0)
	builder.PrependUint32Slot(slotLongestWar, stats.LongestWar, 0)
	builder.PrependUint64Slot(slotAvgDurationNs, stats.AvgDurationNs, 0)
	builder.PrependUint32Slot(slotErrors, stats.Errors, 0)
	builder.PrependUint32Slot(slotLeadChanges, stats.LeadChanges, 0)
	builder.PrependFloat32Slot(slotDecisiveTurnPct, stats.DecisiveTurnPct, 0)
	builder.PrependFloat32Slot(slotClosestMargin, stats.ClosestMargin, 0)
	builder.PrependUint32Slot(slotTrailingWinners, stats.TrailingWinners, 0)
	root := builder.EndObject()

	builder.FinishWithFileIdentifier(root, []byte(FileIdentifier))
	return builder.FinishedBytes()
}

func uint32Vector(builder *flatbuffers.Builder, values []uint32) flatbuffers.UOffsetT {
	builder.StartVector(flatbuffers.SizeUint32, len(values), flatbuffers.SizeUint32)
	// Add in reverse order (FlatBuffers convention)
	for i := len(values) - 1; i >= 0; i-- {
		builder.PrependUint32(values[i])
	}
	return builder.EndVector(len(values))
}

// DecodeStats reads a buffer written by EncodeStats.
func DecodeStats(buf []byte) (batchID string, stats simulation.AggregatedStats, err error) {
	idEnd := flatbuffers.SizeUOffsetT + len(FileIdentifier)
	if len(buf) < idEnd || string(buf[flatbuffers.SizeUOffsetT:idEnd]) != FileIdentifier {
		return "", stats, ErrInvalidBuffer
	}
	root := flatbuffers.GetUOffsetT(buf)
	if int(root)+flatbuffers.SizeSOffsetT > len(buf) {
		return "", stats, fmt.Errorf("%w: root offset %d out of range", ErrInvalidBuffer, root)
	}

	// The table accessors index without bounds checks of their own.
	defer func() {
		if r := recover(); r != nil {
			batchID, stats = "", simulation.AggregatedStats{}
			err = fmt.Errorf("%w: %v", ErrInvalidBuffer, r)
		}
	}()

	t := table{flatbuffers.Table{Bytes: buf, Pos: root}}
	batchID = t.getString(slotBatchID)
	stats = simulation.AggregatedStats{
		TotalGames:    t.getUint32(slotTotalGames),
		Draws:         t.getUint32(slotDraws),
		Loops:         t.getUint32(slotLoops),
		TurnLimits:    t.getUint32(slotTurnLimits),
		AvgTurns:      t.getFloat32(slotAvgTurns),
		MedianTurns:   t.getUint32(slotMedianTurns),
		TotalWars:     t.getUint64(slotTotalWars),
		LongestWar:    t.getUint32(slotLongestWar),
		AvgDurationNs: t.getUint64(slotAvgDurationNs),
		Errors:        t.getUint32(slotErrors),

		LeadChanges:     t.getUint32(slotLeadChanges),
		DecisiveTurnPct: t.getFloat32(slotDecisiveTurnPct),
		ClosestMargin:   t.getFloat32(slotClosestMargin),
		TrailingWinners: t.getUint32(slotTrailingWinners),
	}
	t.readUint32s(slotWins, stats.Wins[:])
	t.readUint32s(slotEndings, stats.Endings[:])
	return batchID, stats, nil
}

type table struct {
	flatbuffers.Table
}

// field returns the absolute position of slot's value, or 0 when absent.
func (t table) field(slot int) flatbuffers.UOffsetT {
	o := flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(4 + 2*slot)))
	if o == 0 {
		return 0
	}
	return o + t.Pos
}

func (t table) getUint32(slot int) uint32 {
	if o := t.field(slot); o != 0 {
		return t.GetUint32(o)
	}
	return 0
}

func (t table) getUint64(slot int) uint64 {
	if o := t.field(slot); o != 0 {
		return t.GetUint64(o)
	}
	return 0
}

func (t table) getFloat32(slot int) float32 {
	if o := t.field(slot); o != 0 {
		return t.GetFloat32(o)
	}
	return 0
}

func (t table) getString(slot int) string {
	if o := t.field(slot); o != 0 {
		return string(t.ByteVector(o))
	}
	return ""
}

// readUint32s copies slot's vector into dst. Extra elements are ignored.
func (t table) readUint32s(slot int, dst []uint32) {
	o := t.field(slot)
	if o == 0 {
		return
	}
	start := o + t.GetUOffsetT(o) + flatbuffers.SizeUOffsetT
	n := t.VectorLen(o - t.Pos)
	for i := 0; i < n && i < len(dst); i++ {
		dst[i] = t.GetUint32(start + flatbuffers.UOffsetT(i*flatbuffers.SizeUint32))
	}
}
