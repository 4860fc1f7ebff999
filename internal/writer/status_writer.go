// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/panelmon/internal/status"
)

const statusAreaHoldingRegisters byte = 3

// deviceStatusWriter delivers the status block of one panel.
// The first successful write asserts the whole block (device name included);
// after that only slots that changed are written.
type deviceStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// NewDeviceStatusWriter builds a status writer bound to one client.
func NewDeviceStatusWriter(plan StatusPlan, cli endpointClient) (*deviceStatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	if uint32(plan.BaseSlot)*status.SlotsPerDevice+status.SlotsPerDevice-1 > 0xFFFF {
		return nil, fmt.Errorf("status writer: slot %d out of register range", plan.BaseSlot)
	}

	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Encode(status.Snapshot{Health: status.HealthUnknown}),
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}, nil
}

// WriteStatus delivers a status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	regs := status.Encode(s)
	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		full := sw.fullBlockRegs(regs)

		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			sw.plan.UnitID,
			baseAddr,
			full,
		); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per run of adjacent changed slots
	// ------------------------------------------------------------
	var errs []string

	for lo := 0; lo <= status.SlotLiveEnd; lo++ {
		if regs[lo] == sw.last[lo] {
			continue
		}
		hi := lo
		for hi+1 <= status.SlotLiveEnd && regs[hi+1] != sw.last[hi+1] {
			hi++
		}

		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			sw.plan.UnitID,
			baseAddr+uint16(lo),
			regs[lo:hi+1],
		); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", lo, hi, err))
		} else {
			copy(sw.last[lo:hi+1], regs[lo:hi+1])
		}

		lo = hi
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each panel owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerDevice)
	copy(regs, live[:status.SlotLiveEnd+1])

	// Slots 9-10 are RESERVED and left as zero.

	// Device name always lives at the end of the block
	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)

	return regs
}
