// Package diagnostics exposes process health alongside the door's
// status string, for a presentation layer's health panel. It samples
// CPU and memory through gopsutil the same way the teacher's
// supervisor reports per-process metrics.
package diagnostics

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sua-org/smart-door/internal/coredoor"
)

// Snapshot is one point-in-time reading combining process health with
// the door's current status.
type Snapshot struct {
	Hostname    string
	CPUPercent  float64
	MemRSSBytes uint64
	MemPercent  float32
	DoorStatus  string
	TakenAt     time.Time
}

// Sampler reads process metrics via gopsutil. Construct with New; a
// zero-value or nil Sampler yields snapshots with the door status but
// no process metrics.
type Sampler struct {
	proc *process.Process
}

// New constructs a Sampler for the current process.
func New() (*Sampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Sampler{proc: p}, nil
}

// Sample reads current process metrics and combines them with the
// door status derived from model at now.
func (s *Sampler) Sample(model coredoor.Model, now time.Time) Snapshot {
	hostname, _ := os.Hostname()

	snap := Snapshot{
		Hostname:   hostname,
		DoorStatus: coredoor.FormatDoorStatus(model, now),
		TakenAt:    now,
	}

	if s == nil || s.proc == nil {
		return snap
	}

	if cpu, err := s.proc.CPUPercent(); err == nil {
		snap.CPUPercent = cpu
	}
	if memInfo, err := s.proc.MemoryInfo(); err == nil && memInfo != nil {
		snap.MemRSSBytes = memInfo.RSS
	}
	if memP, err := s.proc.MemoryPercent(); err == nil {
		snap.MemPercent = memP
	}

	return snap
}
