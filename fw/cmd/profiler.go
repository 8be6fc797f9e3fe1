package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/named-data/ndnfw/fw/core"
)

// Profiler writes the pprof profiles requested on the command line.
type Profiler struct {
	config  *core.Config
	cpuFile *os.File
	block   *pprof.Profile
}

func NewProfiler(config *core.Config) *Profiler {
	return &Profiler{config: config}
}

func (p *Profiler) String() string {
	return "profiler"
}

// Start begins CPU and block profiling if configured.
func (p *Profiler) Start() error {
	if p.config.Core.CpuProfile != "" {
		f, err := os.Create(p.config.Core.CpuProfile)
		if err != nil {
			return fmt.Errorf("unable to open output file for CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("unable to start CPU profile: %w", err)
		}
		p.cpuFile = f
		core.Log.Info(p, "Profiling CPU", "out", p.config.Core.CpuProfile)
	}

	if p.config.Core.BlockProfile != "" {
		core.Log.Info(p, "Profiling blocking operations", "out", p.config.Core.BlockProfile)
		runtime.SetBlockProfileRate(1)
		p.block = pprof.Lookup("block")
	}

	return nil
}

// Stop writes the block and memory profiles and ends CPU profiling.
func (p *Profiler) Stop() {
	if p.block != nil {
		if err := writeProfile(p.config.Core.BlockProfile, func(w io.Writer) error {
			return p.block.WriteTo(w, 0)
		}); err != nil {
			core.Log.Error(p, "Unable to write block profile", "err", err)
		}
		runtime.SetBlockProfileRate(0)
		p.block = nil
	}

	if p.config.Core.MemProfile != "" {
		core.Log.Info(p, "Profiling memory", "out", p.config.Core.MemProfile)
		runtime.GC()
		if err := writeProfile(p.config.Core.MemProfile, pprof.WriteHeapProfile); err != nil {
			core.Log.Error(p, "Unable to write memory profile", "err", err)
		}
	}

	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
	}
}

func writeProfile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
