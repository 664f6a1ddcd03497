// Command simrun runs the fluid simulator headless, for
// logging/benchmarking without a renderer attached.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/mlsmpm/config"
	"github.com/pthm-cable/mlsmpm/sim"
	"github.com/pthm-cable/mlsmpm/telemetry"
	"github.com/pthm-cable/mlsmpm/vecmath"
)

var (
	configDir   = flag.String("config", "", "Directory containing constants.json/tank.json (empty = embedded defaults)")
	outputDir   = flag.String("output", "", "Directory for telemetry.csv/perf.csv/config.json (empty = disabled)")
	maxTicks    = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	logInterval = flag.Int("log", 600, "Write a telemetry/perf window every N ticks (0 = disabled)")
	seed        = flag.Int64("seed", 42, "RNG seed for spray bar sampling")
)

func main() {
	flag.Parse()

	if err := config.Init(*configDir); err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	s, err := sim.NewSimulation(cfg)
	if err != nil {
		slog.Error("building simulation", "err", err)
		os.Exit(1)
	}
	s.SeedSpray(uint64(*seed))

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("opening output directory", "err", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("writing config snapshot", "err", err)
	}

	dt := cfg.Constants.WorldDT

	startTime := time.Now()
	lastReport := startTime
	reportInterval := 10 * time.Second

	var tick int
	for {
		if *maxTicks > 0 && tick >= *maxTicks {
			slog.Info("reached max ticks, stopping", "ticks", tick)
			break
		}

		s.Tick(dt)
		tick++

		if *logInterval > 0 && tick%*logInterval == 0 {
			writeWindow(s, om, int32(tick), float64(tick)*dt)
		}

		if time.Since(lastReport) >= reportInterval {
			elapsed := time.Since(startTime)
			tps := float64(tick) / elapsed.Seconds()
			fmt.Printf("[progress] tick %d | %.0f ticks/sec | particles=%d | elapsed %s\n",
				tick, tps, s.ParticleCount(), elapsed.Round(time.Second))
			lastReport = time.Now()
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nrun complete: %d ticks in %s (%.0f ticks/sec avg)\n",
		tick, elapsed.Round(time.Millisecond), float64(tick)/elapsed.Seconds())
}

func writeWindow(s *sim.Simulation, om *telemetry.OutputManager, tick int32, simTime float64) {
	views := s.Particles()
	speeds := make([]float64, len(views))
	for i, v := range views {
		speeds[i] = vecmath.Norm(v.Velocity)
	}
	fluidN, solidN := len(s.Store.Fluid), len(s.Store.Solid)

	mean, p10, p50, p90, max := telemetry.SpeedStats(speeds)
	mom := s.TotalMomentum()

	stats := telemetry.WindowStats{
		WindowEndTick:  tick,
		SimTimeSec:     simTime,
		FluidParticles: fluidN,
		SolidParticles: solidN,
		TotalMass:      s.TotalMass(),
		TotalMomentumX: mom.X,
		TotalMomentumY: mom.Y,
		TotalMomentumZ: mom.Z,
		SpeedMean:      mean,
		SpeedP10:       p10,
		SpeedP50:       p50,
		SpeedP90:       p90,
		MaxSpeed:       max,
		DroppedInflow:  s.DroppedInflow(),
		PumpTeleports:  s.PumpTeleports(),
	}
	stats.LogStats()

	if err := om.WriteTelemetry(stats); err != nil {
		slog.Warn("writing telemetry window", "err", err)
	}
	if err := om.WritePerf(s.Perf().Stats(), tick); err != nil {
		slog.Warn("writing perf window", "err", err)
	}
}

