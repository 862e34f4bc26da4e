// =============================================================================
// ARENA - HEADLESS SOAK
// =============================================================================
// Runs the simulation on the engine's own ticker with scripted pilots in
// every ship seat. No window is opened: frames are dumped as PNG files and
// the state is inspected through the debug server.
//
// USAGE:
//
//	go run ./cmd/soak
//	SOAK_DURATION=10m SOAK_FRAMES_DIR=/tmp/frames go run ./cmd/soak
//	curl http://127.0.0.1:6060/debug/stats
//
// =============================================================================
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/api"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/input"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/render"
)

// scriptStagger offsets each pilot's script so ships do not move in lockstep
const scriptStagger = 17

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	}

	log.Println("🎮 ================================")
	log.Println("🎮  ARENA - HEADLESS SOAK")
	log.Println("🎮 ================================")

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}

	framesDir := getEnvWithDefault("SOAK_FRAMES_DIR", "frames")
	frameEvery := getEnvDuration("SOAK_FRAME_EVERY", time.Second)
	framesKept := getEnvInt("SOAK_FRAMES_KEPT", 10)
	duration := getEnvDuration("SOAK_DURATION", 0)
	pilots := getEnvInt("SOAK_PILOTS", appConfig.Limits.MaxShips)

	engineCfg := game.EngineConfigFrom(appConfig)
	engineCfg.Seed = int64(getEnvInt("SOAK_SEED", 0))
	engine := game.NewEngine(engineCfg)

	engine.OnEvent(api.RecordEvent)
	engine.OnTick(func(d time.Duration) {
		api.RecordTick(d)
		api.ObserveSnapshot(engine.GetSnapshot())
	})

	for i := 0; i < pilots; i++ {
		script := input.DefaultPatrol()
		for j := 0; j < i*scriptStagger; j++ {
			script.Poll()
		}
		if _, err := engine.AddController(script); err != nil {
			log.Printf("⚠️ Pilot %d not added: %v", i, err)
			break
		}
	}

	width, height := appConfig.Display.Resolution()
	dumper := render.NewFrameDumper(engine, render.NewRenderer(width, height, appConfig.Display.Scale()),
		framesDir, frameEvery, framesKept)
	dumper.OnFrame(api.RecordRender)
	log.Printf("🖼️ Frames: %s every %v (%d kept)", framesDir, frameEvery, framesKept)

	debug := api.StartDebugServer(engine, appConfig.Observability)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := dumper.Run(ctx); err != nil {
			log.Printf("⚠️ Frame dumper stopped: %v", err)
		}
	}()

	if appConfig.TuningPath != "" {
		go func() {
			log.Printf("🔧 Watching tuning file %s", appConfig.TuningPath)
			err := config.WatchTuning(ctx, appConfig.TuningPath, func(t config.Tuning) {
				if err := engine.ApplyTuning(t); err != nil {
					log.Printf("⚠️ Tuning rejected: %v", err)
				}
			})
			if err != nil {
				log.Printf("⚠️ Tuning watcher stopped: %v", err)
			}
		}()
	}

	engine.Start()
	go reportStats(ctx, engine, 10*time.Second)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var deadline <-chan time.Time
	if duration > 0 {
		log.Printf("⏱️ Running for %v", duration)
		deadline = time.After(duration)
	}

	log.Println("✅ Soak running! Press Ctrl+C to stop.")
	select {
	case <-quit:
	case <-deadline:
	}

	log.Println("🛑 Shutting down...")
	cancel()
	engine.Stop()
	if debug != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		debug.Shutdown(shutdownCtx)
	}

	events := engine.Events()
	log.Printf("📊 %d ticks, %d events (%d dropped)", engine.TickCount(), events.GetTotalCount(), events.GetDroppedCount())
	log.Println("👋 Goodbye!")
}

// reportStats logs population counts periodically
func reportStats(ctx context.Context, engine *game.Engine, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var snap game.GameSnapshot
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			engine.SnapshotInto(&snap)
			log.Printf("📈 Tick %d: %d ships, %d bullets, %d meteors",
				snap.TickNumber, len(snap.Ships), len(snap.Bullets), len(snap.Meteors))
		}
	}
}

func getEnvWithDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
