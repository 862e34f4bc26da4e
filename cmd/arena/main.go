// =============================================================================
// ARENA - WINDOWED GAME
// =============================================================================
// Ships, bullets and splitting meteors on a wrap-around field.
//
// The ebiten frame clock drives the simulation: one Update is one tick, so
// the tick rate is the configured FPS. Keyboard seats are registered at
// startup and gamepads join as ebiten reports them. Press fire to spawn a
// ship, Q to quit.
//
// USAGE:
//
//	go run ./cmd/arena
//	ARENA_TUNING=tuning.yaml go run ./cmd/arena   (hot-reloaded on save)
//
// =============================================================================
package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/api"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/game"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/input"
	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/render"
)

// arena adapts the engine to ebiten's game loop.
type arena struct {
	engine    *game.Engine
	discovery *input.Discovery
	renderer  *render.Renderer
	width     int
	height    int
}

func (a *arena) Update() error {
	if input.QuitRequested() {
		return ebiten.Termination
	}
	a.discovery.Sync(a.engine)
	a.engine.Step()
	return nil
}

func (a *arena) Draw(screen *ebiten.Image) {
	start := time.Now()
	img := a.renderer.Render(a.engine.GetSnapshot())
	screen.WritePixels(img.Pix)
	api.RecordRender(time.Since(start))
}

func (a *arena) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🎮 ================================")
	log.Println("🎮  ARENA")
	log.Println("🎮 ================================")

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	display := appConfig.Display
	width, height := display.Resolution()
	domainW, domainH := display.Domain()
	log.Printf("🖥️ Display: %dx%d @ %d FPS, field %.3f x %.3f", width, height, display.FPS, domainW, domainH)
	log.Printf("🛡️ Resource limits: %d ships, %d meteors, %d controllers",
		appConfig.Limits.MaxShips, appConfig.Limits.MaxMeteors, appConfig.Limits.MaxControllers)

	engineCfg := game.EngineConfigFrom(appConfig)
	engineCfg.Clock = game.NewFrameClock()
	engine := game.NewEngine(engineCfg)

	engine.OnEvent(api.RecordEvent)
	engine.OnTick(func(d time.Duration) {
		api.RecordTick(d)
		api.ObserveSnapshot(engine.GetSnapshot())
	})

	for _, keys := range []input.KeyMap{input.ArrowKeys, input.WASDKeys} {
		if _, err := engine.AddController(input.NewKeyboard(keys)); err != nil {
			log.Printf("⚠️ Keyboard %s not added: %v", keys.Name, err)
		}
	}

	debug := api.StartDebugServer(engine, appConfig.Observability)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
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

	ebiten.SetWindowTitle("Arena")
	ebiten.SetWindowSize(width, height)
	ebiten.SetFullscreen(display.Fullscreen)
	ebiten.SetTPS(display.FPS)

	g := &arena{
		engine:    engine,
		discovery: input.NewDiscovery(),
		renderer:  render.NewRenderer(width, height, display.Scale()),
		width:     width,
		height:    height,
	}

	log.Println("✅ Ready! Press fire to launch a ship, Q to quit.")
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("❌ Game loop: %v", err)
	}

	log.Println("🛑 Shutting down...")
	cancel()
	if debug != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		debug.Shutdown(shutdownCtx)
	}
	log.Println("👋 Goodbye!")
}
