// cmd/smart-door/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sua-org/smart-door/internal/camera"
	"github.com/sua-org/smart-door/internal/classifier"
	"github.com/sua-org/smart-door/internal/config"
	"github.com/sua-org/smart-door/internal/coredoor"
	"github.com/sua-org/smart-door/internal/diagnostics"
	doorpkg "github.com/sua-org/smart-door/internal/door"
	"github.com/sua-org/smart-door/internal/interpreter"
	"github.com/sua-org/smart-door/internal/supervisor"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (defaults baked in if omitted)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[main] warning: could not load .env: %v", err)
	} else {
		log.Printf("[main] .env loaded")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] invalid configuration: %v", err)
	}

	cam, err := camera.GetDriver(camera.Info{
		Manufacturer: getenv("CAMERA_MANUFACTURER", "fake"),
		Model:        getenv("CAMERA_MODEL", "any"),
		Address:      os.Getenv("CAMERA_ADDRESS"),
	})
	if err != nil {
		log.Fatalf("[main] camera driver: %v", err)
	}

	dr, err := doorpkg.GetDriver(doorpkg.Info{
		Manufacturer: getenv("DOOR_MANUFACTURER", "fake"),
		Model:        getenv("DOOR_MODEL", "any"),
		Address:      os.Getenv("DOOR_ADDRESS"),
	})
	if err != nil {
		log.Fatalf("[main] door driver: %v", err)
	}

	clsManager := classifier.LoadFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cam.Start(ctx); err != nil {
		log.Fatalf("[main] camera start: %v", err)
	}
	defer cam.Stop()

	if err := dr.Start(ctx); err != nil {
		log.Fatalf("[main] door start: %v", err)
	}
	defer dr.Stop()

	interp := interpreter.New(interpreter.Collaborators{
		Camera:     cam,
		Door:       dr,
		Classifier: clsManager,
	}, cfg)

	sup := supervisor.New(interp, cfg)
	sup.Start(ctx)

	sampler, err := diagnostics.New()
	if err != nil {
		log.Printf("[main] warning: diagnostics unavailable: %v", err)
	}
	stopStatusLog := logDoorStatusPeriodically(sup, sampler)
	defer stopStatusLog()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	<-sig
	log.Println("[main] signal received, shutting down...")
	sup.Stop()
	cancel()
	time.Sleep(200 * time.Millisecond)
}

// logDoorStatusPeriodically subscribes to the supervisor's model
// stream and logs a diagnostics snapshot on every change, the way a
// presentation layer's health panel would consume it. It returns a
// stop function that unsubscribes and suppresses any further log
// lines.
func logDoorStatusPeriodically(sup *supervisor.Supervisor, sampler *diagnostics.Sampler) func() {
	done := make(chan struct{})
	unsubscribe := sup.Models().Subscribe(func(model coredoor.Model) {
		select {
		case <-done:
			return
		default:
		}
		snap := sampler.Sample(model, time.Now())
		log.Printf("[main] %s (cpu=%.1f%% rss=%dMiB)", snap.DoorStatus, snap.CPUPercent, snap.MemRSSBytes/(1024*1024))
	})
	return func() {
		close(done)
		unsubscribe()
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
