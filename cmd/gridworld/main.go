package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/behave/examples/gridworld"
	"github.com/zeusync/behave/internal/core/agent"
	"github.com/zeusync/behave/internal/core/events"
	"github.com/zeusync/behave/internal/core/observability/log"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	size := flag.Int("size", 12, "grid width and height")
	traps := flag.Int("traps", 8, "number of traps")
	artifacts := flag.Int("artifacts", 6, "number of artifacts")
	tick := flag.Duration("tick", 200*time.Millisecond, "tick interval")
	debug := flag.Bool("debug", false, "log every tick")
	flag.Parse()

	level := log.LevelInfo
	if *debug {
		level = log.LevelDebug
	}
	logger := log.New(level)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	world := gridworld.NewWorldRandom(*size, *size, *traps, *artifacts, rng)
	robot := gridworld.NewRobot(world, (*size)*(*size), rng)
	tree, err := robot.BuildTree()
	if err != nil {
		logger.Error("tree build failed", log.Err(err))
		os.Exit(1)
	}

	bus := events.NewBus()
	a := agent.New("robot", tree, agent.WithLogger(logger), agent.WithBus(bus))
	manager := agent.NewManager(logger)
	if err := manager.Add(a); err != nil {
		logger.Error("agent registration failed", log.Err(err))
		os.Exit(1)
	}

	hub := gridworld.NewHub(logger)
	tickNo := 0
	bus.Subscribe(func(ev events.TickEvent) {
		tickNo++
		frame := gridworld.Frame{
			Tick:      tickNo,
			Status:    ev.Status.String(),
			X:         robot.X,
			Y:         robot.Y,
			Energy:    robot.Energy,
			Artifacts: robot.Artifacts,
			Grid:      world.Snapshot(),
		}
		payload, err := json.Marshal(frame)
		if err != nil {
			logger.Warn("frame encode failed", log.Err(err))
			return
		}
		hub.Broadcast(payload)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		ticker := time.NewTicker(*tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := manager.Update(ctx); err != nil {
					logger.Error("update failed", log.Err(err))
					return
				}
			}
		}
	}()

	http.HandleFunc("/ws", hub.ServeWS)
	server := &http.Server{Addr: *addr}
	go func() {
		logger.Info("listening", log.String("addr", *addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed", log.Err(err))
			cancel()
		}
	}()

	select {
	case <-stopCh:
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
