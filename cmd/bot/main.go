package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GroupBank/internal/alias"
	"GroupBank/internal/bank"
	"GroupBank/internal/command"
	"GroupBank/internal/config"
	"GroupBank/internal/gateway"
	"GroupBank/internal/policy"
	"GroupBank/internal/scheduler"
	"GroupBank/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] GroupBank starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using memory store: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewMemoryStore()
	}

	// Init registry
	settings := bank.Settings{
		MaxStamina:    cfg.Economy.MaxStamina,
		RegenInterval: time.Duration(cfg.Economy.RegenSeconds) * time.Second,
		ClampBoxCount: cfg.Economy.ClampBoxCount,
	}
	registry := bank.NewRegistry(st, settings)
	if err := registry.Load(); err != nil {
		log.Fatalf("[FATAL] load registry: %v", err)
	}

	// Init daily cycle
	cycle := bank.NewDailyCycle(st, bank.CycleSettings{
		DailyBase:    cfg.Economy.DailyBase,
		PoolBase:     cfg.Economy.PoolBase,
		EarlyBirdCap: cfg.Economy.EarlyBirdCap,
	}, nil)
	if err := cycle.Restore(); err != nil {
		log.Fatalf("[FATAL] restore daily cycle: %v", err)
	}

	// Load alias directory (used by admin tooling; the bot runs fine without it)
	if cfg.AliasFile != "" {
		if dir, err := alias.Load(cfg.AliasFile); err != nil {
			log.Printf("[WARN] load alias directory: %v", err)
		} else {
			log.Printf("[INFO] alias directory ready, %d entries", dir.Len())
		}
	}

	// Init group policy
	rules := make(map[int64]policy.GroupRule, len(cfg.Groups))
	for _, g := range cfg.Groups {
		rules[g.ID] = policy.GroupRule{Currency: g.Currency, Daily: g.Daily}
	}
	pol := policy.New(rules, policy.GroupRule{
		Currency: cfg.DefaultGroupEnabled,
		Daily:    cfg.DefaultGroupEnabled,
	})

	// Init gateway
	gw := gateway.NewClient(cfg.Mirai.BaseURL, cfg.Mirai.VerifyKey, cfg.Mirai.BotQQ)
	if err := gw.Connect(); err != nil {
		log.Fatalf("[FATAL] connect mirai: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init command handling
	handler := command.NewHandler(registry, cycle, pol, cfg.Economy.InitialBalance)
	dispatcher := gateway.NewDispatcher(handler, pol, cfg.Economy.MaxStamina)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cycle, gw, pol)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start message polling
	go gw.Poll(ctx, dispatcher.Handle)
	log.Println("[INFO] mirai polling started")

	// Optional: advance the cycle immediately on start
	if os.Getenv("ADVANCE_ON_START") == "true" {
		log.Println("[INFO] ADVANCE_ON_START enabled, advancing daily cycle now")
		go sched.AdvanceNow()
	}

	log.Println("[INFO] GroupBank is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] GroupBank stopped")
}
