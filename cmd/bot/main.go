// Package main is the entry point for PancyGuard Go.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/internal/events"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
	"github.com/PancyStudios/PancyGuardGo/pkg/web"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System(fmt.Sprintf("Iniciando PancyGuard Go %s (%s)...", config.Version, config.BuildTime), "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})

	// The database is only needed by the mongo storage backend
	var db *database.Database
	if cfg.UsesMongo() {
		db, err = database.Init(cfg.MongoDBURL, cfg.DBName)
		if err != nil {
			logger.Critical(fmt.Sprintf("Error connecting to database: %v", err), "Main")
			os.Exit(1)
		}
		defer func() { _ = db.Disconnect() }()
	}

	backend, err := engine.NewBackend(cfg, db)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error preparando el almacenamiento: %v", err), "Main")
		os.Exit(1)
	}

	deps := engine.Deps{Backend: backend}

	var mqttClient *mqtt.MqttCommunicator
	if cfg.MQTTEnabled() {
		mqttClientID := "pancyguard"
		if !cfg.IsProd() {
			mqttClientID = "pancyguard_canary"
		}
		mqttClient = mqtt.Init(cfg.MQTTHost, cfg.MQTTPort, cfg.MQTTUser, cfg.MQTTPassword, mqttClientID)
		defer mqttClient.Destroy()
		deps.Publisher = mqttClient
	}

	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}
	deps.Notifier = discord.NewNotifier(discordClient.Session, cfg.AuditChannel)

	eng, err := engine.New(cfg, deps)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creando el motor de moderación: %v", err), "Main")
		os.Exit(1)
	}
	discordClient.Engine = eng

	if mqttClient != nil {
		mqttClient.RegisterQueries(eng)
	}

	commands.RegisterAll(discordClient)
	events.RegisterAll(discordClient)

	webServer, err := web.NewServer(cfg.LogsWebhook, cfg.WebAllowedHosts)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creando el servidor web: %v", err), "Main")
		os.Exit(1)
	}
	var dbStatus web.DBStatus
	if db != nil {
		dbStatus = db
	}
	web.SetupAPIRoutes(webServer, eng, discordClient, dbStatus)
	webServer.StartAsync(cfg.Port)

	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func() { _ = discordClient.Stop() }()

	stopSweeper := eng.StartSweeper(sweepInterval)
	defer stopSweeper()

	stopLimiterSweep := sweepLimiter(webServer)
	defer stopLimiterSweep()

	logger.Success("PancyGuard Go iniciado correctamente!", "Main")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyGuard Go...", "Main")
}

// sweepLimiter drops idle web rate limit windows until the returned func is called
func sweepLimiter(s *web.Server) func() {
	ticker := time.NewTicker(sweepInterval)
	done := make(chan struct{})
	errors.Go(func() {
		for {
			select {
			case now := <-ticker.C:
				s.SweepLimiter(now)
			case <-done:
				return
			}
		}
	})
	return func() {
		ticker.Stop()
		close(done)
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
