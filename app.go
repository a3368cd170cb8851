package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-text-bot/internal/bot"
	"pizza-text-bot/internal/catalog"
	"pizza-text-bot/internal/config"
	"pizza-text-bot/internal/gateway"
	"pizza-text-bot/internal/logger"
	"pizza-text-bot/internal/session"
	"pizza-text-bot/internal/storage"

	"github.com/gin-gonic/gin"
	"gopkg.in/fsnotify.v1"
)

func main() {
	var (
		cnf = &config.Conf{}

		configFile = flag.String("config", "./config/config.yml", "Usage: -config=<config_file>")
		debug      = flag.Bool("debug", false, "Print debug information on stderr")
	)

	flag.Parse()

	logger.InitLogger(*debug)
	logger.Info("Application starting...")

	config.GetConfig(*configFile, cnf)
	cnf.RunInDebug = *debug

	if *debug {
		logger.Debug("Config:", cnf)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewStore(cnf.SessionTTL)
	backend := catalog.New(cnf.Backend.Addr)
	audit := storage.NewOrdersLog(cnf.OrdersLogFile)
	gw := gateway.New(cnf.Gateway.Addr, cnf.Gateway.Login, cnf.Gateway.Password)

	flow := bot.NewFlow(sessions, backend, backend, audit)
	allowed := bot.NewAllowList(cnf.AllowedNumbers)

	app := gin.Default()
	app.Use(
		config.Inject("cnf", cnf),
		gateway.Inject("gateway", gw),
		bot.InjectFlow("flow", flow),
		bot.InjectAllowList("allowed", allowed),
	)

	bot.InitHooks(app, cnf, gw)
	bot.InitAPI(app)

	srv := &http.Server{
		Addr:    cnf.Server.Listen,
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s\n", err)
		}
	}()

	// reload the customer allow-list when the config file changes
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Crit(err)
	}
	defer watcher.Close()
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				logger.Debug("config event:", event.String())
				if event.Op&fsnotify.Write == fsnotify.Write {
					fresh := &config.Conf{}
					config.GetConfig(*configFile, fresh)
					allowed.Update(fresh.AllowedNumbers)
					logger.Info("Allow-list reloaded,", len(fresh.AllowedNumbers), "numbers")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warning("config watcher:", err)
			}
		}
	}()

	if err := watcher.Add(*configFile); err != nil {
		logger.Warning("Config file is not watched:", err)
	}

	logger.Info("Application started")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT)

	quit := make(chan int)

	go func() {
		for {
			sig := <-signals
			switch sig {
			// kill -SIGHUP XXXX
			// kill -SIGINT XXXX or Ctrl+c
			case syscall.SIGHUP, syscall.SIGINT:
				logger.Info("Catch OS signal! Exiting...")

				bot.DestroyHooks(gw)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					log.Fatal("App forced to shutdown:", err)
				}

				logger.Info("Application stopped correctly!")

				quit <- 0
			default:
				logger.Warning("Unknown signal")
			}
		}
	}()

	code := <-quit

	os.Exit(code)
}
