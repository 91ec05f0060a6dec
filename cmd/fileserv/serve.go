package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keremenci/fileserv"
	"github.com/keremenci/fileserv/api"
	"github.com/keremenci/fileserv/config"
	"github.com/keremenci/fileserv/filestore"
	"github.com/keremenci/fileserv/router/table"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.String("host", "127.0.0.1", "address to listen on")
	flags.Uint16("port", 8080, "port to listen on")
	flags.String("uploads", "files", "directory uploaded files are stored in")
	flags.Duration("read-timeout", time.Second, "idle gap ending request accumulation")
	flags.Bool("strict-request-line", false, "require the canonical METHOD PATH VERSION token order")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	// flag > FILESERV_* env var > config file
	viper.SetEnvPrefix("fileserv")
	viper.AutomaticEnv()
	viper.SetConfigName("fileserv")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/fileserv")
	cobra.CheckErr(viper.BindPFlags(flags))
}

func serve() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("config: %w", err)
		}
	}

	log := newLogger(viper.GetString("log-level"))

	cfg := config.Fill(&config.Config{
		NET: config.NET{
			ReadTimeout: viper.GetDuration("read-timeout"),
		},
		HTTP: config.HTTP{
			StrictRequestLine: viper.GetBool("strict-request-line"),
		},
		FS: config.FS{
			UploadsDir: viper.GetString("uploads"),
		},
	})

	store, err := filestore.New(cfg.FS.UploadsDir)
	if err != nil {
		return fmt.Errorf("uploads dir: %w", err)
	}

	addr := net.JoinHostPort(
		viper.GetString("host"),
		strconv.Itoa(viper.GetInt("port")),
	)

	app := fileserv.New(addr).Tune(cfg).Log(log)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Info("shutting down")
		app.Stop()
	}()

	log.Info("starting", "addr", addr, "uploads", store.Dir())

	return app.Serve(api.New(store, log).Attach(table.New()))
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}
