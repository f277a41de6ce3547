package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/contact"
	"github.com/eringen/folio/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
}

func runServe(cmd *cobra.Command, args []string) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := siteConfig(v)

	app := folio.New(cfg, views.Funcs(cfg))
	if err := app.Setup(); err != nil {
		return err
	}
	if path := v.ConfigFileUsed(); path != "" {
		app.Echo.Logger.Infof("using config file %s", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		app.Close()
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
}

func siteConfig(v *viper.Viper) folio.SiteConfig {
	addr := v.GetString("addr")
	if f := serveCmd.Flags().Lookup("addr"); f != nil && f.Changed {
		addr = f.Value.String()
	}
	if addr != "" && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return folio.SiteConfig{
		Name:            v.GetString("name"),
		URL:             v.GetString("url"),
		Description:     v.GetString("description"),
		Author:          v.GetString("author"),
		Addr:            addr,
		DatabasePath:    v.GetString("database_path"),
		ContentDir:      v.GetString("content_dir"),
		StaticDir:       v.GetString("static_dir"),
		AdminPassword:   v.GetString("admin_password"),
		SessionSecret:   v.GetString("session_secret"),
		CookieSecure:    v.GetBool("cookie_secure"),
		AllowOrigins:    v.GetStringSlice("allow_origins"),
		SearchCacheSize: v.GetInt("search_cache_size"),
		ContactLimit:    v.GetInt("contact_limit"),
		ContactWindow:   v.GetDuration("contact_window"),
		LogLevel:        v.GetString("log_level"),
		LogRetention:    v.GetDuration("log_retention"),
		MailFrom:        v.GetString("mail_from"),
		OwnerMail:       v.GetString("owner_mail"),
		SMTP: contact.SMTPConfig{
			Service:  v.GetString("smtp.service"),
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			Timeout:  v.GetDuration("smtp.timeout"),
		},
	}
}
