package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"healthassist/cmd/healthassist/ui"
	"healthassist/internal/audit"
	"healthassist/internal/config"
	"healthassist/internal/logger"
	"healthassist/internal/session"
	"healthassist/internal/store"
)

func main() {
	var (
		cfgPath = flag.String("config", "config/config.yaml", "Path to configuration file")
		noWatch = flag.Bool("no-watch", false, "Disable watching the store file for external changes")
	)
	flag.Parse()

	cfg := config.Init(*cfgPath)
	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}

	st := store.New(cfg.StorePath)
	if err := st.Ensure(cfg.Seed.AdminPassword, cfg.Seed.DoctorPassword, cfg.Seed.PatientPassword); err != nil {
		logger.Error("Cannot initialize account store:", err)
		os.Exit(1)
	}

	trail, err := audit.Open(cfg.AuditDBPath)
	if err != nil {
		logger.Error("Cannot open audit database:", err)
		os.Exit(1)
	}
	st.WithAudit(trail)

	deps := &ui.Deps{
		Store:  st,
		Signer: &session.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin},
	}

	if !*noWatch {
		w, err := st.Watch()
		if err != nil {
			logger.Warnf("Store watcher unavailable: %v", err)
		} else {
			deps.Watcher = w
			defer w.Close()
		}
	}

	p := tea.NewProgram(ui.NewRootModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Console exited with error:", err)
		os.Exit(1)
	}
}
