package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/arjunmn/mudra/internal/app"
	"github.com/arjunmn/mudra/internal/config"
	"github.com/arjunmn/mudra/internal/logsink"
	"github.com/arjunmn/mudra/internal/pointer"
	"github.com/arjunmn/mudra/internal/server"
	"github.com/arjunmn/mudra/internal/store"
	"github.com/arjunmn/mudra/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	useTray := flag.Bool("tray", false, "run with a system tray icon")
	flag.Parse()

	fmt.Println("Mudra - Air Pointer")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := config.Load()
	restoreSettings(cfg, st)
	settings := cfg.Snapshot()

	sink := logsink.New()

	a := app.New(app.Config{
		Settings:  cfg,
		Store:     st,
		Sink:      sink,
		PluginDir: filepath.Join(dataDir, "plugins"),
	})
	defer a.Close()

	if err := a.DiscoverPlugins(); err != nil {
		sink.Warnf("Driver discovery failed: %v", err)
	}
	if settings.Driver != "" {
		if err := a.UseDriver(settings.Driver); err != nil {
			sink.Warnf("Driver %q unavailable, pointer output disabled: %v", settings.Driver, err)
		}
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start tracking: %v", err)
	}
	a.SetEnabled(true)

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *useTray {
		runTray(a, *addr)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("Shutting down")
}

// restoreSettings overlays settings persisted by the API onto the
// environment defaults.
func restoreSettings(cfg *config.Config, st *store.Store) {
	saved, err := st.Settings().All()
	if err != nil || len(saved) == 0 {
		return
	}

	s := cfg.Snapshot()
	if v, ok := saved["hand"]; ok {
		s.Hand = config.HandPreference(v)
	}
	if v, ok := saved["smoothing"]; ok {
		s.Smoothing = config.SmoothingProfile(v)
	}
	if v, ok := saved["base_roi"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.BaseROI = f
		}
	}
	if v, ok := saved["camera_id"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.CameraID = n
		}
	}
	if v, ok := saved["viewport_w"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.ViewportW = n
		}
	}
	if v, ok := saved["viewport_h"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.ViewportH = n
		}
	}
	if v, ok := saved["driver"]; ok {
		s.Driver = v
	}

	if err := cfg.Apply(s); err != nil {
		log.Printf("Ignoring invalid persisted settings: %v", err)
	}
}

// runTray wires the tray UI to the tracker and blocks until quit.
func runTray(a *app.App, addr string) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(func() {
		a.Close()
	})

	a.Subscribe(func(s pointer.State) {
		for _, ev := range []pointer.Event{
			pointer.EventClick,
			pointer.EventDoubleClick,
			pointer.EventDragStart,
			pointer.EventDragEnd,
			pointer.EventDragMiddleStart,
			pointer.EventDragMiddleEnd,
		} {
			if s.Has(ev) {
				t.SetLastEvent(string(ev))
			}
		}
	})

	t.Run()
}

// openBrowser opens the given URL with the platform opener.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
