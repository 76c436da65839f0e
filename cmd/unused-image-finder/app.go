package main

import (
	"fmt"
	"runtime"
	"time"

	"unused-image-finder/internal/config"
	"unused-image-finder/internal/controllers"
	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/logger"
	"unused-image-finder/internal/models"
	"unused-image-finder/internal/services"
	"unused-image-finder/internal/shutdown"
	"unused-image-finder/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Application wires models, services, controller and view around one window
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	cfg     config.Config

	controller *controllers.MainController
	view       *views.MainView
	finder     *services.FinderService
	session    *models.Session
	shutdown   *shutdown.Manager
}

// NewApplication creates the window and its components
func NewApplication(cfg config.Config, appLogger logger.Logger) (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.UI.WindowWidth, cfg.UI.WindowHeight))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":       AppVersion,
		"window_size":   fmt.Sprintf("%.0fx%.0f", cfg.UI.WindowWidth, cfg.UI.WindowHeight),
		"go_version":    runtime.Version(),
		"prefix_source": cfg.Scan.PrefixSource,
		"preview":       cfg.UI.Preview,
	})

	session := models.NewSession()

	// a nil *inspect.Inspector would be a non-nil interface value
	var inspector services.ImageInspector
	if cfg.UI.Preview {
		inspector = inspect.NewInspector(appLogger)
	}
	finder := services.NewFinderService(session, cfg.ListOptions(), inspector, appLogger)

	manager := shutdown.NewManager(appLogger)
	mainView := views.NewMainView(window, cfg.UI.Preview, cfg.UI.ThumbnailSize)
	mainController := controllers.NewMainController(manager.Context(), finder, appLogger, cfg.UI.Preview, cfg.UI.ThumbnailSize)
	mainController.SetMainView(mainView)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		cfg:        cfg,
		controller: mainController,
		view:       mainView,
		finder:     finder,
		session:    session,
		shutdown:   manager,
	}

	application.setupMenus()
	application.setupWindowEvents()
	application.shutdown.Register(shutdown.Func(func() { fyne.Do(fyneApp.Quit) }))
	application.shutdown.Register(mainController)

	return application, nil
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() error {
	a.shutdown.Listen()
	go a.startSessionMonitoring()

	a.view.Show()
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
	return nil
}

func (a *Application) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Images Folder...", a.controller.BrowseFolder),
		fyne.NewMenuItem("Export Unused List...", a.controller.ExportResult),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.view.ShowAboutDialog(AppName, AppVersion,
				"Lists files in an images folder that no line of a FrameMaker\ngraphics reference list mentions.")
		}),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		state := a.view.GetViewState()
		a.logger.Debug("Application", "close requested", map[string]interface{}{
			"folder":     state.FolderPath,
			"has_result": state.HasResult,
			"unused":     len(state.UnusedNames),
		})
		// nothing to lose before a folder is open
		if !a.cfg.UI.ConfirmExit || state.FolderPath == "" {
			a.window.Close()
			return
		}
		a.view.ShowConfirm("Exit", "Are you sure you want to exit?", func(confirmed bool) {
			if confirmed {
				a.window.Close()
			}
		})
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
		// off the UI goroutine so the queued Quit can run
		go a.shutdown.Shutdown()
	})
}

// startSessionMonitoring logs session counters until shutdown
func (a *Application) startSessionMonitoring() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := a.finder.Stats()
			a.logger.Debug("Application", "session stats", map[string]interface{}{
				"folder":     stats.Folder,
				"images":     stats.Images,
				"unused":     stats.Unused,
				"runs":       stats.Runs,
				"goroutines": runtime.NumGoroutine(),
			})
		case <-a.shutdown.Done():
			return
		}
	}
}
