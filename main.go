package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/config"
	"github.com/munchie/minivideo/internal/convert"
	"github.com/munchie/minivideo/internal/logging"
	"github.com/munchie/minivideo/internal/preflight"
	"github.com/munchie/minivideo/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.munchie.minivideo"
	AppName = "Munchie MiniVideo Converter"

	WindowWidth  = 820
	WindowHeight = 640
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	logger, err := logging.New(os.Getenv("MINIVIDEO_DEBUG") != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myApp.SetIcon(ui.AppIcon())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	tools, locateErr := preflight.Locate(settings.GetFFmpegPath())
	if locateErr == nil {
		logger.Info("using ffmpeg", zap.String("ffmpeg", tools.FFmpeg), zap.String("ffprobe", tools.FFprobe))
	}

	checker := preflight.New(tools, logger.Named("preflight"))
	converter := convert.NewService(checker, logger.Named("convert"))

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, settings, converter, logger.Named("ui"))
	rootUI.CheckFFmpeg(locateErr)

	// Show and run
	myWindow.ShowAndRun()
}
