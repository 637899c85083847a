package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/config"
	"github.com/munchie/minivideo/internal/convert"
	"github.com/munchie/minivideo/internal/model"
	"github.com/munchie/minivideo/internal/platform"
	"github.com/munchie/minivideo/internal/preview"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	converter    convert.Converter
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger

	// Files
	filesCard       *widget.Card
	inputLabel      *widget.Label
	outputLabel     *widget.Label
	inputEntry      *widget.Entry
	outputEntry     *widget.Entry
	inputBrowseBtn  *widget.Button
	outputBrowseBtn *widget.Button

	// Options
	optionsCard *widget.Card
	options     *OptionsForm

	// Actions and progress
	convertBtn  *widget.Button
	cancelBtn   *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	// Output
	logCard     *widget.Card
	logPanel    *LogPanel
	previewCard *widget.Card
	previewImg  *canvas.Image
	revealBtn   *widget.Button
	openBtn     *widget.Button
	lastOutput  string

	// ffmpegErr is set when ffmpeg could not be located at startup
	ffmpegErr error

	taskMutex     sync.Mutex
	currentTaskID string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, converter convert.Converter, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		converter:    converter,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Service callbacks arrive on background goroutines
	ui.converter.SetUpdateCallback(ui.onTaskUpdate)
	ui.converter.SetLogCallback(ui.onLogLine)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// File selection
	ui.inputLabel = widget.NewLabel("")
	ui.outputLabel = widget.NewLabel("")
	ui.inputEntry = widget.NewEntry()
	ui.outputEntry = widget.NewEntry()
	ui.inputBrowseBtn = widget.NewButton("", ui.onBrowseInput)
	ui.outputBrowseBtn = widget.NewButton("", ui.onBrowseOutput)

	fileGrid := container.New(layout.NewFormLayout(),
		ui.inputLabel, container.NewBorder(nil, nil, nil, ui.inputBrowseBtn, ui.inputEntry),
		ui.outputLabel, container.NewBorder(nil, nil, nil, ui.outputBrowseBtn, ui.outputEntry),
	)
	ui.filesCard = widget.NewCard("", "", fileGrid)

	// Options, restored from the last session
	ui.options = NewOptionsForm(ui.localization)
	ui.options.SetOptions(ui.settings.LoadOptions())
	ui.options.OnFormatChanged = ui.onFormatChanged
	ui.optionsCard = widget.NewCard("", "", ui.options.Widget())

	// Actions
	ui.convertBtn = widget.NewButton("", ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton("", ui.onCancelClick)
	ui.cancelBtn.Disable()
	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")
	actions := container.NewBorder(nil, nil, ui.statusLabel, container.NewHBox(ui.cancelBtn, ui.convertBtn), ui.progressBar)

	// Log and preview
	ui.logPanel = NewLogPanel(MaxLogLines)
	logMin := canvas.NewRectangle(color.Transparent)
	logMin.SetMinSize(fyne.NewSize(0, LogPanelMinHeight))
	ui.logCard = widget.NewCard("", "", container.NewStack(logMin, ui.logPanel.Widget()))

	ui.previewImg = canvas.NewImageFromResource(nil)
	ui.previewImg.FillMode = canvas.ImageFillContain
	ui.previewImg.SetMinSize(fyne.NewSize(PreviewSize, PreviewSize))
	ui.revealBtn = widget.NewButton("", func() { ui.onRevealFile(ui.lastOutput) })
	ui.openBtn = widget.NewButton("", func() { ui.onOpenFile(ui.lastOutput) })
	ui.previewCard = widget.NewCard("", "", container.NewBorder(nil, container.NewGridWithColumns(2, ui.revealBtn, ui.openBtn), nil, nil, ui.previewImg))
	ui.previewCard.Hide()

	top := container.NewVBox(ui.filesCard, ui.optionsCard, actions)
	bottom := container.NewBorder(nil, nil, nil, ui.previewCard, ui.logCard)

	ui.refreshUITexts()
	windowMin := canvas.NewRectangle(color.Transparent)
	windowMin.SetMinSize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
	ui.window.SetContent(container.NewStack(windowMin, container.NewBorder(top, nil, nil, nil, bottom)))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for _, code := range []string{"en", "ru", "pt"} {
		langCode := code // Capture for closure
		name := ui.localization.GetAvailableLanguages()[code]
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	aboutItem := fyne.NewMenuItem(ui.localization.GetText(KeyAbout), ui.onShowAbout)

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
		fyne.NewMenu(ui.localization.GetText(KeyHelp), aboutItem),
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.filesCard.SetTitle(l.GetText(KeyFiles))
	ui.inputLabel.SetText(l.GetText(KeyInputVideo))
	ui.outputLabel.SetText(l.GetText(KeyOutputFile))
	ui.inputEntry.SetPlaceHolder(l.GetText(KeyInputPlaceholder))
	ui.outputEntry.SetPlaceHolder(l.GetText(KeyOutputPlaceholder))
	ui.inputBrowseBtn.SetText(IconFolder + " " + l.GetText(KeyBrowse))
	ui.outputBrowseBtn.SetText(IconFolder + " " + l.GetText(KeyBrowse))

	ui.optionsCard.SetTitle(l.GetText(KeyOptions))
	ui.options.RefreshTexts()

	ui.convertBtn.SetText(l.GetText(KeyConvert))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	ui.logCard.SetTitle(l.GetText(KeyLog))
	ui.previewCard.SetTitle(l.GetText(KeyPreview))
	ui.revealBtn.SetText(l.GetText(KeyReveal))
	ui.openBtn.SetText(l.GetText(KeyOpen))

	if ui.currentTask() == "" {
		ui.statusLabel.SetText(l.GetText(KeyStatusIdle))
	}
}

// CheckFFmpeg records the result of locating ffmpeg at startup. A missing
// ffmpeg is reported right away; otherwise the decoder list is loaded in the
// background so the first conversion starts quickly.
func (ui *RootUI) CheckFFmpeg(locateErr error) {
	ui.ffmpegErr = locateErr
	if locateErr != nil {
		ui.logger.Error("ffmpeg not available", zap.Error(locateErr))
		dialog.ShowInformation(
			ui.localization.GetText(KeyFFmpegNotFoundTitle),
			ui.localization.GetText(KeyFFmpegNotFound),
			ui.window,
		)
		return
	}

	checker := ui.converter.Checker()
	if checker == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), DecoderWarmUpTimeout)
		defer cancel()
		if _, err := checker.Decoders(ctx); err != nil {
			ui.logger.Warn("decoder warm-up failed", zap.Error(err))
		}
	}()
}

// onBrowseInput opens a file dialog filtered to video files
func (ui *RootUI) onBrowseInput() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		ui.inputEntry.SetText(path)
		ui.settings.SetLastInputDirectory(filepath.Dir(path))

		// Auto-suggest output filename
		ui.outputEntry.SetText(platform.SuggestOutputPath(path, ui.options.Format().Extension()))
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter(platform.VideoExtensions))
	ui.setDialogLocation(fd, ui.settings.GetLastInputDirectory())
	fd.Show()
}

// onBrowseOutput opens a save dialog and enforces the format extension
func (ui *RootUI) onBrowseOutput() {
	format := ui.options.Format()
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return
		}
		// ffmpeg overwrites the file; only the chosen path is needed
		writer.Close()
		ui.outputEntry.SetText(platform.EnsureExtension(writer.URI().Path(), format.Extension()))
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{format.Extension()}))
	if input := strings.TrimSpace(ui.inputEntry.Text); input != "" {
		fd.SetFileName(filepath.Base(platform.SuggestOutputPath(input, format.Extension())))
		ui.setDialogLocation(fd, filepath.Dir(input))
	} else {
		ui.setDialogLocation(fd, ui.settings.GetLastInputDirectory())
	}
	fd.Show()
}

// setDialogLocation starts a file dialog in dir when it can be listed
func (ui *RootUI) setDialogLocation(fd *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	fd.SetLocation(lister)
}

// onFormatChanged re-suggests the output path for the new format
func (ui *RootUI) onFormatChanged(format model.OutputFormat) {
	if input := strings.TrimSpace(ui.inputEntry.Text); input != "" {
		ui.outputEntry.SetText(platform.SuggestOutputPath(input, format.Extension()))
	}
}

// collectOptions combines the file entries with the option widgets
func (ui *RootUI) collectOptions() model.ConversionOptions {
	opts := ui.options.Options()
	opts.InputPath = strings.TrimSpace(ui.inputEntry.Text)
	opts.OutputPath = strings.TrimSpace(ui.outputEntry.Text)
	return opts
}

// onConvertClick validates the options and starts a conversion
func (ui *RootUI) onConvertClick() {
	if ui.ffmpegErr != nil {
		dialog.ShowInformation(
			ui.localization.GetText(KeyFFmpegNotFoundTitle),
			ui.localization.GetText(KeyFFmpegUnavailable),
			ui.window,
		)
		return
	}

	opts := ui.collectOptions()
	ui.logPanel.Clear()
	ui.previewCard.Hide()

	task, err := ui.converter.StartConversion(opts)
	if err != nil {
		title, message := validationMessage(err, ui.localization)
		ui.logger.Info("conversion not started", zap.Error(err))
		dialog.ShowInformation(title, message, ui.window)
		return
	}

	ui.settings.SaveOptions(opts)
	ui.setCurrentTask(task.ID)
	ui.progressBar.SetValue(0)
	ui.setRunning(true)

	// The task may have finished before its ID was recorded
	if latest, ok := ui.converter.GetTask(task.ID); ok {
		ui.applyTaskUpdate(latest)
	}
}

// onCancelClick stops the running conversion
func (ui *RootUI) onCancelClick() {
	taskID := ui.currentTask()
	if taskID == "" {
		return
	}
	if err := ui.converter.StopConversion(taskID); err != nil {
		ui.logger.Warn("failed to stop conversion", zap.String("task_id", taskID), zap.Error(err))
	}
}

// setRunning toggles the controls that must not change during a conversion
func (ui *RootUI) setRunning(running bool) {
	for _, w := range []fyne.Disableable{ui.inputEntry, ui.outputEntry, ui.inputBrowseBtn, ui.outputBrowseBtn, ui.convertBtn} {
		if running {
			w.Disable()
		} else {
			w.Enable()
		}
	}
	if running {
		ui.cancelBtn.Enable()
	} else {
		ui.cancelBtn.Disable()
	}
	ui.options.SetEnabled(!running)
}

// onLogLine appends a line from the conversion service to the log panel
func (ui *RootUI) onLogLine(taskID, line string) {
	fyne.Do(func() {
		ui.logPanel.Append(line)
	})
}

// onTaskUpdate handles task updates from the conversion service. The task
// ID is compared on the UI goroutine, after onConvertClick has recorded it.
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	fyne.Do(func() {
		ui.applyTaskUpdate(task)
	})
}

// applyTaskUpdate reflects a task snapshot in the window. Must run on the UI goroutine.
func (ui *RootUI) applyTaskUpdate(task *model.ConversionTask) {
	if task.ID != ui.currentTask() {
		return
	}

	ui.progressBar.SetValue(task.Progress)
	ui.statusLabel.SetText(statusText(task, ui.localization))

	if !task.Status.IsFinished() {
		return
	}
	ui.setRunning(false)
	ui.setCurrentTask("")
	ui.onTaskFinished(task)
}

// onTaskFinished shows the outcome of a conversion
func (ui *RootUI) onTaskFinished(task *model.ConversionTask) {
	switch task.Status {
	case model.TaskStatusCompleted:
		ui.sendCompletionNotification(task)
		dialog.ShowInformation(
			ui.localization.GetText(KeySuccessTitle),
			ui.localization.GetText(KeyConversionCompleted),
			ui.window,
		)
		ui.showPreview(task.Options.OutputPath)

		if ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealFile(task.Options.OutputPath)
		}
	case model.TaskStatusError:
		if task.HelpText != "" {
			ui.showHelpDialog(ui.localization.GetText(KeyMissingCodecTitle), task.HelpText)
			return
		}
		dialog.ShowInformation(
			ui.localization.GetText(KeyConversionFailedTitle),
			ui.localization.GetText(KeyConversionFailed),
			ui.window,
		)
	}
}

// showHelpDialog shows long, selectable text such as install instructions
func (ui *RootUI) showHelpDialog(title, text string) {
	entry := widget.NewMultiLineEntry()
	entry.SetText(text)
	entry.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom(title, "OK", entry, ui.window)
	d.Resize(fyne.NewSize(HelpDialogWidth, HelpDialogHeight))
	d.Show()
}

// showPreview renders a thumbnail of the finished animation off the UI goroutine
func (ui *RootUI) showPreview(path string) {
	go func() {
		img, err := preview.Thumbnail(path)
		if err != nil {
			ui.logger.Debug("no preview available", zap.String("path", path), zap.Error(err))
			return
		}
		fyne.Do(func() {
			ui.lastOutput = path
			ui.previewImg.Image = img
			ui.previewImg.Refresh()
			ui.previewCard.Show()
		})
	}()
}

// sendCompletionNotification sends a system notification for finished conversions
func (ui *RootUI) sendCompletionNotification(task *model.ConversionTask) {
	ui.app.SendNotification(fyne.NewNotification(
		ui.localization.GetText(KeyConversionCompleted),
		task.DisplayName(),
	))
}

// onRevealFile reveals a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", filePath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onOpenFile opens a file with the default system application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Warn("failed to open file", zap.String("path", filePath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func(ffmpegChanged bool) {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()

		message := ui.localization.GetText(KeySettingsSaved)
		if ffmpegChanged {
			message += "\n" + ui.localization.GetText(KeyRestartRequired)
		}
		dialog.ShowInformation(ui.localization.GetText(KeySettings), message, ui.window)
	})
}

// onShowAbout shows the about dialog
func (ui *RootUI) onShowAbout() {
	dialog.ShowInformation(ui.localization.GetText(KeyAbout), ui.localization.GetText(KeyAboutText), ui.window)
}

func (ui *RootUI) currentTask() string {
	ui.taskMutex.Lock()
	defer ui.taskMutex.Unlock()
	return ui.currentTaskID
}

func (ui *RootUI) setCurrentTask(id string) {
	ui.taskMutex.Lock()
	ui.currentTaskID = id
	ui.taskMutex.Unlock()
}

// validationMessage maps a StartConversion error to a dialog title and text
func validationMessage(err error, l *Localization) (string, string) {
	switch {
	case errors.Is(err, convert.ErrMissingInput):
		return l.GetText(KeyMissingInputTitle), l.GetText(KeyMissingInput)
	case errors.Is(err, convert.ErrInputNotFound):
		return l.GetText(KeyInvalidInputTitle), l.GetText(KeyInvalidInput)
	case errors.Is(err, convert.ErrMissingOutput):
		return l.GetText(KeyMissingOutputTitle), l.GetText(KeyMissingOutput)
	case errors.Is(err, convert.ErrOutputDirMissing):
		return l.GetText(KeyInvalidOutputTitle), l.GetText(KeyInvalidOutput)
	case errors.Is(err, convert.ErrOutputIsInput):
		return l.GetText(KeyInvalidOutputTitle), l.GetText(KeyOutputIsInput)
	case errors.Is(err, convert.ErrAlreadyRunning):
		return l.GetText(KeyBusyTitle), l.GetText(KeyBusy)
	}
	return l.GetText(KeyInvalidOptionsTitle), err.Error()
}

// statusText describes a task for the status label
func statusText(task *model.ConversionTask, l *Localization) string {
	switch task.Status {
	case model.TaskStatusChecking:
		return l.GetText(KeyStatusChecking)
	case model.TaskStatusConverting:
		text := l.GetText(KeyStatusConverting)
		if task.StepCount > 1 {
			text = fmt.Sprintf(StepLabelFormat, text, task.StepIndex+1, task.StepCount)
		}
		return text + MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, task.Percent)
	case model.TaskStatusStopping:
		return l.GetText(KeyStatusStopping)
	case model.TaskStatusStopped:
		return l.GetText(KeyStatusStopped)
	case model.TaskStatusCompleted:
		return l.GetText(KeyStatusCompleted)
	case model.TaskStatusError:
		return l.GetText(KeyStatusError)
	}
	return l.GetText(KeyStatusIdle)
}
