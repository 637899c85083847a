// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the file pickers and option widgets to the conversion service and
// renders progress, the tool log, completion dialogs and settings. All UI
// strings are localized via Localization.
package ui
