package notify

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Prompter shows tracker prompts with Fyne dialogs and desktop notifications.
type Prompter struct {
	app    fyne.App
	window fyne.Window
	title  string
}

// New creates a Prompter that anchors dialogs to window.
func New(app fyne.App, window fyne.Window, title string) *Prompter {
	return &Prompter{app: app, window: window, title: title}
}

// BlockingPrompt raises the window and shows a modal acknowledgment dialog.
func (prompter *Prompter) BlockingPrompt(title, message string) {
	fyne.Do(func() {
		prompter.window.Show()
		prompter.window.RequestFocus()
		dialog.ShowInformation(title, message, prompter.window)
	})
}

// TransientNotify sends a desktop notification without stealing focus.
func (prompter *Prompter) TransientNotify(message string) {
	prompter.app.SendNotification(fyne.NewNotification(prompter.title, message))
}

// Confirm shows a yes/no dialog and reports the answer to onResult.
func (prompter *Prompter) Confirm(title, message string, onResult func(bool)) {
	dialog.ShowConfirm(title, message, onResult, prompter.window)
}
