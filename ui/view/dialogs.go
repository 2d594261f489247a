package view

import (
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Dialogs wraps the native Tk message box and file chooser.
type Dialogs struct{}

// ShowError shows a modal error box.
func (Dialogs) ShowError(title, message string) {
	MessageBox(Icon("error"), Title(title), Msg(message))
}

// PickImage opens a file chooser restricted to raster images.
func (Dialogs) PickImage() (string, bool) {
	files := GetOpenFile(
		Title("Select an image"),
		Filetypes([]FileType{
			{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}},
			{TypeName: "All files", Extensions: []string{"*"}},
		}),
	)
	if len(files) == 0 {
		return "", false
	}
	path := strings.TrimSpace(files[0])
	return path, path != ""
}
