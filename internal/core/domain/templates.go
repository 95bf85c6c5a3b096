package domain

import (
	"encoding/base64"
	"strings"
	"time"
)

// TableTemplate is the skeleton inserted by the table toolbar action.
const TableTemplate = `| Header 1 | Header 2 | Header 3 |
|----------|----------|----------|
| Cell 1   | Cell 2   | Cell 3   |
| Cell 4   | Cell 5   | Cell 6   |
`

// Image defaults used when the user leaves a prompt empty.
const (
	PlaceholderImageURL = "https://via.placeholder.com/400x200"
	DefaultImageAlt     = "Image"
)

// ImageMarkup returns a markdown image reference.
func ImageMarkup(alt, url string) string {
	if url == "" {
		url = PlaceholderImageURL
	}
	if alt == "" {
		alt = DefaultImageAlt
	}
	return "![" + alt + "](" + url + ")"
}

// DataURL encodes data as a data: URL so an image can live inside the note.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Export is a note packaged as a downloadable file.
type Export struct {
	// Filename is derived from the export date.
	Filename string

	// MIMEType is always ExportMIMEType.
	MIMEType string

	// Content is the raw note text.
	Content []byte
}

// ExportMIMEType is the content type of exported notes.
const ExportMIMEType = "text/markdown"

// ExportFilename returns the download name for a note exported at t.
func ExportFilename(t time.Time) string {
	return "revisify-note-" + t.Format("2006-01-02") + ".md"
}

// NewExport packages text for download at time t.
func NewExport(text string, t time.Time) Export {
	return Export{
		Filename: ExportFilename(t),
		MIMEType: ExportMIMEType,
		Content:  []byte(text),
	}
}

// WelcomeTemplate seeds the editor when no draft exists.
var WelcomeTemplate = strings.TrimSpace(`
# Welcome to Revisify!

This is a **markdown editor** with live preview.

## Features
- Live preview
- **Bold**, *italic*, ` + "`code`" + `
- Custom blocks (Definitions, Theories, Notes, etc.)
- Tables
- Math equations
- Image upload
- Auto-save

## Try it out!
Select some text and use the block shortcuts to wrap it in different styles.

<div class="definition">
This is a definition block. Great for important concepts.
</div>

<div class="theory">
**Newton's Laws of Motion**

**Second Law (Force):**
$F = ma$
The acceleration of an object is directly proportional to the net force acting on it and inversely proportional to its mass.
</div>

<div class="note">
This is a note block. Use it for additional information or observations.
</div>

<div class="formula">
Schrödinger Equation:
$$
i\hbar\frac{\partial}{\partial t}\Psi(\mathbf{r},t) = \hat{H}\Psi(\mathbf{r},t)
$$
</div>

<div class="warning">
This is a warning block. Use for important cautions or things to remember.
</div>

## Keyboard Shortcuts
- **Ctrl+S**: Send to viewer
- **Ctrl+B**: Bold text
- **Ctrl+I**: Italic text
- **Ctrl+D**: Wrap as definition
- **Ctrl+T**: Wrap as theory

## Math Example
Inline: $E = mc^2$

Display:
$$
\int_{-\infty}^{\infty} e^{-x^2} dx = \sqrt{\pi}
$$

## Code Example
` + "```go" + `
func hello() {
	fmt.Println("Hello, Revisify!")
}
` + "```" + `

Happy note-taking!`)

// ViewerPlaceholder is shown by the viewer before anything is published.
var ViewerPlaceholder = strings.TrimSpace(`
# Welcome to Revisify Viewer!

## No note yet

Write something in the editor and press **Ctrl+S** to see it here!

<div class="theory">
**How to use Theory blocks:**

1. Go to the Editor
2. Select some text
3. Press Ctrl+T
4. Your text will be wrapped in a theory block
5. View it here in the viewer!
</div>

<div class="definition">
**Definition:** A statement of the exact meaning of a word or concept.
</div>

<div class="formula">
Example formula: $E = mc^2$
</div>`)
