package driven

// Template names understood by TemplateStore.
const (
	// TemplateWelcome is the document shown when no draft exists.
	TemplateWelcome = "welcome"

	// TemplateTable is the skeleton inserted by the table action.
	TemplateTable = "table"

	// TemplateViewerPlaceholder is shown by viewers before anything is published.
	TemplateViewerPlaceholder = "viewer_placeholder"
)

// TemplateStore provides user-customisable note templates.
type TemplateStore interface {
	// Load returns the template with the given name.
	Load(name string) (string, error)
}
