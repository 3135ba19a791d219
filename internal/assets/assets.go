package assets

// Built-in asset names.
const (
	DefaultStyleName    = "markdown"
	DefaultTemplateName = "page"
)
