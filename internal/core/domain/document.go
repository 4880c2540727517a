package domain

// Document is a source document read from the document provider.
// It is immutable once read.
type Document struct {
	// ID is the provider identifier of the document.
	ID string

	// Title is the human-readable title.
	Title string

	// Breadcrumb lists the folder names between the root folder and the document.
	Breadcrumb []string

	// Properties holds the document metadata that ends up in the front-matter.
	Properties map[string]any

	// Cover is the optional cover image.
	Cover *Cover

	// Body is the exported Markdown body.
	Body string
}

// Cover describes a document cover image.
type Cover struct {
	Image string `yaml:"image"`
	Title string `yaml:"title,omitempty"`
	Alt   string `yaml:"alt,omitempty"`
}

// MarkdownDocument is a converted document ready to be written to a sink.
type MarkdownDocument struct {
	// ID links back to the source Document.
	ID string

	// Title is copied from the source Document.
	Title string

	// Path is the slash-separated output path relative to the sink root.
	Path string

	// Phase is the logical phase name used to pick a commit branch.
	// Empty means the caller's default phase.
	Phase string

	// Content is the front-matter followed by the Markdown body.
	Content string
}
