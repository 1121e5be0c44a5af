package configuration

type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeSecret FieldType = "secret"
)

// Field describes one credential field a platform expects from the user.
// Fields are declarative reference data rendered by the dashboard and used
// by the auth resolver to know which credentials a platform requires.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Sensitive   bool      `json:"sensitive"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	DocsURL     string    `json:"docsUrl,omitempty"`
}
