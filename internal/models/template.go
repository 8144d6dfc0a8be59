package models

type TemplateStatus string

const (
	TemplateProcessing TemplateStatus = "PROCESSING"
	TemplateAvailable  TemplateStatus = "AVAILABLE"
	TemplateFailed     TemplateStatus = "FAILED"
)

// Template is the list-view shape returned by GET /templates. Categories are
// only present on the detail endpoint.
type Template struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Status            TemplateStatus `json:"status"`
	CategoriesCount   int            `json:"categoriesCount,omitempty"`
	RequirementsCount int            `json:"requirementsCount,omitempty"`
	CreatedAt         string         `json:"createdAt,omitempty"`
}

type TemplateDetail struct {
	Template
	Categories []Category `json:"categories"`
}

type Category struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Requirements []Requirement `json:"requirements"`
}

type Requirement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnyProcessing reports whether at least one template is still being
// processed by the backend.
func AnyProcessing(templates []Template) bool {
	for _, t := range templates {
		if t.Status == TemplateProcessing {
			return true
		}
	}
	return false
}
