package cmd

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type ValidationError struct {
	Message   string     `json:"message"`
	Rule      string     `json:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty"`

	// span is the number of runes underlined at the first location.
	span int
}

type ValidationResult struct {
	File   string            `json:"file,omitempty"`
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type RuleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

type DirectiveArgInfo struct {
	Directive    string `json:"directive"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Description  string `json:"description,omitempty"`
}
