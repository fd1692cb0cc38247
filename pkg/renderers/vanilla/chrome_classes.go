package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm        ChromeClass = "contactform"
	ClassHeader      ChromeClass = "contactform-header"
	ClassDescription ChromeClass = "contactform-description"
	ClassField       ChromeClass = "contactform-field"
	ClassError       ChromeClass = "contactform-error"
	ClassActions     ChromeClass = "contactform-actions"
	ClassEcho        ChromeClass = "contactform-echo"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":        string(ClassForm),
		"header":      string(ClassHeader),
		"description": string(ClassDescription),
		"field":       string(ClassField),
		"error":       string(ClassError),
		"actions":     string(ClassActions),
		"echo":        string(ClassEcho),
	}
}
