package manifest

import "encoding/json"

// Component describes one custom element declaration from the manifest.
// Optional fields that were absent in the manifest are empty, never nil-panics.
type Component struct {
	ClassName   string
	TagName     string
	ModulePath  string // path of the manifest module that declares the class
	Description string
	Summary     string
	// Docs holds every top-level string field of the declaration, keyed by
	// manifest field name. Used by the description source selector.
	Docs          map[string]string
	Attributes    []Attribute
	Members       []Member
	Events        []Event
	CSSProperties []CSSProperty
	CSSParts      []CSSPart
	Slots         []Slot
	Deprecated    Deprecation
}

// Doc returns the declaration's documentation field named src.
// Empty src selects "description".
func (c *Component) Doc(src string) string {
	if src == "" {
		src = "description"
	}
	return c.Docs[src]
}

// Attribute is an HTML attribute reflected by a custom element.
type Attribute struct {
	Name        string
	FieldName   string // backing class field, empty for attribute-only
	Type        string
	Description string
	Default     string
	Deprecated  Deprecation
}

// MemberKind distinguishes fields from methods.
type MemberKind string

const (
	MemberKindField  MemberKind = "field"
	MemberKindMethod MemberKind = "method"
)

// Member is a class field or method.
type Member struct {
	Kind        MemberKind
	Name        string
	Static      bool
	Privacy     string // "public", "private", "protected" or empty
	Type        string
	Description string
	Deprecated  Deprecation
	Readonly    bool
	Parameters  []Parameter
	Return      string
}

// IsPublic reports whether the member is visible to element consumers.
func (m Member) IsPublic() bool {
	return m.Privacy != "private" && m.Privacy != "protected" && !isPrivateName(m.Name)
}

func isPrivateName(name string) bool {
	return len(name) > 0 && name[0] == '#'
}

// Parameter is a method parameter.
type Parameter struct {
	Name        string
	Type        string
	Optional    bool
	Description string
}

// Event is a DOM event dispatched by the element.
type Event struct {
	Name        string
	Type        string
	Description string
	Deprecated  Deprecation
}

// CSSProperty is a CSS custom property the element reads.
type CSSProperty struct {
	Name        string
	Description string
	Syntax      string
	Default     string
}

// CSSPart is a shadow part exposed for styling.
type CSSPart struct {
	Name        string
	Description string
}

// Slot is a named (or default, when Name is empty) content slot.
type Slot struct {
	Name        string
	Description string
}

// Deprecation mirrors the manifest's `deprecated` field, which may be a
// boolean or a string carrying the reason.
type Deprecation struct {
	Deprecated bool
	Reason     string
}

// UnmarshalJSON accepts true/false or a reason string. Any other value
// decodes to the zero Deprecation.
func (d *Deprecation) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*d = Deprecation{Deprecated: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Deprecation{Deprecated: true, Reason: s}
		return nil
	}
	*d = Deprecation{}
	return nil
}

// MarshalJSON writes the reason when there is one, else a boolean.
func (d Deprecation) MarshalJSON() ([]byte, error) {
	if d.Reason != "" {
		return json.Marshal(d.Reason)
	}
	return json.Marshal(d.Deprecated)
}

// --- raw manifest shapes (boundary only) ---

type rawType struct {
	Text string `json:"text"`
}

type rawPackage struct {
	SchemaVersion string      `json:"schemaVersion"`
	Modules       []rawModule `json:"modules"`
}

type rawModule struct {
	Kind         string            `json:"kind"`
	Path         string            `json:"path"`
	Declarations []json.RawMessage `json:"declarations"`
}

type rawDeclaration struct {
	Kind          string           `json:"kind"`
	Name          string           `json:"name"`
	TagName       string           `json:"tagName"`
	CustomElement bool             `json:"customElement"`
	Description   string           `json:"description"`
	Summary       string           `json:"summary"`
	Deprecated    Deprecation      `json:"deprecated"`
	Attributes    []rawAttribute   `json:"attributes"`
	Members       []rawMember      `json:"members"`
	Events        []rawEvent       `json:"events"`
	CSSProperties []rawCSSProperty `json:"cssProperties"`
	CSSParts      []rawNamedDoc    `json:"cssParts"`
	Slots         []rawNamedDoc    `json:"slots"`
}

type rawAttribute struct {
	Name        string      `json:"name"`
	FieldName   string      `json:"fieldName"`
	Type        *rawType    `json:"type"`
	Description string      `json:"description"`
	Default     string      `json:"default"`
	Deprecated  Deprecation `json:"deprecated"`
}

type rawParameter struct {
	Name        string   `json:"name"`
	Type        *rawType `json:"type"`
	Optional    bool     `json:"optional"`
	Description string   `json:"description"`
}

type rawReturn struct {
	Type *rawType `json:"type"`
}

type rawMember struct {
	Kind        string         `json:"kind"`
	Name        string         `json:"name"`
	Static      bool           `json:"static"`
	Privacy     string         `json:"privacy"`
	Type        *rawType       `json:"type"`
	Description string         `json:"description"`
	Deprecated  Deprecation    `json:"deprecated"`
	Readonly    bool           `json:"readonly"`
	Parameters  []rawParameter `json:"parameters"`
	Return      *rawReturn     `json:"return"`
}

type rawEvent struct {
	Name        string      `json:"name"`
	Type        *rawType    `json:"type"`
	Description string      `json:"description"`
	Deprecated  Deprecation `json:"deprecated"`
}

type rawCSSProperty struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Syntax      string `json:"syntax"`
	Default     string `json:"default"`
}

type rawNamedDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func typeText(t *rawType) string {
	if t == nil {
		return ""
	}
	return t.Text
}
