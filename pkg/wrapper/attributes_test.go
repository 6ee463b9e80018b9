package wrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/cewrap/pkg/manifest"
)

func names(attrs []MappedAttribute) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.Name)
	}
	return out
}

// --- ReconcileAttributes tests ---

func TestReconcileAttributes_SplitsBooleans(t *testing.T) {
	cfg := NewConfig(Options{})
	attrs, err := ReconcileAttributes(cfg, fixtureComponent(t, "MyButton"))
	require.NoError(t, err)

	assert.Equal(t, []string{"disabled"}, names(attrs.BooleanAttributes))
	assert.Equal(t, []string{"variant", "label-text", "size", "for"}, names(attrs.Attributes))
	assert.True(t, attrs.BooleanAttributes[0].Boolean)
}

func TestReconcileAttributes_FieldNames(t *testing.T) {
	cfg := NewConfig(Options{})
	attrs, err := ReconcileAttributes(cfg, fixtureComponent(t, "MyButton"))
	require.NoError(t, err)

	byName := make(map[string]MappedAttribute)
	for _, a := range attrs.All() {
		byName[a.Name] = a
	}
	assert.Equal(t, "variant", byName["variant"].FieldName)
	assert.True(t, byName["variant"].HasField)
	assert.Equal(t, "labelText", byName["label-text"].FieldName)
	assert.False(t, byName["label-text"].HasField)
	assert.Equal(t, "htmlFor", byName["for"].FieldName)
	assert.True(t, byName["for"].Global)
}

func TestReconcileAttributes_FirstOccurrenceWins(t *testing.T) {
	cfg := NewConfig(Options{})
	attrs, err := ReconcileAttributes(cfg, fixtureComponent(t, "MyButton"))
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, a := range attrs.All() {
		seen[a.Name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "attribute %s", name)
	}
	for _, a := range attrs.All() {
		if a.Name == "variant" {
			assert.Equal(t, "variant", a.FieldName)
		}
	}
}

func TestReconcileAttributes_ComponentForReplacesBaseline(t *testing.T) {
	cfg := NewConfig(Options{})
	attrs, err := ReconcileAttributes(cfg, fixtureComponent(t, "MyLabel"))
	require.NoError(t, err)

	require.Len(t, attrs.Attributes, 1)
	assert.Equal(t, "for", attrs.Attributes[0].FieldName)
	assert.False(t, attrs.Attributes[0].Global)
}

func TestReconcileAttributes_ReservedWithoutMapping(t *testing.T) {
	comp := manifest.Component{
		ClassName: "MyInput",
		TagName:   "my-input",
		Attributes: []manifest.Attribute{
			{Name: "class", Type: "string"},
		},
	}

	_, err := ReconcileAttributes(NewConfig(Options{}), comp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNamingCollision))

	var collision *NamingCollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "class", collision.Attribute)
	assert.Equal(t, "MyInput", collision.Component)
	assert.Contains(t, err.Error(), "`class`")
	assert.Contains(t, err.Error(), "`MyInput`")
	assert.Contains(t, err.Error(), "attribute_mapping")
}

func TestReconcileAttributes_ReservedWithMapping(t *testing.T) {
	comp := manifest.Component{
		ClassName: "MyInput",
		TagName:   "my-input",
		Attributes: []manifest.Attribute{
			{Name: "class", FieldName: "class", Type: "string"},
			{Name: "default", Type: "boolean"},
		},
	}
	cfg := NewConfig(Options{AttributeMapping: map[string]string{
		"class":   "custom-class",
		"default": "is-default",
	}})

	attrs, err := ReconcileAttributes(cfg, comp)
	require.NoError(t, err)

	require.Len(t, attrs.BooleanAttributes, 1)
	def := attrs.BooleanAttributes[0]
	assert.Equal(t, "is-default", def.Name)
	assert.Equal(t, "default", def.OriginalName)
	assert.Equal(t, "isDefault", def.FieldName)
	assert.Equal(t, "default", def.WireName())

	class := attrs.Attributes[0]
	assert.Equal(t, "custom-class", class.Name)
	assert.Equal(t, "class", class.OriginalName)
	assert.Equal(t, "customClass", class.FieldName)
	assert.False(t, class.HasField)
	assert.Equal(t, "class", class.WireName())
}

func TestReconcileAttributes_NoAttributes(t *testing.T) {
	attrs, err := ReconcileAttributes(NewConfig(Options{}), manifest.Component{ClassName: "X", TagName: "x-x"})
	require.NoError(t, err)

	assert.Empty(t, attrs.BooleanAttributes)
	assert.Equal(t, []string{"for"}, names(attrs.Attributes))
}

// --- PromoteProperties tests ---

func TestPromoteProperties(t *testing.T) {
	comp := fixtureComponent(t, "MyButton")
	attrs, err := ReconcileAttributes(NewConfig(Options{}), comp)
	require.NoError(t, err)

	props := PromoteProperties(comp, attrs)

	var got []string
	for _, p := range props {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{"value", "legacy"}, got)
	assert.Equal(t, "The current value.", props[0].Description)
	assert.True(t, props[1].Deprecated.Deprecated)
}

func TestPromoteProperties_NeverSharesAttributeField(t *testing.T) {
	comp := fixtureComponent(t, "MyButton")
	attrs, err := ReconcileAttributes(NewConfig(Options{}), comp)
	require.NoError(t, err)

	fields := make(map[string]bool)
	for _, a := range attrs.All() {
		fields[a.FieldName] = true
	}
	for _, p := range PromoteProperties(comp, attrs) {
		assert.False(t, fields[p.Name], "property %s duplicates an attribute field", p.Name)
	}
}

func TestPromoteProperties_SkipsRenamedAttributeField(t *testing.T) {
	comp := manifest.Component{
		ClassName: "MyInput",
		TagName:   "my-input",
		Attributes: []manifest.Attribute{
			{Name: "class", FieldName: "klass", Type: "string"},
		},
		Members: []manifest.Member{
			{Kind: manifest.MemberKindField, Name: "klass", Type: "string", Description: "Extra classes."},
			{Kind: manifest.MemberKindField, Name: "value", Type: "string", Description: "The value."},
		},
	}
	cfg := NewConfig(Options{AttributeMapping: map[string]string{"class": "custom-class"}})
	attrs, err := ReconcileAttributes(cfg, comp)
	require.NoError(t, err)

	class := attrs.Attributes[0]
	assert.Equal(t, "customClass", class.FieldName)
	assert.Equal(t, "klass", class.BackingField)

	props := PromoteProperties(comp, attrs)
	require.Len(t, props, 1)
	assert.Equal(t, "value", props[0].Name)
}

// --- Config tests ---

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(Options{})

	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, ".", cfg.RootDir)
	assert.Equal(t, "description", cfg.DescriptionSrc)
	assert.NotNil(t, cfg.AttributeMapping)
	assert.NotNil(t, cfg.Exclude)
}

func TestNewConfig_CopiesCallerValues(t *testing.T) {
	mapping := map[string]string{"class": "custom-class"}
	exclude := []string{"MyLabel"}
	cfg := NewConfig(Options{AttributeMapping: mapping, Exclude: exclude})

	mapping["class"] = "changed"
	exclude[0] = "changed"

	assert.Equal(t, "custom-class", cfg.AttributeMapping["class"])
	assert.Equal(t, "MyLabel", cfg.Exclude[0])
}

func TestConfig_ComponentName(t *testing.T) {
	comp := manifest.Component{ClassName: "SlButton", TagName: "sl-button"}

	assert.Equal(t, "SlButton", NewConfig(Options{}).ComponentName(comp))

	cfg := NewConfig(Options{ComponentNameFormatter: func(tag, class string) string {
		return "Sl" + class[2:] + "Wrapper"
	}})
	assert.Equal(t, "SlButtonWrapper", cfg.ComponentName(comp))

	empty := NewConfig(Options{ComponentNameFormatter: func(string, string) string { return "" }})
	assert.Equal(t, "SlButton", empty.ComponentName(comp))
}
