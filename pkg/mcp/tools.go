package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolListComponents  = "list_components"
	ToolGetComponentAPI = "get_component_api"
	ToolPreviewWrapper  = "preview_wrapper"
)

// Preview parts accepted by preview_wrapper.
const (
	PartWrapper = "wrapper"
	PartTypes   = "types"
	PartBoth    = "both"
)

func listComponentsTool() mcp.Tool {
	return mcp.NewTool(ToolListComponents,
		mcp.WithDescription("List the custom elements of the manifest that wrappers are generated for. "+
			"Excluded components are omitted."),
		mcp.WithString("filter",
			mcp.Description("Glob matched against class and tag names, e.g. \"My*\" or \"my-*\"")),
	)
}

func getComponentAPITool() mcp.Tool {
	return mcp.NewTool(ToolGetComponentAPI,
		mcp.WithDescription("Reconciled React API of one component: attributes with their prop names, "+
			"boolean attributes, forwarded properties, event handlers, slots and CSS hooks."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Class name of the custom element, e.g. \"MyButton\"")),
	)
}

func previewWrapperTool() mcp.Tool {
	return mcp.NewTool(ToolPreviewWrapper,
		mcp.WithDescription("Render the generated wrapper module and/or type declaration of one component "+
			"without writing files."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Class name of the custom element")),
		mcp.WithString("part",
			mcp.Description("Which file to render (default both)"),
			mcp.Enum(PartWrapper, PartTypes, PartBoth)),
	)
}
