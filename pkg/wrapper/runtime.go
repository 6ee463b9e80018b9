package wrapper

import (
	"fmt"
	"strings"
	"text/template"
)

// Runtime helper file names.
const (
	ReactUtilsFile        = "react-utils.js"
	ScopeProviderFile     = "ScopeProvider.js"
	ScopeProviderTypeFile = "ScopeProvider.d.ts"
	IndexFile             = "index.js"
	IndexTypeFile         = "index.d.ts"
)

var reactUtilsTemplate = template.Must(template.New("react-utils").Parse(`import { useEffect, useLayoutEffect, useRef } from "react";
{{if .SSRSafe}}
const useIsomorphicLayoutEffect = typeof window !== "undefined" ? useLayoutEffect : useEffect;
{{end}}
export function mergeRefs(target, forwardedRef) {
if (!forwardedRef) {
return;
}

if (typeof forwardedRef === "function") {
forwardedRef(target);
} else {
forwardedRef.current = target;
}
}

export function createForwardedRefHandler(localRef, forwardedRef) {
return (node) => {
localRef.current = node;
mergeRefs(node, forwardedRef);
};
}

export function useProperties(targetElement, propName, value) {
useEffect(() => {
const el = targetElement?.current;
if (!el || value === undefined || el[propName] === value) {
return;
}

try {
el[propName] = value;
} catch (e) {
console.warn(e);
}
}, [targetElement, propName, value]);
}

export function useEventListener(targetElement, eventName, eventHandler) {
// the listener reads the latest handler so re-renders never re-register it
const handlerRef = useRef(eventHandler);
handlerRef.current = eventHandler;

{{if .SSRSafe}}useIsomorphicLayoutEffect{{else}}useLayoutEffect{{end}}(() => {
const el = targetElement?.current;
if (!el || eventName === undefined) {
return;
}

const eventListener = (event) => {
const handler = handlerRef.current;
if (handler) {
handler(event);
}
};

el.addEventListener(eventName, eventListener);

return () => {
const handler = handlerRef.current;
if (handler?.cancel) {
handler.cancel();
}
el.removeEventListener(eventName, eventListener);
};
}, [eventName, targetElement?.current]);
}
`))

var scopeProviderTemplate = template.Must(template.New("scope-provider").Parse(`{{if .SSRSafe}}"use client";

{{end}}import { createContext } from "react";
import { jsx } from "react/jsx-runtime";

export const ScopeContext = createContext(null);

export function ScopeProvider({ tagFormatter, children }) {
return jsx(ScopeContext.Provider, {
value: { tagFormatter },
children,
});
}
`))

const scopeProviderTypes = `import React from "react";

export type ScopeProps = {
/** Optional function to format the custom element tag names. */
tagFormatter?: (tagName: string, componentName: string) => string;
children?: React.ReactNode;
};

/**
 * Provides a mechanism to add a custom prefix or suffix to child components.
 * This prevents tag name collisions with components from different versions of the same library.
 */
export function ScopeProvider(props: ScopeProps): React.JSX.Element;
`

type runtimeView struct {
	SSRSafe bool
}

// RenderReactUtils renders the shared hooks used by every wrapper.
func RenderReactUtils(cfg *Config) (string, error) {
	var b strings.Builder
	if err := reactUtilsTemplate.Execute(&b, runtimeView{SSRSafe: cfg.SSRSafe}); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", ReactUtilsFile, err)
	}
	return b.String(), nil
}

// RenderScopeProvider renders the ScopeProvider module and its declaration.
func RenderScopeProvider(cfg *Config) (js, dts string, err error) {
	var b strings.Builder
	if err := scopeProviderTemplate.Execute(&b, runtimeView{SSRSafe: cfg.SSRSafe}); err != nil {
		return "", "", fmt.Errorf("failed to render %s: %w", ScopeProviderFile, err)
	}
	return b.String(), scopeProviderTypes, nil
}

// RenderBarrel renders index.js (and index.d.ts, which has the same
// content) re-exporting every component and the scope provider.
func RenderBarrel(cfg *Config, names []string) string {
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "export * from %s;\n", jsString("./"+name+".js"))
	}
	if cfg.ScopedTags {
		fmt.Fprintf(&b, "export * from %s;\n", jsString("./"+ScopeProviderFile))
	}
	return b.String()
}
