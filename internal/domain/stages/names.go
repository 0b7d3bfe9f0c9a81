package stages

func nameSet(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}

	return out
}

var keywords = nameSet(
	"await", "break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "enum", "export", "extends", "false",
	"finally", "for", "function", "if", "implements", "import", "in",
	"instanceof", "interface", "let", "new", "null", "package", "private",
	"protected", "public", "return", "static", "super", "switch", "this",
	"throw", "true", "try", "typeof", "var", "void", "while", "with", "yield",
	"async", "of", "get", "set", "undefined", "NaN", "Infinity", "arguments",
	"eval",
)

// controlKeywords precede a parenthesised head that is not a parameter list.
var controlKeywords = nameSet("if", "for", "while", "switch", "catch", "with", "return", "typeof", "await", "yield")

// globals are host and language names a script may reach without declaring.
var globals = nameSet(
	"window", "document", "console", "navigator", "location", "history",
	"screen", "localStorage", "sessionStorage", "fetch", "Promise", "Date",
	"Math", "String", "Number", "Boolean", "Array", "Object", "JSON", "RegExp",
	"Error", "TypeError", "RangeError", "Symbol", "Map", "Set", "WeakMap",
	"WeakSet", "Proxy", "Reflect", "Intl", "BigInt", "parseInt", "parseFloat",
	"isNaN", "isFinite", "setTimeout", "setInterval", "clearTimeout",
	"clearInterval", "requestAnimationFrame", "cancelAnimationFrame", "alert",
	"confirm", "prompt", "event", "self", "globalThis", "performance",
	"crypto", "URL", "URLSearchParams", "FormData", "Blob", "File",
	"FileReader", "Image", "Audio", "XMLHttpRequest", "WebSocket", "Worker",
	"HTMLElement", "Element", "Node", "Event", "CustomEvent",
	"encodeURIComponent", "decodeURIComponent", "encodeURI", "decodeURI",
	"atob", "btoa", "structuredClone", "queueMicrotask", "name", "status",
	"top", "parent", "frames", "opener", "closed", "length", "origin",
	"require", "module", "exports", "define",
)
