// Package langdetect decides whether a file holds Lua-family source.
// Extension checks handle the common case; extensionless files (Busted
// specs, embedded scripts, plugin files) go through go-enry plus a few
// Lua-specific patterns.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// luaExtensions are the file extensions treated as Lua without looking
// at content. Luau is Roblox's Lua dialect.
var luaExtensions = map[string]bool{
	".lua":  true,
	".luau": true,
}

// HasLuaExtension reports whether the path carries a Lua file extension.
func HasLuaExtension(path string) bool {
	return luaExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsLua reports whether the file at path with the given content is
// Lua-family source. The extension alone decides when present; content
// detection only runs for extensionless paths.
func IsLua(path string, content []byte) bool {
	if ext := filepath.Ext(path); ext != "" {
		return luaExtensions[strings.ToLower(ext)]
	}
	return ContentIsLua(content)
}

// ContentIsLua classifies raw content as Lua source.
func ContentIsLua(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	// Shebang is the most reliable signal for extensionless scripts.
	// enry reports shebang matches with safe=false, so the language
	// string itself is the verdict.
	if lang, _ := enry.GetLanguageByShebang(content); lang != "" {
		return lang == "Lua"
	}

	if matchesLuaPattern(content) {
		return true
	}

	lang, safe := enry.GetLanguageByClassifier(content, []string{
		"Lua", "Python", "Shell", "JavaScript", "Ruby", "Perl", "Text",
	})
	return safe && lang == "Lua"
}

// matchesLuaPattern checks for constructs that are distinctive enough to
// classify without the statistical model.
func matchesLuaPattern(content []byte) bool {
	if bytes.Contains(content, []byte("local function ")) {
		return true
	}
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("--")) {
		return true
	}
	// "local x = require(...)": require with a local binding is Lua's
	// module idiom; Node's require lacks the local keyword.
	if bytes.Contains(content, []byte("local ")) && bytes.Contains(content, []byte("require(")) {
		return true
	}
	if bytes.Contains(content, []byte("end\n")) &&
		(bytes.Contains(content, []byte(" then\n")) || bytes.Contains(content, []byte(" then ")) ||
			bytes.Contains(content, []byte("function"))) {
		return true
	}
	return false
}
