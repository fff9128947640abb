package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/luasrc"
)

// Style check IDs, usable in the checks section of the config file.
const (
	CheckDeprecatedAPI    = "deprecated-api"
	CheckNamingConvention = "naming-convention"
)

// deprecatedCalls maps dotted library calls to their replacements.
// Matches are word-bounded: "mytable.getn" does not match "table.getn".
var deprecatedCalls = map[string]string{
	"table.getn":     "#t",
	"table.setn":     "direct assignment",
	"table.foreach":  "a numeric or pairs() loop",
	"table.foreachi": "an ipairs() loop",
	"string.gfind":   "string.gmatch",
	"math.mod":       "the % operator",
	"math.ldexp":     "multiplication by 2^n",
}

// deprecatedGlobals maps bare global calls to their replacements. A match
// preceded by '.' or ':' is a member access, not the global, and is skipped.
var deprecatedGlobals = map[string]string{
	"wait":        "task.wait",
	"spawn":       "task.spawn",
	"delay":       "task.delay",
	"elapsedTime": "os.clock",
}

// RunStyleChecks applies the configurable warning-only checks to a scanned
// buffer. Structural analysis never runs here: the block and bracket
// analyzers own it, with non-negotiable severities.
func RunStyleChecks(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult, cfg *config.Config) []Finding {
	var findings []Finding

	if enabled(cfg, CheckDeprecatedAPI) {
		fs := checkDeprecatedAPIs(snap, scan)
		findings = append(findings, applySeverity(cfg, CheckDeprecatedAPI, fs)...)
	}
	if enabled(cfg, CheckNamingConvention) {
		fs := checkNaming(snap, scan)
		findings = append(findings, applySeverity(cfg, CheckNamingConvention, fs)...)
	}

	return findings
}

func enabled(cfg *config.Config, id string) bool {
	cc := cfg.CheckFor(id)
	if cc == nil || cc.Enabled == nil {
		return true
	}
	return *cc.Enabled
}

func applySeverity(cfg *config.Config, id string, findings []Finding) []Finding {
	cc := cfg.CheckFor(id)
	if cc == nil || cc.Severity == nil {
		return findings
	}
	sev := config.Severity(*cc.Severity)
	for i := range findings {
		findings[i].Severity = sev
	}
	return findings
}

// checkDeprecatedAPIs scans code spans for calls to deprecated library
// functions and superseded Roblox globals.
func checkDeprecatedAPIs(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult) []Finding {
	var findings []Finding

	for _, sp := range scan.Spans {
		if !sp.IsCode() {
			continue
		}
		text := string(sp.Text(snap.LineContent(sp.Line)))

		for call, replacement := range deprecatedCalls {
			for _, idx := range wordBoundedIndexes(text, call) {
				f := NewFinding(KindDeprecatedAPI, sp.Line, sp.StartCol+idx,
					fmt.Sprintf("%s is deprecated", call))
				f.Suggestion = "Use " + replacement + " instead"
				findings = append(findings, f)
			}
		}

		for name, replacement := range deprecatedGlobals {
			for _, idx := range wordBoundedIndexes(text, name) {
				// Member access like task.wait or obj:delay is fine.
				if idx > 0 && (text[idx-1] == '.' || text[idx-1] == ':') {
					continue
				}
				f := NewFinding(KindDeprecatedAPI, sp.Line, sp.StartCol+idx,
					fmt.Sprintf("global %s is deprecated", name))
				f.Suggestion = "Use " + replacement + " instead"
				findings = append(findings, f)
			}
		}
	}

	// Map iteration order varies between runs; findings come out in
	// source order so repeated checks of one buffer report identically.
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Column < findings[j].Column
	})
	return findings
}

// wordBoundedIndexes returns the 0-based indexes of needle in text where
// the match is not embedded in a longer identifier.
func wordBoundedIndexes(text, needle string) []int {
	var out []int
	from := 0
	for {
		idx := strings.Index(text[from:], needle)
		if idx < 0 {
			return out
		}
		idx += from
		before := idx == 0 || !isWordChar(text[idx-1])
		afterIdx := idx + len(needle)
		after := afterIdx >= len(text) || !isWordChar(text[afterIdx])
		if before && after {
			out = append(out, idx)
		}
		from = idx + len(needle)
	}
}

// checkNaming flags local bindings with malformed names: leading or
// trailing underscores and doubled underscores. The bare '_' discard
// name is allowed.
func checkNaming(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult) []Finding {
	var findings []Finding
	expectName := false

	forEachCodeWord(snap, scan, func(w word) {
		if w.text == "local" {
			expectName = true
			return
		}
		if !expectName {
			return
		}
		expectName = false

		// 'local function name' is a function declaration, names checked
		// the same way on the next word.
		if w.text == "function" {
			expectName = true
			return
		}

		if w.text == "_" {
			return
		}
		if badName(w.text) {
			f := NewFinding(KindNamingConvention, w.line, w.col,
				fmt.Sprintf("name %q has stray underscores", w.text))
			f.Suggestion = "Use plain camelCase or snake_case names"
			findings = append(findings, f)
		}
	})

	return findings
}

func badName(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_") {
		return true
	}
	return strings.Contains(name, "__")
}
