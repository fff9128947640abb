package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

func TestCheckValidBuffers(t *testing.T) {
	v := New(nil)

	inputs := []string{
		"local x = 1\n",
		"function f()\n  if x then\n    return 1\n  end\nend\n",
		"repeat\n  x = x + 1\nuntil x > 3\n",
		"local t = { a = f(1), b = s[2] }\n",
		"-- just a comment\n",
		"",
	}

	for _, input := range inputs {
		report := v.Check(input)
		assert.True(t, report.Valid, "input %q: %+v", input, report.Errors)
		assert.Empty(t, report.Errors)
	}
}

func TestCheckMissingOuterEnd(t *testing.T) {
	v := New(nil)
	report := v.Check("function f()\n  if true then\n    print(1)\n  end\n")

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, analyze.KindUnclosedBlock, report.Errors[0].Kind)
	assert.Equal(t, 1, report.Errors[0].Line)

	require.Len(t, report.Blocks.Unclosed, 1)
	assert.Equal(t, analyze.BlockFunction, report.Blocks.Unclosed[0].Kind)
}

func TestCheckExtraEnd(t *testing.T) {
	v := New(nil)
	report := v.Check("function f() end\nend\n")

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, analyze.KindExtraCloser, report.Errors[0].Kind)
	assert.Equal(t, 2, report.Errors[0].Line)
}

func TestCheckWarningsDoNotInvalidate(t *testing.T) {
	v := New(nil)
	report := v.Check("wait(1)\n")

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	require.NotEmpty(t, report.Warnings)
	assert.Equal(t, analyze.KindDeprecatedAPI, report.Warnings[0].Kind)
}

func TestCheckUnterminatedStringSeverity(t *testing.T) {
	v := New(nil)

	// Alone, an unterminated short string is a warning.
	report := v.Check("s = \"oops\n")
	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, analyze.KindUnterminatedString, report.Warnings[0].Kind)

	// With bracket confusion in the buffer it escalates to an error.
	report = v.Check("x = \"oops\nf((1)\n")
	assert.False(t, report.Valid)
	found := false
	for _, f := range report.Errors {
		if f.Kind == analyze.KindUnterminatedString {
			found = true
		}
	}
	assert.True(t, found, "unterminated string not escalated: %+v", report.Errors)
}

func TestCheckUnterminatedLongBracketIsError(t *testing.T) {
	v := New(nil)
	report := v.Check("s = [=[ a ]]\n")

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, analyze.KindUnterminatedString, report.Errors[0].Kind)
}

func TestCheckIdempotent(t *testing.T) {
	v := New(nil)
	input := "function f()\n  g(\"x\n  h(1))\nend\nend\n"

	first := v.Check(input)
	second := v.Check(input)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Blocks.Unclosed, second.Blocks.Unclosed)
	assert.Equal(t, first.Brackets.Unclosed, second.Brackets.Unclosed)
}

func TestValidateSimulatesEdit(t *testing.T) {
	v := New(nil)

	// Deleting the closer breaks the candidate even though the original
	// file is fine.
	original := "function f()\n  return 1\nend\n"
	report, err := v.Validate(original, patch.Edit{Operation: patch.OpDelete, StartLine: 3})
	require.NoError(t, err)
	assert.False(t, report.Valid)

	// Replacing it with an equivalent line keeps it valid.
	report, err = v.Validate(original, patch.Edit{
		Operation: patch.OpReplace, StartLine: 2, NewText: "  return 2",
	})
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestValidateRangeViolation(t *testing.T) {
	v := New(nil)
	_, err := v.Validate("a\n", patch.Edit{Operation: patch.OpDelete, StartLine: 5})

	var rangeErr *patch.RangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestAutoFixAppendsMissingEnds(t *testing.T) {
	cfg := config.NewConfig()
	cfg.AutoFix = true
	v := New(cfg)

	report := v.Check("function f()\n  if x then\n    print(1)\n")

	// The report still describes the submitted candidate.
	assert.False(t, report.Valid)
	assert.True(t, report.AutoFixed)
	assert.Equal(t, "function f()\n  if x then\n    print(1)\nend\nend\n", report.FixedText)

	// And the fixed text really is clean.
	fixed := New(nil).Check(report.FixedText)
	assert.True(t, fixed.Valid)
}

func TestAutoFixSkippedWithBracketErrors(t *testing.T) {
	cfg := config.NewConfig()
	cfg.AutoFix = true
	v := New(cfg)

	report := v.Check("function f(\n  print(1)\n")

	assert.False(t, report.Valid)
	assert.False(t, report.AutoFixed)
	assert.Empty(t, report.FixedText)
}

func TestAutoFixSkippedForUnclosedRepeat(t *testing.T) {
	cfg := config.NewConfig()
	cfg.AutoFix = true
	v := New(cfg)

	report := v.Check("repeat\n  f()\n")

	assert.False(t, report.Valid)
	assert.False(t, report.AutoFixed)
}

func TestAutoFixDisabledByDefault(t *testing.T) {
	v := New(nil)
	report := v.Check("function f()\n")

	assert.False(t, report.Valid)
	assert.False(t, report.AutoFixed)
	assert.Empty(t, report.FixedText)
}
