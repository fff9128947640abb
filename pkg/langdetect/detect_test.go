package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/langdetect"
)

func TestHasLuaExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"main.lua", true},
		{"Module.LUA", true},
		{"game/init.luau", true},
		{"script.py", false},
		{"README.md", false},
		{"run", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.HasLuaExtension(tt.path))
		})
	}
}

func TestIsLua(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{
			name: "lua extension wins regardless of content",
			path: "weird.lua", content: "#!/usr/bin/env python\nprint(1)\n",
			want: true,
		},
		{
			name: "non-lua extension wins regardless of content",
			path: "mod.py", content: "local x = 1\n",
			want: false,
		},
		{
			name: "extensionless lua shebang",
			path: "run", content: "#!/usr/bin/env lua\nprint('hi')\n",
			want: true,
		},
		{
			name: "extensionless shell shebang",
			path: "run", content: "#!/bin/sh\necho hi\n",
			want: false,
		},
		{
			name: "extensionless local function",
			path: "init", content: "local function setup()\n  return 1\nend\n",
			want: true,
		},
		{
			name: "extensionless comment header",
			path: "conf", content: "-- plugin configuration\nreturn { enabled = true }\n",
			want: true,
		},
		{
			name: "extensionless require idiom",
			path: "loader", content: "local json = require(\"json\")\nreturn json\n",
			want: true,
		},
		{
			name: "empty content",
			path: "empty", content: "",
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsLua(tt.path, []byte(tt.content)))
		})
	}
}
