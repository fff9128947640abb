package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

// editFlags describes a line edit given on the command line, shared by
// the preview and apply commands.
type editFlags struct {
	op       string
	start    int
	end      int
	text     string
	textFile string
}

func addEditFlags(cmd *cobra.Command, flags *editFlags) {
	cmd.Flags().StringVar(&flags.op, "op", "", "edit operation: insert, replace, delete")
	cmd.Flags().IntVar(&flags.start, "start", 0, "first affected line (1-based)")
	cmd.Flags().IntVar(&flags.end, "end", 0, "last affected line (defaults to --start)")
	cmd.Flags().StringVar(&flags.text, "text", "", "replacement text for insert/replace")
	cmd.Flags().StringVar(&flags.textFile, "text-file", "",
		"read replacement text from a file, or - for stdin")
	_ = cmd.MarkFlagRequired("op")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
}

// toEdit builds the edit descriptor, resolving --text-file if given.
// Range validity against the target buffer is left to the simulator.
func (f *editFlags) toEdit(stdin io.Reader) (patch.Edit, error) {
	op := patch.Op(strings.ToLower(f.op))
	switch op {
	case patch.OpInsert, patch.OpReplace, patch.OpDelete:
	default:
		return patch.Edit{}, fmt.Errorf("unknown operation %q (expected insert, replace, or delete)", f.op)
	}

	text := f.text
	if f.textFile != "" {
		content, err := readTextSource(f.textFile, stdin)
		if err != nil {
			return patch.Edit{}, err
		}
		text = content
	}
	if op == patch.OpDelete && text != "" {
		return patch.Edit{}, fmt.Errorf("delete takes no replacement text")
	}

	return patch.Edit{
		Operation: op,
		StartLine: f.start,
		EndLine:   f.end,
		NewText:   text,
	}, nil
}

func readTextSource(source string, stdin io.Reader) (string, error) {
	if source == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}
	return string(content), nil
}
