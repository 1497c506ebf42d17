package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Suhaibk137/atsclaude/internal/llm"
	"github.com/Suhaibk137/atsclaude/resume/render"
)

// renderCmd lays out a stored record without calling a provider. The input is
// parsed the same way a model reply is.
func renderCmd() *cobra.Command {
	var out string
	var asText bool

	cmd := &cobra.Command{
		Use:   "render <record.json>",
		Short: "Render a resume record JSON file to DOCX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			record, err := llm.ParseRecord(string(raw))
			if err != nil {
				return err
			}
			doc := render.Render(record)

			if asText {
				fmt.Fprintln(cmd.OutOrStdout(), doc.Text())
				return nil
			}

			data, err := render.Serialize(doc)
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], ".json") + ".docx"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: input with .docx extension)")
	cmd.Flags().BoolVar(&asText, "text", false, "print the block layout as plain text instead of writing DOCX")
	return cmd
}
