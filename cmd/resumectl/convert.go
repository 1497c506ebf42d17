package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Suhaibk137/atsclaude/internal/bootstrap"
	"github.com/Suhaibk137/atsclaude/internal/convert"
	"github.com/Suhaibk137/atsclaude/internal/llm"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/util"
)

func convertCmd() *cobra.Command {
	var apiKey string
	var out string
	var provider string
	var modelName string

	cmd := &cobra.Command{
		Use:   "convert <resume>",
		Short: "Convert a PDF, DOC, DOCX or TXT resume to DOCX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if apiKey == "" {
				apiKey = os.Getenv("LLM_API_KEY")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			cfg := config.Load()
			if provider != "" {
				cfg.LLMProvider = strings.ToLower(provider)
			}
			if modelName != "" {
				cfg.LLMModel = modelName
			}
			completer, err := bootstrap.NewCompleter(cfg)
			if err != nil {
				return err
			}

			svc := &convert.Service{
				Structurer: llm.NewClient(completer, llm.Options{
					MaxTokens:   cfg.LLMMaxTokens,
					Temperature: cfg.LLMTemperature,
				}),
				MaxUploadBytes: cfg.MaxUploadBytes,
			}
			result, err := svc.Convert(cmd.Context(), convert.Input{
				FileName: filepath.Base(path),
				Data:     data,
				APIKey:   apiKey,
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(filepath.Dir(path), util.ConvertedFileName(filepath.Base(path)))
			}
			if err := os.WriteFile(out, result.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key (default: $LLM_API_KEY)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: <name>_converted.docx next to the input)")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider: anthropic|openai|gemini (default: $LLM_PROVIDER)")
	cmd.Flags().StringVar(&modelName, "model", "", "provider model (default: $LLM_MODEL)")
	return cmd
}
