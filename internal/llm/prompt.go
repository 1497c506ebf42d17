package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/structure_v1.txt
	structurePromptV1 string
)

// StructurePromptV1 returns the system instruction used to structure resume text.
func StructurePromptV1() string {
	return structurePromptV1
}

// BuildPrompt returns the system instruction and user message for rawText.
func BuildPrompt(rawText string) (system string, user string) {
	var b strings.Builder
	b.WriteString("Resume text:\n\n")
	b.WriteString(strings.TrimSpace(rawText))
	return StructurePromptV1(), b.String()
}
