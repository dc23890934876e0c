package prompts

import (
	"fmt"

	"github.com/repotutor/repotutor-backend/internal/types"
)

// PromptPair is the two-message prompt sent to the model.
type PromptPair struct {
	System string
	User   string
}

// GuardInstruction is appended verbatim to every user prompt. Sparse
// documentation makes models fill gaps with plausible fiction; the
// instruction pins them to the provided material.
const GuardInstruction = "Do not invent behavior that is not documented in the provided source material."

// Build combines the source blob and user context into a prompt pair.
// Pure apart from the store read, which is a single string copy.
func Build(sourceBlob, context string, kind types.SourceKind, store *Store) (PromptPair, error) {
	system, err := store.Get(kind)
	if err != nil {
		return PromptPair{}, err
	}
	user := fmt.Sprintf(`Repository/Tool Information:
%s

User Context/Use Case:
%s

Please create a custom learning course based on this information. %s`, sourceBlob, context, GuardInstruction)
	return PromptPair{System: system, User: user}, nil
}
