package oracle

import (
	"fmt"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

const systemPrompt = "You are an expert in climate risk assessment and risk interactions."

// buildInteractionPrompt asks the oracle to reason about one pair of risks
// and finish with a single interaction score. The analytics core never sees
// this text; it only consumes the trailing numeric token of the response.
func buildInteractionPrompt(a, b schemas.Risk) string {
	return fmt.Sprintf(`Analyze the interaction between the following two climate-related risks:

Risk 1: %s
Category: %s
Subcategory: %s

Risk 2: %s
Category: %s
Subcategory: %s

Consider how these risks could co-occur, amplify or dampen one another, and
whether one could trigger the other. Conclude your analysis with a single
interaction score between 0 and 1, where 0 means no interaction and 1 means
the strongest possible interaction. The score must be the last number in your
response.`,
		a.Description, a.Category, a.Subcategory,
		b.Description, b.Category, b.Subcategory)
}
