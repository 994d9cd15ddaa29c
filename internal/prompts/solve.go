// Package prompts implements MCP prompt handlers for maxsub.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// SolvePrompt handles the maxsub-solve MCP prompt.
// It asks the AI to run max_subarray_sum and explain the winning run.
type SolvePrompt struct{}

// NewSolvePrompt creates a SolvePrompt.
func NewSolvePrompt() *SolvePrompt {
	return &SolvePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SolvePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("maxsub-solve",
		mcp.WithPromptDescription(
			"Find the maximum contiguous subarray sum of a list of numbers and explain "+
				"which run produces it.",
		),
		mcp.WithArgument("numbers",
			mcp.ArgumentDescription("The sequence, e.g. \"-2, 1, -3, 4\""),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("kind",
			mcp.ArgumentDescription("Element type: auto (default), int or float"),
		),
	)
}

// Handle processes the maxsub-solve prompt request.
func (p *SolvePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	numbers := ""
	kind := "auto"
	if args := req.Params.Arguments; args != nil {
		numbers = strings.TrimSpace(args["numbers"])
		if k := strings.TrimSpace(args["kind"]); k != "" {
			kind = k
		}
	}

	var text string
	if numbers == "" {
		text = "I want the maximum contiguous subarray sum of a sequence, but I haven't given it yet.\n\n" +
			"Ask me for the numbers. Do not call `max_subarray_sum` with an empty array and " +
			"do not assume the answer is 0."
	} else {
		text = fmt.Sprintf(
			"Find the maximum contiguous subarray sum of: %s\n\n"+
				"Please:\n"+
				"1. Call `max_subarray_sum` with numbers=[%s] and kind='%s'\n"+
				"2. Report the sum and the run that produces it, with its start and end positions\n"+
				"3. If every number is negative, point out that the answer is the largest single element\n"+
				"4. If the tool reports invalid input, tell me the sequence was empty instead of giving a number",
			numbers, numbers, kind,
		)
	}

	return &mcp.GetPromptResult{
		Description: "Maximum subarray sum",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
