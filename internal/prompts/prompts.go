// Package prompts holds the fixed request content and console text for kluster.
package prompts

import "fmt"

// DefaultModel is the model the request is sent to unless overridden.
const DefaultModel = "mistralai/Mistral-Small-24B-Instruct-2501"

// BreakfastSandwich is the single user message of the default request.
const BreakfastSandwich = "What is the ultimate breakfast sandwich?"

// APIKeyPrompt is shown when no API key is found in the environment.
const APIKeyPrompt = "Enter your kluster.ai API key: "

// SendingNotice is printed, followed by a blank line, before the request goes out.
const SendingNotice = "📤 Sending a chat completion request to kluster.ai..."

// ResponseHeader returns the line printed above the generated text.
func ResponseHeader(model string) string {
	return fmt.Sprintf("\n🔍 AI response (model: %s):", model)
}
