package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerateText sends a prompt to Gemini and returns the text reply.
func GeminiGenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("cannot create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no usable result")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// BookSummaryPrompt builds the prompt for the admin "generate summary"
// action.
func BookSummaryPrompt(title, author, description string) string {
	return fmt.Sprintf(
		"Write a concise reader-facing summary (120-180 words) of the book %q by %s. "+
			"Catalog description: %s. "+
			"Plain prose only, no markdown, no spoilers beyond the premise.",
		title, author, description,
	)
}
