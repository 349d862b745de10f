package llm

import "fmt"

// answerPrompt is the prompt used to answer a question from retrieved
// document context. The context block may be empty; the model is still asked
// to answer from what it was given.
func answerPrompt(question, contextText string) string {
	return fmt.Sprintf(`You're a helpful assistant. Use the following context to answer the user's question:

Context:
%s

Question:
%s

Answer:
`, contextText, question)
}
