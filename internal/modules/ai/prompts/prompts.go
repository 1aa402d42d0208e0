// Package prompts composes the provider prompts. Note content and user text are embedded
// verbatim; the model is told where context ends and the question begins.
package prompts

import (
	"fmt"
	"strings"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
)

// NoRelevantNotesAnswer is returned for a question when the owner has no retrievable notes.
const NoRelevantNotesAnswer = "I couldn't find any relevant notes in your account."

// Appended on the fallback tier.
const (
	StrictStructuredFraming = "IMPORTANT: Respond with valid JSON only: no code blocks, no markdown, no formatting wrappers, no text before or after the JSON object."
	StrictTextFraming       = "IMPORTANT: Respond in plain text only: no code blocks, no markdown headings, no preamble."
)

func init() {
	mustRegister(Definition{
		Name:    PromptNotesQA,
		Version: 1,
		Body: `
You are a helpful assistant. Answer the user's question based ONLY on the context below.
If the context does not contain the answer, say that the notes do not cover it.

Context (User's Notes):
{{.Context}}

User Question: {{.Question}}`,
	})
	mustRegister(Definition{
		Name:    PromptQuizBuild,
		Version: 1,
		Body: `
Create a quiz with exactly 5 multiple-choice questions based on the following content.
Every question must have a non-empty "options" list, and "correctAnswer" must be copied exactly from "options".
Return only this JSON object, with no prose and no code blocks:
{
  "title": "A suitable title for the quiz",
  "questions": [
    {
      "questionText": "Question here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option A"
    }
  ]
}

Content:
{{.Content}}`,
	})
	mustRegister(Definition{
		Name:    PromptQuizTutor,
		Version: 1,
		Body: `
You are a tutor. The user has just taken a quiz.
Here is the quiz context and results:

{{.Results}}

User Question: {{.Question}}

Answer the user kindly and explain their mistakes if any.`,
	})
	mustRegister(Definition{
		Name:    PromptSummary,
		Version: 1,
		Body: `
Summarize the following note in 2-4 sentences of plain text. Keep the key facts and terms.

Title: {{.Title}}

Content:
{{.Content}}`,
	})
}

// NoteContext renders each hit as "Title: ...\nContent: ..." separated by blank lines.
func NoteContext(hits retrieval.Result) string {
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, "Title: "+h.Title+"\nContent: "+h.Content)
	}
	return strings.Join(parts, "\n\n")
}

func QA(question string, hits retrieval.Result) string {
	return render(PromptNotesQA, Input{Question: question, Context: NoteContext(hits)})
}

func Quiz(content string) string {
	return render(PromptQuizBuild, Input{Content: content})
}

// QuizResults lists every question in position order with the user's answer and outcome.
func QuizResults(q *types.Quiz) string {
	if q == nil {
		return ""
	}
	var b strings.Builder
	for i, qu := range q.Questions {
		answer := "(no answer)"
		if qu.UserAnswer != nil {
			answer = *qu.UserAnswer
		}
		result := "Wrong"
		if qu.IsCorrect != nil && *qu.IsCorrect {
			result = "Correct"
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q%d: %s\nMy Answer: %s\nCorrect Answer: %s\nResult: %s",
			i+1, qu.QuestionText, answer, qu.CorrectAnswer, result)
	}
	return b.String()
}

func QuizChat(q *types.Quiz, followup string) string {
	return render(PromptQuizTutor, Input{Question: followup, Results: QuizResults(q)})
}

func Summary(title, content string) string {
	return render(PromptSummary, Input{Title: title, Content: content})
}

// Frame appends the strict instruction for the given mode to prompt.
func Frame(prompt string, structured bool) string {
	framing := StrictTextFraming
	if structured {
		framing = StrictStructuredFraming
	}
	return prompt + "\n\n" + framing
}
