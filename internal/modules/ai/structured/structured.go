// Package structured turns untrusted model output into validated payloads.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

const op = "structured.ParseQuizPayload"

type QuizQuestion struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type QuizPayload struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// Pointer fields tell "absent" apart from "empty".
type rawQuestion struct {
	QuestionText  *string   `json:"questionText"`
	Options       *[]string `json:"options"`
	CorrectAnswer *string   `json:"correctAnswer"`
}

type rawQuiz struct {
	Title     *string        `json:"title"`
	Questions *[]rawQuestion `json:"questions"`
}

// StripCodeFences removes a surrounding ``` or ```lang fence, on separate lines or wrapped
// around a single line. Text without a closing fence is returned trimmed.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimLeft(s, "`")
	end := strings.LastIndex(body, "```")
	if end < 0 || strings.TrimSpace(body[end+3:]) != "" {
		return s
	}
	inner := strings.TrimRight(body[:end], "`")
	return strings.TrimSpace(dropInfoWord(inner))
}

// dropInfoWord removes a leading language tag such as "json". On a single-line fence the tag
// only counts when a JSON value follows it.
func dropInfoWord(s string) string {
	i := 0
	for i < len(s) && isInfoByte(s[i]) {
		i++
	}
	if i == 0 {
		return s
	}
	rest := s[i:]
	if strings.HasPrefix(strings.TrimLeft(rest, " \t\r"), "\n") {
		return rest
	}
	if t := strings.TrimSpace(rest); t != "" && rest != t && (t[0] == '{' || t[0] == '[') {
		return rest
	}
	if rest == "" {
		return ""
	}
	return s
}

func isInfoByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_' || b == '+'
}

// ParseQuizPayload decodes and validates a quiz. Every answer is a member of its question's
// options (compared after trimming) and every string field is non-blank.
func ParseQuizPayload(raw string) (QuizPayload, error) {
	text := StripCodeFences(raw)
	if text == "" {
		return QuizPayload{}, apperrors.InvalidShape(op, "empty output")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return QuizPayload{}, &apperrors.Error{
			Kind: apperrors.KindInvalidGenerationShape,
			Op:   op,
			Msg:  "output is not a JSON object",
			Err:  err,
		}
	}
	if rest := text[dec.InputOffset():]; strings.TrimSpace(rest) != "" {
		return QuizPayload{}, apperrors.InvalidShape(op, "unexpected text after JSON object")
	}
	if err := checkSchema(doc); err != nil {
		return QuizPayload{}, err
	}

	var rq rawQuiz
	if err := json.Unmarshal(doc, &rq); err != nil {
		return QuizPayload{}, &apperrors.Error{Kind: apperrors.KindInvalidGenerationShape, Op: op, Msg: "output does not match the quiz shape", Err: err}
	}

	if rq.Title == nil || strings.TrimSpace(*rq.Title) == "" {
		return QuizPayload{}, apperrors.InvalidShape(op, "title is missing or blank")
	}
	if rq.Questions == nil || len(*rq.Questions) == 0 {
		return QuizPayload{}, apperrors.InvalidShape(op, "questions are missing or empty")
	}

	out := QuizPayload{
		Title:     strings.TrimSpace(*rq.Title),
		Questions: make([]QuizQuestion, 0, len(*rq.Questions)),
	}
	for i, q := range *rq.Questions {
		v, err := validateQuestion(i, q)
		if err != nil {
			return QuizPayload{}, err
		}
		out.Questions = append(out.Questions, v)
	}
	return out, nil
}

func validateQuestion(i int, q rawQuestion) (QuizQuestion, error) {
	if q.QuestionText == nil || strings.TrimSpace(*q.QuestionText) == "" {
		return QuizQuestion{}, apperrors.InvalidShape(op, fmt.Sprintf("questions[%d].questionText is missing or blank", i))
	}
	if q.Options == nil || len(*q.Options) == 0 {
		return QuizQuestion{}, apperrors.InvalidShape(op, fmt.Sprintf("questions[%d].options are missing or empty", i))
	}
	opts := make([]string, 0, len(*q.Options))
	for j, o := range *q.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return QuizQuestion{}, apperrors.InvalidShape(op, fmt.Sprintf("questions[%d].options[%d] is blank", i, j))
		}
		opts = append(opts, o)
	}
	if q.CorrectAnswer == nil || strings.TrimSpace(*q.CorrectAnswer) == "" {
		return QuizQuestion{}, apperrors.InvalidShape(op, fmt.Sprintf("questions[%d].correctAnswer is missing or blank", i))
	}
	answer := strings.TrimSpace(*q.CorrectAnswer)
	if !contains(opts, answer) {
		return QuizQuestion{}, apperrors.InvalidShape(op, fmt.Sprintf("questions[%d].correctAnswer %q is not one of its options", i, answer))
	}
	return QuizQuestion{
		QuestionText:  strings.TrimSpace(*q.QuestionText),
		Options:       opts,
		CorrectAnswer: answer,
	}, nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
