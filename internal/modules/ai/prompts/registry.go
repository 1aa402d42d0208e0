package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

type PromptName string

const (
	PromptNotesQA   PromptName = "notes_qa"
	PromptQuizBuild PromptName = "quiz_build"
	PromptQuizTutor PromptName = "quiz_tutor"
	PromptSummary   PromptName = "note_summary"
)

// Input is the superset of fields any prompt renders. Missing fields render empty
// (templates use missingkey=zero).
type Input struct {
	Question string
	Context  string
	Content  string
	Title    string
	Results  string
}

// Definition declares a prompt; Body is a text/template over Input.
type Definition struct {
	Name    PromptName
	Version int
	Body    string
}

type Template struct {
	Name    PromptName
	Version int
	Render  func(in Input) string
}

func MakeTemplate(d Definition) (Template, error) {
	if strings.TrimSpace(string(d.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if d.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", d.Name)
	}
	t, err := template.New(string(d.Name)).Option("missingkey=zero").Parse(d.Body)
	if err != nil {
		return Template{}, fmt.Errorf("%s template parse: %w", d.Name, err)
	}
	return Template{
		Name:    d.Name,
		Version: d.Version,
		Render: func(in Input) string {
			var b bytes.Buffer
			_ = t.Execute(&b, in)
			return strings.TrimSpace(b.String())
		},
	}, nil
}

var (
	regMu    sync.RWMutex
	registry = map[PromptName]Template{}
)

func Register(t Template) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[t.Name] = t
}

func Get(name PromptName) (Template, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	t, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("prompt %s not registered", name)
	}
	return t, nil
}

func mustRegister(d Definition) {
	t, err := MakeTemplate(d)
	if err != nil {
		panic(err)
	}
	Register(t)
}

func render(name PromptName, in Input) string {
	t, err := Get(name)
	if err != nil {
		panic(err)
	}
	return t.Render(in)
}
