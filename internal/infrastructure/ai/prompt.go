package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/asoraledecnal/vantage/internal/domain"
)

// Prompt construction is deterministic given (question, tool, guidance,
// context); cache-key stability and the prompt tests depend on it.

const scopePreamble = "You are a knowledgeable teacher and technical expert specializing in IT, " +
	"computer systems, and networking. You are helping a user inside the Vantage dashboard, " +
	"which offers WHOIS, DNS records, IP Geolocation, Port Scan, Speed Test, and a combined " +
	"Domain Research tool. Explain the 'why' and 'how' behind technical topics, keep advice " +
	"actionable, and offer practice questions when helpful. If a question is unrelated to IT " +
	"or networking, politely state your scope."

var toolPromptTmpl = template.Must(template.New("tool").Parse(`{{.Preamble}}

Selected tool: {{.Tool}}
Description: {{.Description}}
Usage tips:
{{range .Usage}}- {{.}}
{{end}}Example call: {{.Example}}
{{if .Suggested}}Suggested actions:
{{range .Suggested}}- {{.}}
{{end}}{{end}}{{if .ContextLine}}Recent context: {{.ContextLine}}
{{end}}
User question: {{.Question}}
Respond concisely with 2-4 sentences.`))

var generalPromptTmpl = template.Must(template.New("general").Parse(`{{.Preamble}}
{{if .ContextLine}}
Recent context: {{.ContextLine}}
{{end}}
User question: {{.Question}}
Respond concisely with 2-4 sentences.`))

type promptData struct {
	Preamble    string
	Tool        string
	Description string
	Usage       []string
	Example     string
	Suggested   []string
	ContextLine string
	Question    string
}

// BuildToolPrompt renders the tool-tailored prompt variant.
func BuildToolPrompt(question string, tool domain.ToolGuidance, suggested []string, recent *domain.RecentActivity) string {
	return render(toolPromptTmpl, promptData{
		Preamble:    scopePreamble,
		Tool:        tool.Key,
		Description: tool.Description,
		Usage:       tool.Usage,
		Example:     tool.Example,
		Suggested:   suggested,
		ContextLine: recent.Line(),
		Question:    question,
	})
}

// BuildGeneralPrompt renders the tool-agnostic prompt variant.
func BuildGeneralPrompt(question string, recent *domain.RecentActivity) string {
	return render(generalPromptTmpl, promptData{
		Preamble:    scopePreamble,
		ContextLine: recent.Line(),
		Question:    question,
	})
}

// Prompts implements ports.PromptBuilder over the package templates.
type Prompts struct{}

func (Prompts) ToolPrompt(question string, tool domain.ToolGuidance, suggested []string, recent *domain.RecentActivity) string {
	return BuildToolPrompt(question, tool, suggested, recent)
}

func (Prompts) GeneralPrompt(question string, recent *domain.RecentActivity) string {
	return BuildGeneralPrompt(question, recent)
}

func render(tmpl *template.Template, data promptData) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Templates are static and the data is plain strings; an execute
		// failure is a programming error.
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
