package digest

import (
	htmltmpl "html/template"
	texttmpl "text/template"

	"github.com/sahyadri/classai/core/student"
)

type digestData struct {
	Week     string
	Students []student.StrugglingStudent
}

var textTemplate = texttmpl.Must(texttmpl.New("digest").Parse(`Hello,

These students scored below the attention threshold this week ({{ .Data.Week }}), and remediation material can be generated for each of them:
{{ range .Data.Students }}
- {{ .Name }} (Grade {{ .Grade }}): {{ .Subject }}, score {{ printf "%.0f" .Score }} ({{ .Attention }} attention)
{{- end }}

Open the teacher dashboard to generate practice handouts: {{ .FrontendBaseURL }}/teacher/dashboard
`))

var htmlTemplate = htmltmpl.Must(htmltmpl.New("digest").Parse(`<p>Hello,</p>
<p>These students scored below the attention threshold this week ({{ .Data.Week }}), and remediation material can be generated for each of them:</p>
<ul>
{{ range .Data.Students }}
  <li><strong>{{ .Name }}</strong> (Grade {{ .Grade }}): {{ .Subject }}, score {{ printf "%.0f" .Score }} ({{ .Attention }} attention)</li>
{{ end }}
</ul>
<p><a href="{{ .FrontendBaseURL }}/teacher/dashboard">Open the teacher dashboard</a> to generate practice handouts.</p>
`))
