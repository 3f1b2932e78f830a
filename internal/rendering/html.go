package rendering

import (
	"bytes"
	"html/template"
)

// documentTemplate is the full page layout. It iterates only over ordered
// slices so two renders of the same document are byte-identical.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 40px 48px; font-size: 11pt; }
h1 { font-size: 20pt; margin: 0 0 4px 0; text-align: center; }
h2 { font-size: 13pt; border-bottom: 1px solid #444; padding-bottom: 2px; margin: 18px 0 8px 0; }
.contact { text-align: center; font-size: 10pt; margin-bottom: 10px; }
.contact span { margin: 0 8px; }
.columns { display: flex; }
.columns ul { flex: 1; margin: 0; padding-left: 18px; }
.job { margin-bottom: 10px; }
.job-head { display: flex; justify-content: space-between; }
.job-title { font-weight: bold; }
.job-dates { font-style: italic; font-size: 10pt; }
.job-company { font-style: italic; }
.footer { margin-top: 24px; text-align: center; font-size: 8pt; color: #777; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Contact}}<div class="contact">{{range .Contact}}<span>{{.Label}}: {{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</span>{{end}}</div>
{{end}}{{if .CoreValues}}<h2>{{.CoreValues.Heading}}</h2>
<div class="columns"><ul>{{range .CoreValues.Left}}<li>{{.}}</li>{{end}}</ul><ul>{{range .CoreValues.Right}}<li>{{.}}</li>{{end}}</ul></div>
{{end}}{{if .Skills}}<h2>{{.Skills.Heading}}</h2>
<div class="columns"><ul>{{range .Skills.Left}}<li>{{.}}</li>{{end}}</ul><ul>{{range .Skills.Right}}<li>{{.}}</li>{{end}}</ul></div>
{{end}}{{if .WorkHistory}}<h2>Work Experience</h2>
{{range .WorkHistory}}<div class="job">
<div class="job-head"><span class="job-title">{{.Title}}</span><span class="job-dates">{{.Dates}}</span></div>
{{if .Company}}<div class="job-company">{{.Company}}</div>
{{end}}{{if .Bullets}}<ul>{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>
{{else if .Paragraph}}<p>{{.Paragraph}}</p>
{{end}}</div>
{{end}}{{end}}{{if .Education}}<h2>Education</h2>
<ul>{{range .Education}}<li>{{.}}</li>{{end}}</ul>
{{end}}<div class="footer">{{.Footer}}</div>
</body>
</html>
`

var pageTemplate = template.Must(template.New("resume").Parse(documentTemplate))

func executeTemplate(doc *RenderedDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
