package http

import (
	"html/template"

	"github.com/GriffinCanCode/filekeeper/internal/providers/filesystem"
)

const listingName = "listing"

// listing is the data rendered by the listing template
type listing struct {
	Entries []filesystem.Entry
	Match   string
}

var listingTemplate = template.Must(template.New(listingName).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>File Manager</title></head>
<body>
<h1>File Manager</h1>
<h2>Files:</h2>
<ul id="files">
{{- range .Entries}}
<li class="entry" data-name="{{.Name}}" data-kind="{{.Kind}}">{{.Name}} ({{.Kind}}) | <a class="read" href="/read?file={{.Name}}">Read</a> | <a class="delete" href="/delete?file={{.Name}}">Delete</a></li>
{{- end}}
</ul>
<form id="filter" action="/list" method="GET">
<input type="text" name="match" placeholder="*.txt" value="{{.Match}}">
<button type="submit">Filter</button>
</form>
<h2>Create File</h2>
<form id="create" action="/create" method="GET">
<input type="text" name="file" placeholder="filename.txt" required>
<textarea name="content" placeholder="File content..."></textarea>
<button type="submit">Create File</button>
</form>
</body>
</html>
`))
