// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gallery

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// An Item is one figure listed in a gallery index. Path is the
// figure file, relative to the index; Title is an optional caption.
type Item struct {
	Path  string
	Title string
}

const indexPage = `<!DOCTYPE html>

<html>
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <style>
body {
  font-family: sans-serif;
  color: #222;
  margin: 24px;
}
h1 {
  font-weight: normal;
}
table {
  border-spacing: 0;
  border-collapse: collapse;
}
td {
  padding: 8px 16px 8px 0;
  border-top: 1px solid #ddd;
  vertical-align: top;
}
.caption {
  color: #777;
}
img.thumb {
  display: block;
  max-width: 480px;
  border: 1px solid #ddd;
}
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <table>
      {{range .Items}}
      <tr>
        <td>{{template "preview" .}}</td>
        <td>
          <a href="{{.Path}}">{{base .Path}}</a>
          {{with .Title}}<div class="caption">{{.}}</div>{{end}}
        </td>
      </tr>
      {{end}}
    </table>
  </body>
</html>

{{/* preview shows an inline thumbnail for image files and just the
     file name otherwise. */}}
{{define "preview"}}{{if inline .Path}}<a href="{{.Path}}"><img class="thumb" src="{{.Path}}" alt="{{.Title}}" /></a>{{else}}{{base .Path}}{{end}}{{end}}`

var indexFuncs = template.FuncMap{
	"base": filepath.Base,
	"inline": func(path string) bool {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".jpg", ".jpeg", ".svg":
			return true
		}
		return false
	},
}

var indexTemplate = template.Must(template.New("index").Funcs(indexFuncs).Parse(indexPage))

// WriteIndex writes an HTML index of items to w.
func WriteIndex(w io.Writer, title string, items []Item) error {
	return indexTemplate.Execute(w, struct {
		Title string
		Items []Item
	}{title, items})
}

// SaveIndex writes an HTML index of items to the file at path.
func SaveIndex(path, title string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteIndex(f, title, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
