package util

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
)

// Table is a titled block of float data rendered into an HTML fit
// report, one column header per value column and one row header per
// data row.
type Table struct {
	Title                  string
	ColHeaders, RowHeaders []string
	Data                   [][]float64
}

// WriteReportFile renders the tables into a standalone HTML file.
func WriteReportFile(tables []Table, filePath string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return
	}
	defer file.Close()

	return writeReportHTML(tables, file)
}

func tableSanityCheck(table *Table) error {
	if table == nil {
		return errors.New("nil report table")
	}

	if len(table.Data) != len(table.RowHeaders) {
		return fmt.Errorf("inconsistent row counts: %v headers, %v rows", len(table.RowHeaders), len(table.Data))
	}
	for _, row := range table.Data {
		if len(row) != len(table.ColHeaders) {
			return errors.New("inconsistent col counts")
		}
	}

	return nil
}

func writeReportHTML(tables []Table, output io.Writer) (err error) {
	for t := range tables {
		err = tableSanityCheck(&tables[t])
		if err != nil {
			return
		}
	}

	const document = `
<!DOCTYPE html>
<html>
<head>
    <style type="text/css">
        .results { font-family:sans-serif; border-collapse:collapse; }
        .results td, .results th { border:1px solid #999; padding:3px 7px; }
        .results th { text-align:left; background-color:#446688; color:#ffffff; }
        .results tr.alt td { background-color:#e8eef4; }
    </style>
</head>
<body>
{{range $table := .}}
	<h2>{{$table.Title}}</h2>
	<table class="results">
	  <tr>
	  	<th></th>
		{{range $table.ColHeaders}}<th>{{.}}</th>{{end}}
	  </tr>
	  {{range $index, $row := $table.Data}}
	  <tr {{if eq (mod $index 2) 1}}class="alt"{{end}}>
		<th>{{index $table.RowHeaders $index}}</th>
		{{range $row}}<td>{{printf "%.6g" .}}</td>{{end}}
	  </tr>
	  {{end}}
	</table>
{{end}}
</body>
</html>
`
	funcMap := template.FuncMap{
		"mod": func(a, b int) int { return a % b },
	}
	tDocument := template.Must(template.New("report").Funcs(funcMap).Parse(document))

	return tDocument.Execute(output, tables)
}
