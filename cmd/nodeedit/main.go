package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nodeedit"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nodeedit [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "nodeedit edits one node of a JSON or YAML document by path.\n")
		fmt.Fprintf(os.Stderr, "Missing containers along the path are created; the value is parsed\n")
		fmt.Fprintf(os.Stderr, "as JSON first and kept as a bare scalar otherwise.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nodeedit -p '$[\"customer\"][\"name\"]' -v Bob config.yaml\n")
		fmt.Fprintf(os.Stderr, "  nodeedit -p '$[\"replicas\"]' -v 3 -w deploy.json\n")
		fmt.Fprintf(os.Stderr, "  nodeedit -p '$[\"spec\"][\"ports\"][0]' -v '{\"port\":8080}' -d svc.yaml\n")
	}

	pathFlag := pflag.StringP("path", "p", "", `node path in bracket notation, e.g. '$["customer"][0]["name"]'`)
	valueFlag := pflag.StringP("value", "v", "", "replacement text (full JSON or a bare scalar)")
	formatFlag := pflag.StringP("format", "f", "", "source format: json or yaml (default: by file extension)")
	writeFlag := pflag.BoolP("write", "w", false, "write the result back to the file")
	diffFlag := pflag.BoolP("diff", "d", false, "print a unified diff instead of the full document")
	helpFlag := pflag.BoolP("help", "h", false, "show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}
	if pflag.NArg() != 1 || *pathFlag == "" {
		pflag.Usage()
		os.Exit(2)
	}
	file := pflag.Arg(0)

	path, err := nodeedit.ParsePath(*pathFlag)
	if err != nil {
		fatal(err)
	}
	if len(path) == 0 {
		fatal(fmt.Errorf("nodeedit: refusing to replace the document root"))
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		fatal(err)
	}
	format := detectFormat(*formatFlag, file)

	content := nodeedit.NewMemoryContentStore(string(raw), format)
	graph := nodeedit.NewMemoryGraphStore()

	doc, err := content.Decode(content.Contents(), format)
	if err != nil {
		fatal(err)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		fatal(err)
	}
	if err := graph.SetGraph(string(docJSON)); err != nil {
		fatal(err)
	}
	if !graph.SelectPath(path) {
		// Node absent: select the location anyway so the commit creates it.
		graph.SetSelectedNode(&nodeedit.GraphNode{Path: path})
	}

	sess := nodeedit.NewSession(content, graph)
	sess.BeginEdit()
	sess.SetDraft(*valueFlag)
	if err := sess.Commit(); err != nil {
		fatal(err)
	}
	if msg := sess.Err(); msg != "" {
		fatal(fmt.Errorf("%s", msg))
	}

	after := content.Contents()
	switch {
	case *diffFlag:
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(raw)),
			B:        difflib.SplitLines(after),
			FromFile: file,
			ToFile:   file + " (edited)",
			Context:  2,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Print(diff)
	case *writeFlag:
		if !content.HasChanges() {
			return
		}
		if err := os.WriteFile(file, []byte(after), 0644); err != nil {
			fatal(err)
		}
	default:
		fmt.Print(after)
	}
}

func detectFormat(flag, file string) nodeedit.Format {
	switch strings.ToLower(flag) {
	case "json":
		return nodeedit.FormatJSON
	case "yaml", "yml":
		return nodeedit.FormatYAML
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return nodeedit.FormatYAML
	}
	return nodeedit.FormatJSON
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
