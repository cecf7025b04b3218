package main

import (
	"flag"
	"fmt"
	"os"

	genval "github.com/codingwatching/genval"
	"github.com/codingwatching/genval/schemadef"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "project":
		projectCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "genval CLI\n\nUsage:\n  genval project -in schema.yaml -backend openai|anthropic|gemini [-format json|yaml] [-o out]\n  genval check -in schema.yaml\n\nNotes:\n  - project compiles a schema definition into the grammar of a generation backend.\n  - check imports a schema definition and reports warnings without emitting anything.")
}

func projectCmd(args []string) {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	var in, backendName, format, out string
	fs.StringVar(&in, "in", "", "schema definition file (YAML or JSON)")
	fs.StringVar(&backendName, "backend", "openai", "target backend: openai, anthropic or gemini")
	fs.StringVar(&format, "format", "json", "output encoding: json or yaml")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}

	backend, ok := genval.ParseBackend(backendName)
	if !ok {
		fatalf("unknown backend %q", backendName)
	}
	schema, diag := importSchema(in)
	reportWarnings(diag)

	doc, err := genval.Project(schema, genval.ProjectOpt{Backend: backend})
	if err != nil {
		fatalf("project: %v", err)
	}

	var encoded []byte
	switch format {
	case "json":
		encoded, err = doc.JSON()
		if err == nil {
			encoded = append(encoded, '\n')
		}
	case "yaml":
		encoded, err = yaml.Marshal(doc)
	default:
		fatalf("unknown format %q", format)
	}
	if err != nil {
		fatalf("encode: %v", err)
	}

	if out == "" {
		_, _ = os.Stdout.Write(encoded)
		return
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		fatalf("write %s: %v", out, err)
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var in string
	fs.StringVar(&in, "in", "", "schema definition file (YAML or JSON)")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}
	_, diag := importSchema(in)
	reportWarnings(diag)
	fmt.Println("ok")
}

func importSchema(path string) (genval.Schema, schemadef.Diag) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read %s: %v", path, err)
	}
	schema, diag, err := schemadef.Import(data, schemadef.Options{})
	if err != nil {
		fatalf("import %s: %v", path, err)
	}
	return schema, diag
}

func reportWarnings(diag schemadef.Diag) {
	if diag == nil || !diag.HasWarnings() {
		return
	}
	for _, w := range diag.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
