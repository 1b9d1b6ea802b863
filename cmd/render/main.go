package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/sirupsen/logrus"
)

// render reads a résumé document (the JSON served by GET /sessions/:id/document)
// and writes the preview page, and the PDF when -pdf is given.
func main() {
	in := flag.String("in", "resume.json", "document JSON")
	htmlOut := flag.String("html", "resume.html", "HTML output path, empty to skip")
	pdfOut := flag.String("pdf", "", "PDF output path, empty to skip")
	chrome := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome binary")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read document: %v\n", err)
		os.Exit(2)
	}
	var doc domain.ResumeDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}

	for i, r := range usecase.CheckAll(doc) {
		if !r.Complete {
			fmt.Fprintf(os.Stderr, "step %d (%s) missing: %v\n", i+1, r.Title, r.Missing)
		}
	}

	if *htmlOut != "" {
		html, err := render.HTML(render.Build(doc))
		if err != nil {
			fmt.Fprintf(os.Stderr, "render html: %v\n", err)
			os.Exit(2)
		}
		if err := os.WriteFile(*htmlOut, []byte(html), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write html: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", *htmlOut)
	}

	if *pdfOut != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		exporter := usecase.NewExporter(infra.NewChromedpRenderer(*chrome), nil, logrus.NewEntry(logger.New(os.Getenv("LOG_LEVEL"))))
		pdf, err := exporter.Export(ctx, "", doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export pdf: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, pdf, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", *pdfOut)
	}
}
