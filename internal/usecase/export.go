package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidPDF = errors.New("printer returned invalid PDF output")

// Exporter turns a document into a PDF through the Printer and archives the
// result when an ArtifactStore is configured.
type Exporter struct {
	printer   Printer
	artifacts ArtifactStore
	attempts  int
	backoff   func(attempt int) time.Duration
	log       *logrus.Entry
}

// NewExporter returns an Exporter. artifacts may be nil.
func NewExporter(printer Printer, artifacts ArtifactStore, log *logrus.Entry) *Exporter {
	return &Exporter{
		printer:   printer,
		artifacts: artifacts,
		attempts:  3,
		backoff:   func(i int) time.Duration { return time.Duration(1<<i) * time.Second },
		log:       log,
	}
}

// Export renders doc and prints it. owner only names the archived copy.
func (e *Exporter) Export(ctx context.Context, owner domain.Identity, doc domain.ResumeDocument) ([]byte, error) {
	html, err := render.HTML(render.Build(doc))
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	pdf, err := e.print(ctx, html)
	if err != nil {
		return nil, err
	}

	if e.artifacts != nil {
		dir := owner.String()
		if dir == "" {
			dir = "anonymous"
		}
		key := path.Join("resumes", dir, uuid.New().String()+".pdf")
		stored, err := e.artifacts.Upload(ctx, key, "application/pdf", bytes.NewReader(pdf))
		if err != nil {
			e.log.WithError(err).WithField("key", key).Warn("export: archive failed")
		} else {
			e.log.WithField("stored", stored).Info("export: archived")
		}
	}
	return pdf, nil
}

func (e *Exporter) print(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < e.attempts; i++ {
		pdf, err := e.printer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		lastErr = err
		e.log.WithError(err).WithField("attempt", i+1).Warn("export: render attempt failed")

		if i < e.attempts-1 {
			select {
			case <-time.After(e.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("render pdf after %d attempts: %w", e.attempts, lastErr)
}
