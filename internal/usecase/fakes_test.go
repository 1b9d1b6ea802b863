package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"

	"github.com/sirupsen/logrus"
)

func testLog() *logrus.Entry {
	return logrus.NewEntry(logger.Discard())
}

// seqIDs hands out "id-1", "id-2", ... so tests can predict entity ids.
func seqIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fakeRepo struct {
	mu        sync.Mutex
	records   map[domain.Identity]*model.Record
	upserts   []*model.Record
	loadErr   error
	upsertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[domain.Identity]*model.Record{}}
}

func (r *fakeRepo) Load(_ context.Context, id domain.Identity) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.records[id], nil
}

func (r *fakeRepo) Upsert(_ context.Context, rec *model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, rec)
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.records[domain.Identity(rec.UserID)] = rec
	return nil
}

func (r *fakeRepo) upsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts)
}

func (r *fakeRepo) lastUpsert() *model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.upserts) == 0 {
		return nil
	}
	return r.upserts[len(r.upserts)-1]
}

type fakePrinter struct {
	mu      sync.Mutex
	outputs [][]byte
	errs    []error
	calls   int
	html    string
}

func (p *fakePrinter) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.calls
	p.calls++
	p.html = html
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(p.outputs) {
		return p.outputs[i], nil
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeArtifacts struct {
	mu   sync.Mutex
	keys []string
	body [][]byte
	err  error
}

func (a *fakeArtifacts) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, objectName)
	a.body = append(a.body, b)
	return "mem://" + objectName, nil
}
