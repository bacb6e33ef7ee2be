package records

import (
	"context"
	"sync"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

type fakeAPI struct {
	mu sync.Mutex

	env    *entities.RecordsEnvelope
	envErr error
	raw    []byte
	rawErr error

	structuredCalls int
	rawCalls        int
}

func (f *fakeAPI) ListRecords(ctx context.Context, email string) (*entities.RecordsEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.structuredCalls++
	return f.env, f.envErr
}

func (f *fakeAPI) ListRecordsRaw(ctx context.Context, email string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawCalls++
	return f.raw, f.rawErr
}

func envelope(records ...entities.Record) *entities.RecordsEnvelope {
	if records == nil {
		records = []entities.Record{}
	}
	return &entities.RecordsEnvelope{Results: &records}
}

type funcFetcher func(ctx context.Context, email string) []entities.Record

func (f funcFetcher) Fetch(ctx context.Context, email string) []entities.Record {
	return f(ctx, email)
}

type mapSnapshots struct {
	mu    sync.Mutex
	data  map[string][]entities.Record
	saves int
}

func newMapSnapshots() *mapSnapshots {
	return &mapSnapshots{data: make(map[string][]entities.Record)}
}

func (m *mapSnapshots) Get(ctx context.Context, email string) ([]entities.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[email]
	return r, ok, nil
}

func (m *mapSnapshots) Save(ctx context.Context, email string, records []entities.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[email] = records
	m.saves++
	return nil
}

func (m *mapSnapshots) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, email)
	return nil
}

type fakeResolver struct {
	gotKey string
	url    string
	err    error
}

func (f *fakeResolver) DownloadURL(ctx context.Context, filename string) (string, error) {
	f.gotKey = filename
	return f.url, f.err
}

func readyRecord(id string) entities.Record {
	return entities.Record{
		RecordID:  id,
		Date:      "01/01/2024",
		Duration:  "1:30",
		Video:     entities.LooseString("converted/" + id + ".mp4"),
		Report:    "{'avaliacao': 'ok', 'correcao': 'fix', 'transcription': 'hi'}",
		Objects:   entities.NewObjectsList("Boné"),
		Attention: "True",
	}
}

func pendingRecord(id string) entities.Record {
	rec := readyRecord(id)
	rec.Video = ""
	rec.Report = ""
	return rec
}
