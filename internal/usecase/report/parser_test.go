package report

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

func TestNormalizeAttention(t *testing.T) {
	tests := map[string]bool{
		"True":  true,
		"False": false,
		"":      false,
		"true":  false,
		"TRUE":  false,
		" True": false,
		"1":     false,
		"0.85":  false,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeAttention(in), "input %q", in)
	}
}

func TestNormalizeAttention_FromJSON(t *testing.T) {
	var rec entities.Record
	require.NoError(t, json.Unmarshal([]byte(`{"record_id":"1","attention":null}`), &rec))
	assert.False(t, NormalizeAttention(rec.Attention.String()))

	require.NoError(t, json.Unmarshal([]byte(`{"record_id":"1"}`), &rec))
	assert.False(t, NormalizeAttention(rec.Attention.String()))

	require.NoError(t, json.Unmarshal([]byte(`{"record_id":"1","attention":"True"}`), &rec))
	assert.True(t, NormalizeAttention(rec.Attention.String()))
}

func TestDecodeObjects(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		name    string
		raw     entities.ObjectsField
		want    []string
		wantErr bool
	}{
		{"native list", entities.NewObjectsList("Boné"), []string{"Boné"}, false},
		{"empty native list", entities.NewObjectsList(), []string{}, false},
		{"embedded array", entities.NewObjectsText("Detected: ['Óculos', 'Boné'] at frame 12"), []string{"Óculos", "Boné"}, false},
		{"clean array string", entities.NewObjectsText(`["Person", "Face"]`), []string{"Person", "Face"}, false},
		{"empty string", entities.NewObjectsText(""), []string{}, false},
		{"absent", entities.ObjectsField{}, []string{}, false},
		{"unterminated bracket", entities.NewObjectsText("[oops"), []string{}, false},
		{"no array", entities.NewObjectsText("nothing detected"), []string{}, false},
		{"malformed content", entities.NewObjectsText("[oops, 'x']"), []string{}, true},
		{"mixed element types", entities.NewObjectsText("[1, 'Boné']"), []string{"1", "Boné"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got []string
				err error
			)
			require.NotPanics(t, func() { got, err = p.DecodeObjects(tt.raw) })
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, entities.ErrDecode))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeObjects_FromJSON(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array", `{"objects": ["Boné"]}`, []string{"Boné"}},
		{"string", `{"objects": "['Óculos']"}`, []string{"Óculos"}},
		{"null", `{"objects": null}`, []string{}},
		{"number", `{"objects": 3}`, []string{}},
		{"missing", `{}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec entities.Record
			require.NoError(t, json.Unmarshal([]byte(tt.body), &rec))
			got, err := p.DecodeObjects(rec.Objects)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeReport(t *testing.T) {
	p := NewParser(nil)

	t.Run("single quoted mapping", func(t *testing.T) {
		got, err := p.DecodeReport("{'avaliacao': 'ok', 'correcao': 'fix', 'transcription': 'hi'}")
		require.NoError(t, err)
		assert.Equal(t, entities.ReportFields{Avaliacao: "ok", Correcao: "fix", Transcription: "hi"}, got)
	})

	t.Run("well-formed JSON with apostrophe", func(t *testing.T) {
		got, err := p.DecodeReport(`{"avaliacao": "it's good", "correcao": "", "transcription": "x"}`)
		require.NoError(t, err)
		assert.Equal(t, "it's good", got.Avaliacao)
	})

	t.Run("missing keys are blank", func(t *testing.T) {
		got, err := p.DecodeReport("{'transcription': 'only this'}")
		require.NoError(t, err)
		assert.Equal(t, entities.ReportFields{Transcription: "only this"}, got)
	})

	t.Run("wrapper tokens inside report", func(t *testing.T) {
		got, err := p.DecodeReport("{'avaliacao': 'ok', 'score': Decimal('7.5')}")
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Avaliacao)
	})

	for _, bad := range []string{"not a report", "{'avaliacao': 'it's broken'}", "['a']", "null", ""} {
		t.Run("unparseable "+bad, func(t *testing.T) {
			_, err := p.DecodeReport(bad)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrDecode))
		})
	}
}
