package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	recordsDTO "github.com/johnquangdev/assessment-records/internal/adapter/dto/records"
	"github.com/johnquangdev/assessment-records/internal/adapter/presenter"
	"github.com/johnquangdev/assessment-records/internal/bootstrap"
	"github.com/johnquangdev/assessment-records/pkg/config"
	"github.com/johnquangdev/assessment-records/pkg/jwt"
)

func setupCLI(t *testing.T) *bytes.Buffer {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/records":
			w.Write([]byte(`{"results": [
				{"record_id":"1","date":"01/01/2024","duration":"1:35","video":"converted/1.mp4","report":"{'avaliacao': 'bom', 'correcao': 'nenhuma', 'transcription': 'olá'}","objects":"Detected: ['Boné'] at frame 3","attention":"False"},
				{"record_id":"2","date":"02/01/2024","duration":"","video":"","report":"","objects":null,"attention":""}
			]}`))
		case "/download":
			w.Write([]byte(`{"url":"https://cdn.example.com/` + r.URL.Query().Get("filename") + `"}`))
		}
	}))
	t.Cleanup(backend.Close)

	cfg = &config.Config{
		Server:   config.ServerConfig{Environment: "development"},
		Backend:  config.BackendConfig{BaseURL: backend.URL, Timeout: time.Second},
		Payload:  config.PayloadConfig{WrapperTokens: []string{"Decimal"}},
		Report:   config.ReportConfig{DecodeFailure: "surface"},
		Snapshot: config.SnapshotConfig{Store: "memory", TTL: time.Minute},
		Download: config.DownloadConfig{Mode: "api", Expiry: time.Minute},
		JWT:      config.JWTConfig{AccessSecret: "secret"},
		Watch:    config.WatchConfig{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxElapsed: 10 * time.Millisecond},
	}

	var err error
	app, err = bootstrap.New(cfg, zap.NewNop())
	require.NoError(t, err)

	email = "ana@example.com"
	timeout = time.Second
	asJSON = false
	recordID = ""

	t.Cleanup(func() {
		_ = app.Close()
		app, cfg = nil, nil
		email, recordID = "", ""
		asJSON = false
	})

	return &bytes.Buffer{}
}

func testCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestListCmd(t *testing.T) {
	out := setupCLI(t)

	require.NoError(t, runList(testCmd(out), nil))

	text := out.String()
	assert.Contains(t, text, "Relatório")
	assert.Contains(t, text, "1:35")
	assert.Contains(t, text, presenter.PendingMarker)
	assert.Contains(t, text, "2 registros, 1 aguardando")
}

func TestListCmd_JSON(t *testing.T) {
	out := setupCLI(t)
	asJSON = true

	require.NoError(t, runRefresh(testCmd(out), nil))

	var list recordsDTO.RecordListResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "2", list.Records[1].RecordID)
}

func TestReportCmd(t *testing.T) {
	out := setupCLI(t)

	recordID = "1"
	require.NoError(t, runReport(testCmd(out), nil))
	assert.Contains(t, out.String(), "olá")
	assert.Contains(t, out.String(), "Boné")
	assert.Contains(t, out.String(), presenter.AttentionNo)

	recordID = "2"
	err := runReport(testCmd(out), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), presenter.PendingMarker)

	recordID = "9"
	err = runReport(testCmd(out), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVideoCmd(t *testing.T) {
	out := setupCLI(t)

	recordID = "1"
	require.NoError(t, runVideo(testCmd(out), nil))
	assert.Equal(t, "https://cdn.example.com/converted/1.mp4", strings.TrimSpace(out.String()))
}

func TestWatchCmd_Expires(t *testing.T) {
	out := setupCLI(t)

	err := runWatch(testCmd(out), nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "aguardando")
}

func TestListCmd_MissingEmail(t *testing.T) {
	out := setupCLI(t)
	email = ""

	err := runList(testCmd(out), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email")
}

func TestTokenCmd(t *testing.T) {
	out := setupCLI(t)
	tokenTTL = time.Minute

	require.NoError(t, runToken(testCmd(out), nil))

	claims, err := jwt.NewManager("secret", "").ValidateAccessToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
}
