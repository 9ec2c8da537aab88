package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recibos/internal/database/databasetest"
	"recibos/internal/export"
	"recibos/internal/middleware"
	"recibos/internal/repository"
	"recibos/internal/service"
	"recibos/internal/spreadsheet"
)

var (
	testSecret   = []byte("handler-secret")
	testTemplate = spreadsheet.Template{SheetName: "Recibos", HeaderRows: 1}
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   string          `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := databasetest.New(t)
	receipts := repository.NewReceiptRepository(db)
	sequence := repository.NewSequenceRepository(db)
	audits := repository.NewAuditRepository(db)
	tx := repository.NewTransactionManager(db)

	guard := middleware.NewGuard(testSecret)
	pdf := export.NewPDFWriter(export.Options{Institution: "Pruebas"})

	r := gin.New()
	api := r.Group("")
	NewReceiptHandler(service.NewReceiptService(receipts, sequence, audits, tx, nil), pdf, guard).RegisterRoutes(api)
	NewImportHandler(service.NewImportService(spreadsheet.NewReader(testTemplate), receipts, sequence, audits, tx, nil), testTemplate, guard).RegisterRoutes(api)
	NewReportHandler(service.NewReportService(receipts), export.NewExcelWriter(), pdf, guard).RegisterRoutes(api)
	NewAuditHandler(service.NewAuditService(audits), guard).RegisterRoutes(api)
	NewStatisticsHandler(service.NewStatisticsService(repository.NewStatisticsRepository(db), receipts), guard).RegisterRoutes(api)
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-" + role,
		"username": role + "1",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, r http.Handler, role, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r http.Handler, role, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return do(t, r, role, method, target, body, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func upload(t *testing.T, r http.Handler, role string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "recibos.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return do(t, r, role, http.MethodPost, "/api/receipts/import", &body, mw.FormDataContentType())
}

// importWorkbook fills the downloadable template with one row per name.
func importWorkbook(t *testing.T, names ...string) []byte {
	t.Helper()
	var tmpl bytes.Buffer
	require.NoError(t, spreadsheet.WriteTemplate(&tmpl, testTemplate))

	f, err := excelize.OpenReader(&tmpl)
	require.NoError(t, err)
	defer f.Close()

	for i, name := range names {
		row := i + 2
		set := func(col spreadsheet.Column, v any) {
			cell, err := excelize.CoordinatesToCellName(int(col)+1, row)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(testTemplate.SheetName, cell, v))
		}
		set(spreadsheet.ColName, name)
		set(spreadsheet.ColTaxID, fmt.Sprintf("V-100%d", i))
		set(spreadsheet.ColTotalAmount, "1.000,50")
		set(spreadsheet.ColDate, "05/02/2024")
		set(spreadsheet.CategoryColumn(2), "X")
	}

	var out bytes.Buffer
	require.NoError(t, f.Write(&out))
	return out.Bytes()
}
