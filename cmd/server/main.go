package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "tabimport/internal/source/samplers"

	"tabimport/internal/infer"
	"tabimport/internal/logger"
	"tabimport/internal/source"
	"tabimport/internal/textrows"
	"tabimport/pkg/config"
)

var (
	activeMu        sync.RWMutex
	activeDriver    string
	activeDSN       string
	activeTimeout   = 10
	defaultPort     = 8080
	defaultWarnRows = 50000
	defaultBodyMB   = 10
)

// setActive sets the active database connection
func setActive(driver, dsn string, timeout int) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeDriver = driver
	activeDSN = dsn
	activeTimeout = timeout
}

// getActive returns the active databse connection
func getActive() (string, string, int) {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeDriver, activeDSN, activeTimeout
}

// previewRequest is the import preview payload. A non-empty Schema
// bypasses inference entirely.
type previewRequest struct {
	SourceType string       `json:"sourceType"`
	Rows       []infer.Row  `json:"rows"`
	Schema     infer.Schema `json:"schema,omitempty"`
}

type previewResponse struct {
	Sample   []infer.Row  `json:"sample"`
	Schema   infer.Schema `json:"schema"`
	Warnings []string     `json:"warnings"`
}

type textRequest struct {
	Text string `json:"text"`
}

// buildPreview assembles the preview response: a capped sample of the
// rows, the supplied schema or a freshly inferred one, and a warning when
// the full row set is large enough that the sample truncates it badly.
func buildPreview(rows []infer.Row, schema infer.Schema, sampleSize, warnRows int) previewResponse {
	if len(schema) == 0 {
		schema = infer.InferSchema(rows, sampleSize)
	}
	warnings := []string{}
	if len(rows) > warnRows {
		warnings = append(warnings, fmt.Sprintf("large import detected (%d rows): preview truncated to %d", len(rows), sampleSize))
	}
	sample := rows
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	if sample == nil {
		sample = []infer.Row{}
	}
	return previewResponse{Sample: sample, Schema: schema, Warnings: warnings}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response: %v", err)
	}
}

// withCORS mirrors the permissive CORS policy the import UI expects.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func main() {
	// flags
	cfgPath := flag.String("config", filepath.Join(".", "configs", "example.yaml"), "path to config YAML")
	driverFlag := flag.String("driver", "", "preset db driver (postgres,mysql,sqlite,sqlserver,godror)")
	dsnFlag := flag.String("dsn", "", "preset dsn for -driver")
	port := flag.Int("port", 0, "http port (overrides config, default"+fmt.Sprintf(" %d)", defaultPort))
	timeout := flag.Int("timeout", 10, "db connect timeout seconds")
	sampleFlag := flag.Int("sample", 0, "inference sample size (overrides config)")
	webdir := flag.String("web", filepath.Join(".", "web"), "web ui directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	logger.SetDebug(*debug)

	// attempt to load config file (optional)
	var appCfg config.AppConfig
	if cfgPath != nil {
		logger.Info("config file %s", *cfgPath)
		if c, err := config.LoadFile(*cfgPath); err == nil {
			appCfg = c
		} else {
			logger.Error("error reading config file: %v", err)
		}
	}

	// allow CLI overrides
	if *driverFlag != "" && *dsnFlag != "" {
		setActive(*driverFlag, *dsnFlag, *timeout)
	} else if appCfg.Database.Type != "" {
		drv, dsn, err := config.BuildDriverAndDSN(appCfg.Database)
		if err == nil {
			setActive(drv, dsn, *timeout)
		} else {
			logger.Error("error building DSN: %v", err)
		}
	}

	*port = cmpOr(*port, appCfg.Server.Port, defaultPort)
	sampleSize := cmpOr(*sampleFlag, appCfg.Import.SampleSize, infer.DefaultSampleSize)
	warnRows := cmpOr(appCfg.Import.WarnRowCount, defaultWarnRows)
	maxBody := int64(cmpOr(appCfg.Import.MaxBodyMB, defaultBodyMB)) * 1024 * 1024

	mux := http.NewServeMux()

	// static web
	mux.Handle("/", http.FileServer(http.Dir(*webdir)))

	// preview endpoint: rows in, sample + schema + warnings out
	mux.HandleFunc("/api/import/preview", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req previewRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		switch req.SourceType {
		case "csv", "excel", "ocr":
		default:
			http.Error(w, "unknown sourceType: "+req.SourceType, http.StatusBadRequest)
			return
		}
		logger.Debug("preview: %d rows, schema supplied: %v", len(req.Rows), len(req.Schema) > 0)
		writeJSON(w, buildPreview(req.Rows, req.Schema, sampleSize, warnRows))
	})

	// text endpoint: free text (OCR output) in, table-like rows previewed
	mux.HandleFunc("/api/import/text", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req textRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		rows := textrows.FromText(req.Text)
		resp := buildPreview(rows, nil, sampleSize, warnRows)
		if len(rows) == 0 {
			resp.Warnings = append(resp.Warnings, "no table-like lines detected")
		}
		writeJSON(w, resp)
	})

	// csv endpoint: raw CSV body in, rows previewed
	mux.HandleFunc("/api/import/csv", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rows, err := textrows.FromCSV(http.MaxBytesReader(w, r.Body, maxBody))
		if err != nil {
			http.Error(w, "invalid csv: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, buildPreview(rows, nil, sampleSize, warnRows))
	})

	// connect endpoint: user posts DB params to create/test connection
	mux.HandleFunc("/api/source/connect", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var dbReq config.DBConfig
		if err := json.NewDecoder(r.Body).Decode(&dbReq); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		driver, dsn, err := config.BuildDriverAndDSN(dbReq)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// test connection and return the table list on success
		tables, err := source.ConnectAndListTables(driver, dsn, *timeout)
		if err != nil {
			http.Error(w, "connection failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// persist active connection
		setActive(driver, dsn, *timeout)

		writeJSON(w, struct {
			OK     bool     `json:"ok"`
			Tables []string `json:"tables"`
		}{OK: true, Tables: tables})
	})

	// sample endpoint uses active in-memory connection
	mux.HandleFunc("/api/source/sample", func(w http.ResponseWriter, r *http.Request) {
		driver, dsn, to := getActive()
		if driver == "" || dsn == "" {
			http.Error(w, "no active connection; POST /api/source/connect to create one", http.StatusBadRequest)
			return
		}
		table := r.URL.Query().Get("table")
		if table == "" {
			http.Error(w, "missing table parameter", http.StatusBadRequest)
			return
		}
		limit := sampleSize
		if q := r.URL.Query().Get("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit: "+q, http.StatusBadRequest)
				return
			}
			limit = n
		}
		rows, err := source.ConnectAndSample(driver, dsn, table, limit, to)
		if err != nil {
			http.Error(w, "failed to sample table: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, buildPreview(rows, nil, sampleSize, warnRows))
	})

	// HTTP server
	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info("listening on %s, serving %s", addr, *webdir)
	logger.Info("inference sample size %d", sampleSize)
	logger.Info("registered dialects: %v", source.RegisteredDialects())
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("%v", err)
	}

}

// cmpOr mirrors cmp.Or from Go 1.22+, unavailable under the Go 1.21 toolchain
// this module is built with.
func cmpOr[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
