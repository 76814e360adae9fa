// Package telemetry sends anonymous, opt-out usage pings, adapted
// from the teacher's telemetry package: a persistent per-machine
// device ID, one JSON file per pending event, and batched sends once
// enough have queued up. No query text, graph data, or file paths are
// ever included in a payload — only shape (counts and the
// transpose-matrix flag) survives into QueryPlannedData.
package telemetry

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/oklog/ulid/v2"
)

var telemetryDir = func() string {
	dir, err := homedir.Dir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".graphtraverse-telemetry")
	}
	return filepath.Join(dir, ".graphtraverse/telemetry")
}()

// QueryPlannedData is the payload sent for a "query_planned" event: the
// shape of the plan the planner produced, never its content.
type QueryPlannedData struct {
	ExpressionCount   int  `json:"expression_count"`
	TransposedCount   int  `json:"transposed_count"`
	MaintainTranspose bool `json:"maintain_transpose_matrices"`
}

type event struct {
	DeviceID     string      `json:"device_id"`
	Type         string      `json:"type"`
	Version      string      `json:"version"`
	OS           string      `json:"os"`
	Architecture string      `json:"architecture"`
	NumCPU       int         `json:"num_cpu"`
	Time         time.Time   `json:"time"`
	Data         interface{} `json:"data"`
}

// SendQueryPlanned reports a query_planned event, logging (never
// failing the caller) on any error.
func SendQueryPlanned(ctx context.Context, data QueryPlannedData) {
	if err := send(ctx, "query_planned", data); err != nil {
		log.Printf("couldn't send telemetry: %s", err)
	}
}

func send(ctx context.Context, eventType string, data interface{}) error {
	if os.Getenv("GRAPHTRAVERSE_NO_TELEMETRY") == "1" {
		return nil
	}

	deviceID, isNew, err := deviceID()
	if err != nil {
		return err
	}
	if isNew {
		return nil // first run just provisions the device ID, doesn't phone home yet.
	}

	var version string
	if info, ok := debug.ReadBuildInfo(); ok {
		version = info.Main.Version
	} else {
		version = "unknown"
	}

	payload := event{
		DeviceID:     deviceID,
		Type:         eventType,
		Version:      version,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		NumCPU:       runtime.NumCPU(),
		Time:         time.Now(),
		Data:         data,
	}
	body, err := json.Marshal(&payload)
	if err != nil {
		return err
	}

	pendingDir := filepath.Join(telemetryDir, "pending")
	if err := os.MkdirAll(pendingDir, 0o755); err != nil {
		return err
	}
	name := ulid.MustNew(ulid.Now(), rand.Reader).String() + ".json"
	if err := os.WriteFile(filepath.Join(pendingDir, name), body, 0o644); err != nil {
		return err
	}

	return sendBatch(ctx)
}

func deviceID() (id string, isNew bool, err error) {
	path := filepath.Join(telemetryDir, "device_id")
	existing, err := os.ReadFile(path)
	if err == nil {
		return string(existing), false, nil
	}
	if !os.IsNotExist(err) {
		return "", false, err
	}

	if err := os.MkdirAll(telemetryDir, 0o755); err != nil {
		return "", false, err
	}
	newID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	if err := os.WriteFile(path, []byte(newID), 0o644); err != nil {
		return "", false, err
	}
	return newID, true, nil
}

const minimumBatchSize = 10

func sendBatch(ctx context.Context) error {
	pendingDir := filepath.Join(telemetryDir, "pending")
	files, err := filepath.Glob(filepath.Join(pendingDir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) < minimumBatchSize {
		return nil
	}

	batch := make([]json.RawMessage, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		batch = append(batch, data)
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://telemetry.graphtraverse.dev/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	recentDir := filepath.Join(telemetryDir, "recent")
	os.RemoveAll(recentDir)
	return os.Rename(pendingDir, recentDir)
}
