package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

// Metadata describes one run independently of its sampled series.
type Metadata struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Params    thermal.Parameters `json:"params"`
	Steps     int                `json:"steps"`
	Boiled    bool               `json:"boiled"`
	FinalTime float64            `json:"final_time"`
	FinalTemp float64            `json:"final_temperature"`
	Events    []sim.Event        `json:"events"`
	Ice       *sim.IceResult     `json:"ice,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewMetadata(name string, seed int64, p thermal.Parameters, result *sim.Result) Metadata {
	finalTime, finalTemp := result.Final()
	return Metadata{
		ID:        result.ID,
		Name:      name,
		Timestamp: time.Now().UTC(),
		Seed:      seed,
		Params:    p,
		Steps:     result.StepsTaken,
		Boiled:    result.Boiled,
		FinalTime: finalTime,
		FinalTemp: finalTemp,
		Events:    result.Events,
		Ice:       result.Ice,
		Metrics:   result.Metrics,
	}
}

// WriteCSV writes the series as time,temperature rows.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "temperature"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Temperatures[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type runExport struct {
	Metadata
	Times        []float64 `json:"times"`
	Temperatures []float64 `json:"temperatures"`
}

// WriteJSON writes the metadata together with the full series.
func WriteJSON(w io.Writer, meta Metadata, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{
		Metadata:     meta,
		Times:        result.Times,
		Temperatures: result.Temperatures,
	})
}

func WriteSummaryYAML(w io.Writer, summary sim.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return enc.Close()
}
