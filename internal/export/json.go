package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/herogrid/internal/metrics"
	"github.com/san-kum/herogrid/internal/storage"
)

type frame struct {
	Frame      uint64  `json:"frame"`
	Time       float64 `json:"time"`
	Count      int     `json:"count"`
	Pressed    bool    `json:"pressed"`
	Tiles      int     `json:"tiles"`
	Opacity    float64 `json:"opacity"`
	MaxOffset  float64 `json:"max_offset"`
	MeanOffset float64 `json:"mean_offset"`
	PeakOffset float64 `json:"peak_offset"`
	Kinetic    float64 `json:"kinetic"`
	Influenced int     `json:"influenced"`
	Clamped    int     `json:"clamped"`
}

type ExportData struct {
	Run    storage.RunMetadata `json:"run"`
	Frames []frame             `json:"frames"`
}

func newExportData(meta storage.RunMetadata, samples []metrics.Sample) ExportData {
	data := ExportData{Run: meta, Frames: make([]frame, len(samples))}
	for i, s := range samples {
		data.Frames[i] = frame(s)
	}
	return data
}

// WriteJSON writes a run and its frames as indented JSON.
func WriteJSON(w io.Writer, meta storage.RunMetadata, samples []metrics.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(meta, samples))
}

func ExportJSON(path string, meta storage.RunMetadata, samples []metrics.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, samples)
}
