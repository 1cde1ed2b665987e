package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/version"
)

// OutputFormatterImpl implements domain.OutputFormatter.
type OutputFormatterImpl struct {
	// ShowDetails controls whether per-canopy neighbor ids are printed in
	// the text and JSON renderings.
	ShowDetails bool
}

// NewOutputFormatter creates a new output formatter.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// clusterResponseJSON wraps ClusterResponse with tool version metadata and,
// when ShowDetails is set, the resolved canopy membership.
type clusterResponseJSON struct {
	Version           string         `json:"version"`
	PointCount        int            `json:"point_count"`
	RawCanopyCount    int            `json:"raw_canopy_count"`
	MergedCanopyCount int            `json:"merged_canopy_count"`
	FinalCanopyCount  int            `json:"final_canopy_count"`
	JumpCount         int64          `json:"jump_count"`
	AverageJumps      float64        `json:"average_jumps"`
	DurationMs        int64          `json:"duration_ms"`
	Canopies          []canopyJSON   `json:"canopies,omitempty"`
}

type canopyJSON struct {
	Origin  string   `json:"origin"`
	Size    int      `json:"size"`
	Members []string `json:"members,omitempty"`
}

// Write renders resp in the requested format.
func (f *OutputFormatterImpl) Write(resp *domain.ClusterResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(resp, writer)
	case domain.OutputFormatTSV:
		return f.writeTSV(resp, writer)
	case domain.OutputFormatText, "":
		return f.writeText(resp, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) toCanopyJSON(resp *domain.ClusterResponse) []canopyJSON {
	if !f.ShowDetails {
		return nil
	}
	out := make([]canopyJSON, 0, len(resp.Canopies))
	for _, c := range resp.Canopies {
		entry := canopyJSON{Origin: c.Origin.ID, Size: c.Size()}
		for _, n := range c.Neighbors {
			entry.Members = append(entry.Members, n.ID)
		}
		out = append(out, entry)
	}
	return out
}

func (f *OutputFormatterImpl) writeJSON(resp *domain.ClusterResponse, writer io.Writer) error {
	wrapped := clusterResponseJSON{
		Version:           version.GetVersion(),
		PointCount:        resp.PointCount,
		RawCanopyCount:    resp.RawCanopyCount,
		MergedCanopyCount: resp.MergedCanopyCount,
		FinalCanopyCount:  resp.FinalCanopyCount,
		JumpCount:         resp.JumpCount,
		AverageJumps:      resp.AverageJumps,
		DurationMs:        resp.DurationMs,
		Canopies:          f.toCanopyJSON(resp),
	}
	return WriteJSON(writer, wrapped)
}

// writeTSV writes one row per canopy: origin id, size, comma-joined member
// ids (members column is empty unless ShowDetails is set).
func (f *OutputFormatterImpl) writeTSV(resp *domain.ClusterResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	w.Comma = '\t'

	if err := w.Write([]string{"origin", "size", "members"}); err != nil {
		return fmt.Errorf("failed to write TSV header: %w", err)
	}

	for _, c := range resp.Canopies {
		members := ""
		if f.ShowDetails {
			ids := make([]string, 0, len(c.Neighbors))
			for _, n := range c.Neighbors {
				ids = append(ids, n.ID)
			}
			members = joinComma(ids)
		}
		row := []string{c.Origin.ID, fmt.Sprintf("%d", c.Size()), members}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write TSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func (f *OutputFormatterImpl) writeText(resp *domain.ClusterResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Canopy Clustering ===\n\n")
	fmt.Fprintf(writer, "Version: %s\n\n", version.GetVersion())

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Points:          %d\n", resp.PointCount)
	fmt.Fprintf(writer, "  Raw canopies:    %d\n", resp.RawCanopyCount)
	fmt.Fprintf(writer, "  After merge:     %d\n", resp.MergedCanopyCount)
	fmt.Fprintf(writer, "  Final canopies:  %d\n", resp.FinalCanopyCount)
	fmt.Fprintf(writer, "  Jump count:      %d\n", resp.JumpCount)
	fmt.Fprintf(writer, "  Average jumps:   %.2f\n", resp.AverageJumps)
	fmt.Fprintf(writer, "  Duration:        %dms\n", resp.DurationMs)
	fmt.Fprintf(writer, "\n")

	if f.ShowDetails {
		fmt.Fprintf(writer, "Canopies:\n")
		for _, c := range resp.Canopies {
			fmt.Fprintf(writer, "  %s (size=%d)\n", c.Origin.ID, c.Size())
			for _, n := range c.Neighbors {
				fmt.Fprintf(writer, "    - %s\n", n.ID)
			}
		}
		fmt.Fprintf(writer, "\n")
	}

	return nil
}

func joinComma(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
}
