package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/leengari/relprofile/internal/config"
)

// Render encodes the report in the given format (text, json or yaml)
func Render(r *Report, format string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot render nil report")
	}

	switch format {
	case config.FormatText, "":
		return renderText(r)
	case config.FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "run %s (%s)\n\n", r.RunID, r.Duration().Round(time.Microsecond))

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "RELATION\tATTRIBUTES\tRECORDS\n")
	for _, rel := range r.Relations {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", rel.Name, rel.Attributes, humanize.Comma(int64(rel.Records)))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	if !r.skipped("ucc") {
		fmt.Fprintf(&buf, "\nunique column combinations: %s\n", humanize.Comma(int64(len(r.UCCs))))
		for _, u := range r.UCCs {
			fmt.Fprintf(&buf, "  %s[%s]\n", u.Relation, strings.Join(u.Columns, ", "))
		}
	}
	if !r.skipped("ind") {
		fmt.Fprintf(&buf, "\ninclusion dependencies: %s\n", humanize.Comma(int64(len(r.INDs))))
		for _, ind := range r.INDs {
			fmt.Fprintf(&buf, "  %s ⊆ %s\n", ind.Dependent, ind.Referenced)
		}
	}
	return buf.Bytes(), nil
}

func (r *Report) skipped(kind string) bool {
	for _, k := range r.Skipped {
		if k == kind {
			return true
		}
	}
	return false
}

// WriteReport renders the report and writes it to path, or to stdout when path is empty
func WriteReport(r *Report, format, path string, stdout io.Writer) error {
	data, err := Render(r, format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := writeAtomic(path, data); err != nil {
		return err
	}

	slog.Info("report saved",
		slog.String("path", path),
		slog.String("format", format),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
	)
	return nil
}

// writeAtomic writes to a temp file next to path, then renames it into place
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}
	return nil
}
