package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadEpochs parses epoch annotations from CSV records of the form
// onset,duration,type[,channels]. The channels column holds "all" or a list of
// channel indices separated by spaces or semicolons; when it is missing the
// epoch applies to every channel. A leading header row is skipped. r is read
// as a complete file, so a final record without a newline is kept.
func ReadEpochs(r io.Reader) ([]Epoch, error) {
	lr := NewLineReader(r)
	lr.Finish()
	return readEpochs(lr)
}

// ReadGrowingEpochs parses epochs like ReadEpochs from a file that may still
// be appended to. Only newline-terminated records are returned; held reports
// whether an unterminated final line was left out.
func ReadGrowingEpochs(r io.Reader) (epochs []Epoch, held bool, err error) {
	lr := NewLineReader(r)
	epochs, err = readEpochs(lr)
	return epochs, lr.Held(), err
}

func readEpochs(lr *LineReader) ([]Epoch, error) {
	csvReader := csv.NewReader(lr)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var epochs []Epoch
	for line := 1; ; line++ {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			return epochs, nil
		} else if err != nil {
			return epochs, fmt.Errorf("failed reading epochs: %w", err)
		}
		if line == 1 && isEpochHeader(rec) {
			continue
		}
		epoch, err := parseEpoch(rec)
		if err != nil {
			return epochs, fmt.Errorf("epoch record %d: %w", line, err)
		}
		epochs = append(epochs, epoch)
	}
}

func isEpochHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

func parseEpoch(rec []string) (Epoch, error) {
	if len(rec) < 3 {
		return Epoch{}, fmt.Errorf("expected at least 3 fields, got %d", len(rec))
	}
	onset, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return Epoch{}, fmt.Errorf("failed parsing onset: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return Epoch{}, fmt.Errorf("failed parsing duration: %w", err)
	}
	epoch := Epoch{
		Onset:    onset,
		Duration: duration,
		Type:     strings.TrimSpace(rec[2]),
		All:      true,
	}
	if len(rec) < 4 {
		return epoch, nil
	}
	field := strings.TrimSpace(rec[3])
	if field == "" || field == "all" {
		return epoch, nil
	}
	epoch.All = false
	for _, part := range strings.FieldsFunc(field, func(r rune) bool { return r == ' ' || r == ';' }) {
		index, err := strconv.Atoi(part)
		if err != nil {
			return Epoch{}, fmt.Errorf("failed parsing channel %q: %w", part, err)
		}
		epoch.Channels = append(epoch.Channels, index)
	}
	return epoch, nil
}
