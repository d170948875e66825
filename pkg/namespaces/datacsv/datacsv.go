// Package datacsv adapts the teacher's CSV-backed data source
// (src/engine/data_source/csv.go) into a bar feed for cmd/firscript: a
// file of time,open,high,low,close,volume rows turned into the data
// namespace's Bar slice. Unlike the teacher's version this package uses
// encoding/csv rather than gocarina/gocsv — that dependency belongs to an
// unrelated legacy copy of the data source never listed in the teacher's
// own go.mod, so there is nothing real to wire it to here.
package datacsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JungleDome/FirScript/pkg/namespaces/data"
)

// LoadFile reads a CSV file with a header row
// (time,open,high,low,close,volume) and returns its rows as Bars ordered
// exactly as they appear in the file.
func LoadFile(path string) ([]data.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Load parses r as a time,open,high,low,close,volume CSV stream.
func Load(r io.Reader) ([]data.Bar, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var bars []data.Bar

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		bar, err := rowToBar(record, idx)
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

type columns struct {
	time, open, high, low, close, volume int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{-1, -1, -1, -1, -1, -1}

	for i, name := range header {
		switch name {
		case "time":
			idx.time = i
		case "open":
			idx.open = i
		case "high":
			idx.high = i
		case "low":
			idx.low = i
		case "close":
			idx.close = i
		case "volume":
			idx.volume = i
		}
	}

	if idx.time < 0 || idx.open < 0 || idx.high < 0 || idx.low < 0 || idx.close < 0 || idx.volume < 0 {
		return idx, fmt.Errorf("csv header must contain time,open,high,low,close,volume")
	}

	return idx, nil
}

func rowToBar(record []string, idx columns) (data.Bar, error) {
	t, err := parseTime(record[idx.time])
	if err != nil {
		return data.Bar{}, err
	}

	open, err := decimal.NewFromString(record[idx.open])
	if err != nil {
		return data.Bar{}, err
	}

	high, err := decimal.NewFromString(record[idx.high])
	if err != nil {
		return data.Bar{}, err
	}

	low, err := decimal.NewFromString(record[idx.low])
	if err != nil {
		return data.Bar{}, err
	}

	closePrice, err := decimal.NewFromString(record[idx.close])
	if err != nil {
		return data.Bar{}, err
	}

	volume, err := decimal.NewFromString(record[idx.volume])
	if err != nil {
		return data.Bar{}, err
	}

	return data.Bar{Time: t, Open: open, High: high, Low: low, Close: closePrice, Volume: volume}, nil
}

func parseTime(s string) (time.Time, error) {
	if unixSeconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unixSeconds, 0).UTC(), nil
	}

	return time.Parse(time.RFC3339, s)
}
