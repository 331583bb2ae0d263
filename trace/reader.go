package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// fieldCount is the number of comma-separated fields in a trace line
// (§6): access_time_us, block_id, block_type, block_size, cf_id, cf_name,
// level, fd, caller, no_insert, get_id, key_id, kv_size, is_hit.
const fieldCount = 14

// Reader streams Records from the documented CSV trace format. It does
// not match/filter by column family or cap the number of records read;
// that policy belongs to the Simulator (out of scope for this package
// per §1).
type Reader struct {
	csv *csv.Reader
}

// NewReader wraps r as a trace Reader. Quotes are parsed leniently
// (LazyQuotes; cf_name is documented as containing no commas, so the
// format is plain comma-separated, not RFC 4180 CSV) and field count is
// not enforced by
// the underlying csv.Reader so a malformed line surfaces as a
// *FormatError naming the offending record instead of a generic csv
// error.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr}
}

// FormatError reports a malformed trace record (§7: fatal at the
// offending record, no partial results emitted).
type FormatError struct {
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace: malformed record at line %d: %v", e.Line, e.Err)
}
func (e *FormatError) Unwrap() error { return e.Err }

// Next reads and parses the next record. Returns io.EOF when the trace is
// exhausted.
func (r *Reader) Next() (*Record, error) {
	line, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	rec, err := parseFields(line)
	if err != nil {
		lineNo, _ := r.csv.FieldPos(0)
		return nil, &FormatError{Line: lineNo, Err: err}
	}
	return rec, nil
}

func parseFields(f []string) (*Record, error) {
	if len(f) != fieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldCount, len(f))
	}
	ints := make([]int64, 0, 13)
	for i, s := range f {
		if i == 5 { // cf_name
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, s, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("field %d (%q): negative integer field", i, s)
		}
		ints = append(ints, v)
	}
	return &Record{
		AccessTimeUs:  ints[0],
		BlockID:       uint64(ints[1]),
		BlockType:     ints[2],
		BlockSize:     ints[3],
		CFID:          ints[4],
		CFName:        f[5],
		Level:         ints[5],
		FD:            ints[6],
		Caller:        ints[7],
		NoInsert:      ints[8] == 1,
		GetID:         uint64(ints[9]),
		KeyID:         uint64(ints[10]),
		KVSize:        ints[11],
		IsHitObserved: ints[12] == 1,
	}, nil
}
