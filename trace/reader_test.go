package trace

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReaderParsesWellFormedRecord(t *testing.T) {
	t.Parallel()
	line := "1000,42,3,4096,7,default,2,99,1,0,7,123,256,1\n"
	r := NewReader(strings.NewReader(line))

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	want := &Record{
		AccessTimeUs:  1000,
		BlockID:       42,
		BlockType:     3,
		BlockSize:     4096,
		CFID:          7,
		CFName:        "default",
		Level:         2,
		FD:            99,
		Caller:        1,
		NoInsert:      false,
		GetID:         7,
		KeyID:         123,
		KVSize:        256,
		IsHitObserved: true,
	}
	if *rec != *want {
		t.Fatalf("Next() = %+v, want %+v", *rec, *want)
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("second Next() error = %v, want io.EOF", err)
	}
}

func TestReaderWrongFieldCountIsFatal(t *testing.T) {
	t.Parallel()
	r := NewReader(strings.NewReader("1,2,3\n"))
	_, err := r.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
}

func TestReaderNonIntegerFieldIsFatal(t *testing.T) {
	t.Parallel()
	line := "not-a-number,42,3,4096,7,default,2,99,1,0,7,123,256,1\n"
	r := NewReader(strings.NewReader(line))
	_, err := r.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
}

func TestReaderNegativeIntegerFieldIsFatal(t *testing.T) {
	t.Parallel()
	line := "-1,42,3,4096,7,default,2,99,1,0,7,123,256,1\n"
	r := NewReader(strings.NewReader(line))
	_, err := r.Next()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Next() error = %v, want *FormatError", err)
	}
}

func TestReaderMultipleRecordsInOrder(t *testing.T) {
	t.Parallel()
	data := "1,1,0,1,0,cfa,0,0,0,0,0,0,0,0\n2,2,0,1,0,cfa,0,0,0,0,0,0,0,1\n"
	r := NewReader(strings.NewReader(data))

	first, err := r.Next()
	if err != nil {
		t.Fatalf("first Next() error: %v", err)
	}
	if first.AccessTimeUs != 1 || first.IsHitObserved {
		t.Fatalf("first record = %+v", first)
	}
	second, err := r.Next()
	if err != nil {
		t.Fatalf("second Next() error: %v", err)
	}
	if second.AccessTimeUs != 2 || !second.IsHitObserved {
		t.Fatalf("second record = %+v", second)
	}
}

func TestRecordKeysAndRowGet(t *testing.T) {
	t.Parallel()
	r := &Record{BlockID: 5, KeyID: 9, Caller: 1, GetID: 7}
	if r.BlockKey() != "b5" {
		t.Fatalf("BlockKey() = %q, want b5", r.BlockKey())
	}
	if r.RowKey() != "g9" {
		t.Fatalf("RowKey() = %q, want g9", r.RowKey())
	}
	if !r.IsRowGet() {
		t.Fatalf("IsRowGet() = false, want true for caller=1 with nonzero get_id/key_id")
	}

	nonRow := &Record{BlockID: 5, KeyID: 9, Caller: 0, GetID: 7}
	if nonRow.IsRowGet() {
		t.Fatalf("IsRowGet() = true for caller=0, want false")
	}
	zeroGet := &Record{BlockID: 5, KeyID: 9, Caller: 1, GetID: 0}
	if zeroGet.IsRowGet() {
		t.Fatalf("IsRowGet() = true for get_id=0, want false")
	}
}
