// Package trace defines the block-access record this simulator replays
// and a reader for the documented CSV trace format (§6).
package trace

import (
	"math"
	"strconv"
)

// NeverAgain is the sentinel next-access sequence number for a block that
// is never accessed again in the trace, matching sys.maxsize in the
// original BlockAccessTimeline.get_next_access.
const NeverAgain = int64(math.MaxInt64)

// Record is a single logged block access (TraceRecord in the spec). It is
// immutable once constructed, except for NextAccessSeqNo, which the
// simulator's optional OPT pre-pass fills in after the record has already
// been read from the file.
type Record struct {
	AccessTimeUs  int64
	BlockID       uint64
	BlockType     int64
	BlockSize     int64
	CFID          int64
	CFName        string
	Level         int64
	FD            int64
	Caller        int64
	NoInsert      bool
	GetID         uint64
	KeyID         uint64
	KVSize        int64
	IsHitObserved bool

	// NextAccessSeqNo is the sequence number of this block's next access
	// in the trace, or NeverAgain. Only populated when the OPT cache is
	// in use (§5, Simulator's two-pass preprocessing).
	NextAccessSeqNo int64
}

// BlockKey namespaces a block-cache lookup key, disambiguating it from a
// row-key lookup that happens to carry the same numeric id.
func (r *Record) BlockKey() string { return "b" + strconv.FormatUint(r.BlockID, 10) }

// RowKey namespaces a point-get row-key lookup.
func (r *Record) RowKey() string { return "g" + strconv.FormatUint(r.KeyID, 10) }

// IsRowGet reports whether this record should be routed through row-key
// coalescing: caller code 1 (a point Get), with non-zero get_id/key_id.
func (r *Record) IsRowGet() bool {
	return r.Caller == 1 && r.GetID != 0 && r.KeyID != 0
}
