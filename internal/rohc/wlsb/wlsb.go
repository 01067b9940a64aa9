// Package wlsb implements the W-LSB encoding scheme of RFC 3095 §4.5.2.
//
// The compressor keeps a sliding window of recently transmitted reference
// values. For a new value it computes the smallest number of LSBs k such
// that the decompressor, whose own reference is any value still in the
// window, reconstructs the original value from those k bits alone. The
// interpretation interval for bit width k and shift parameter p is
// [v_ref - p, v_ref + 2^k - 1 - p].
package wlsb

// DefaultWidth is the default window width (number of references kept).
const DefaultWidth = 4

// Shift parameters by field, RFC 3095 §4.5.2 / §5.7.
const (
	ShiftSN   = 1 // sequence numbers: small positive jumps dominate
	ShiftIPID = 0 // offset IP-ID: the offset itself is the tracked value
)

type ref struct {
	snRef uint16
	value uint16
}

// Window is a bounded FIFO of (sn, value) reference pairs.
// Not safe for concurrent use; a window belongs to exactly one context.
type Window struct {
	refs  []ref
	next  int // ring insert position
	count int
	p     int16
}

// New creates a window of the given width and shift parameter.
func New(width int, p int16) *Window {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Window{refs: make([]ref, width), p: p}
}

// Add inserts a reference, evicting the oldest when the window is full.
func (w *Window) Add(snRef, value uint16) {
	w.refs[w.next] = ref{snRef: snRef, value: value}
	w.next = (w.next + 1) % len(w.refs)
	if w.count < len(w.refs) {
		w.count++
	}
}

// Len returns the number of references currently held.
func (w *Window) Len() int { return w.count }

// canDecode reports whether value falls inside the k-bit interpretation
// interval anchored at vRef. All arithmetic is modulo 2^16.
func (w *Window) canDecode(vRef, value uint16, k uint) bool {
	interval := uint32(1) << k
	low := vRef - uint16(w.p)
	return uint32(value-low) < interval
}

// MinK returns the smallest k such that every reference in the window can
// decode value from its k LSBs. The second result is false when no
// k <= maxK works (the caller must escalate the packet format) or when the
// window is empty.
func (w *Window) MinK(value uint16, maxK uint) (uint, bool) {
	if w.count == 0 {
		return 0, false
	}
	for k := uint(0); k <= maxK; k++ {
		ok := true
		for i := 0; i < w.count; i++ {
			if !w.canDecode(w.refs[(w.next-w.count+i+len(w.refs))%len(w.refs)].value, value, k) {
				ok = false
				break
			}
		}
		if ok {
			return k, true
		}
	}
	return 0, false
}

// Purge drops every reference whose sn is at or before upToSN, keeping at
// least the newest one. Called when an ACK acknowledges upToSN: older
// references can no longer be the decompressor's anchor.
func (w *Window) Purge(upToSN uint16) {
	kept := make([]ref, 0, len(w.refs))
	for i := 0; i < w.count; i++ {
		r := w.refs[(w.next-w.count+i+len(w.refs))%len(w.refs)]
		// "newer than upToSN" under 16-bit wraparound
		if int16(r.snRef-upToSN) > 0 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 && w.count > 0 {
		kept = append(kept, w.refs[(w.next-1+len(w.refs))%len(w.refs)])
	}
	for i := range w.refs {
		w.refs[i] = ref{}
	}
	copy(w.refs, kept)
	w.count = len(kept)
	w.next = w.count % len(w.refs)
}

// Reset empties the window.
func (w *Window) Reset() {
	w.count = 0
	w.next = 0
}
