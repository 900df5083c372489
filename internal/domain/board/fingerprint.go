package board

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies the position's size, stones and ko point.
func (p Position) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(p.geo.n))
	_, _ = d.WriteString(":")
	_, _ = d.WriteString(p.board.Encode())
	if p.hasKo {
		_, _ = d.WriteString(":ko" + strconv.Itoa(int(p.ko)))
	}
	return d.Sum64()
}
