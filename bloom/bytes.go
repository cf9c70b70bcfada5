package bloom

import "encoding/binary"

func writeU64BE(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }
