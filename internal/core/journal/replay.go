package journal

import "bytes"

// SkippedLine is a complete line that could not be decoded.
type SkippedLine struct {
	Offset int64
	Err    error
}

// ReplayBatch is the result of reading a journal forward from an offset.
type ReplayBatch struct {
	Records []Record
	Offset  int64 // end of the last complete line consumed
	Skipped []SkippedLine
}

// Scan decodes every complete line of data, which was read starting at byte
// offset base. A trailing line without '\n' is not consumed: Offset stops
// before it so the next read picks it up once the writer finishes it.
// Blank lines are consumed silently; undecodable lines are consumed and
// reported in Skipped.
func Scan(data []byte, base int64) ReplayBatch {
	batch := ReplayBatch{Offset: base}
	pos := 0
	for {
		nl := bytes.IndexByte(data[pos:], '\n')
		if nl < 0 {
			break
		}
		line := data[pos : pos+nl]
		at := base + int64(pos)
		pos += nl + 1
		batch.Offset = base + int64(pos)

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		r, err := Decode(line)
		if err != nil {
			batch.Skipped = append(batch.Skipped, SkippedLine{Offset: at, Err: err})
			continue
		}
		batch.Records = append(batch.Records, r)
	}
	return batch
}
