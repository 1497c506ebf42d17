package extract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Word 97-2003 File Information Block offsets.
const (
	wordIdent        = 0xA5EC
	fibFlagsOffset   = 0x000A
	fibCcpTextOffset = 0x004C
	fibFcClxOffset   = 0x01A2
	fibLcbClxOffset  = 0x01A6
	fibMinSize       = fibLcbClxOffset + 4

	flagEncrypted      = 0x0100
	flagWhichTable     = 0x0200
	pieceCompressed    = 0x40000000
	clxPrcMarker       = 0x01
	clxPcdtMarker      = 0x02
	pieceDescriptorLen = 8
)

var errNotWordDocument = errors.New("not a word document")

// extractDOC reads the main document text of a legacy .doc file through its
// piece table.
func extractDOC(data []byte) (string, error) {
	reader, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open compound file: %w", err)
	}

	streams := map[string][]byte{}
	for entry, err := reader.Next(); err == nil; entry, err = reader.Next() {
		switch entry.Name {
		case "WordDocument", "0Table", "1Table":
			content, err := io.ReadAll(entry)
			if err != nil {
				return "", fmt.Errorf("read %s stream: %w", entry.Name, err)
			}
			streams[entry.Name] = content
		}
	}

	wordDocument, ok := streams["WordDocument"]
	if !ok {
		return "", errNotWordDocument
	}
	return textFromStreams(wordDocument, streams)
}

func textFromStreams(wordDocument []byte, tables map[string][]byte) (string, error) {
	if len(wordDocument) < fibMinSize {
		return "", errNotWordDocument
	}
	if binary.LittleEndian.Uint16(wordDocument) != wordIdent {
		return "", errNotWordDocument
	}

	flags := binary.LittleEndian.Uint16(wordDocument[fibFlagsOffset:])
	if flags&flagEncrypted != 0 {
		return "", errors.New("document is encrypted")
	}
	tableName := "0Table"
	if flags&flagWhichTable != 0 {
		tableName = "1Table"
	}
	table, ok := tables[tableName]
	if !ok {
		return "", fmt.Errorf("%s stream missing", tableName)
	}

	ccpText := binary.LittleEndian.Uint32(wordDocument[fibCcpTextOffset:])
	fcClx := binary.LittleEndian.Uint32(wordDocument[fibFcClxOffset:])
	lcbClx := binary.LittleEndian.Uint32(wordDocument[fibLcbClxOffset:])
	if uint64(fcClx)+uint64(lcbClx) > uint64(len(table)) {
		return "", errors.New("piece table out of range")
	}

	plcPcd, err := findPlcPcd(table[fcClx : fcClx+lcbClx])
	if err != nil {
		return "", err
	}
	raw, err := readPieces(wordDocument, plcPcd, ccpText)
	if err != nil {
		return "", err
	}
	return cleanWordText(raw), nil
}

// findPlcPcd skips property modifiers at the head of the Clx and returns the
// piece descriptor table.
func findPlcPcd(clx []byte) ([]byte, error) {
	pos := 0
	for pos < len(clx) {
		switch clx[pos] {
		case clxPrcMarker:
			if pos+3 > len(clx) {
				return nil, errors.New("truncated clx")
			}
			cb := int(int16(binary.LittleEndian.Uint16(clx[pos+1:])))
			if cb < 0 {
				return nil, errors.New("invalid clx property size")
			}
			pos += 3 + cb
		case clxPcdtMarker:
			if pos+5 > len(clx) {
				return nil, errors.New("truncated clx")
			}
			lcb := int(binary.LittleEndian.Uint32(clx[pos+1:]))
			start := pos + 5
			if lcb < 4 || start+lcb > len(clx) {
				return nil, errors.New("invalid piece table size")
			}
			return clx[start : start+lcb], nil
		default:
			return nil, fmt.Errorf("unexpected clx marker 0x%02x", clx[pos])
		}
	}
	return nil, errors.New("piece table not found")
}

func readPieces(wordDocument, plcPcd []byte, ccpText uint32) (string, error) {
	n := (len(plcPcd) - 4) / (4 + pieceDescriptorLen)
	descriptors := plcPcd[4*(n+1):]

	cp := func(i int) uint32 {
		return binary.LittleEndian.Uint32(plcPcd[4*i:])
	}

	var out strings.Builder
	for i := 0; i < n; i++ {
		start, end := cp(i), cp(i+1)
		if start >= ccpText {
			break
		}
		if end > ccpText {
			end = ccpText
		}
		if end <= start {
			continue
		}
		count := int(end - start)

		pcd := descriptors[i*pieceDescriptorLen : (i+1)*pieceDescriptorLen]
		fc := binary.LittleEndian.Uint32(pcd[2:6])

		var (
			chunk []byte
			err   error
		)
		if fc&pieceCompressed != 0 {
			offset := int((fc &^ pieceCompressed) / 2)
			if offset+count > len(wordDocument) {
				return "", errors.New("piece out of range")
			}
			chunk, err = charmap.Windows1252.NewDecoder().Bytes(wordDocument[offset : offset+count])
		} else {
			offset := int(fc)
			if offset+2*count > len(wordDocument) {
				return "", errors.New("piece out of range")
			}
			decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
			chunk, err = decoder.Bytes(wordDocument[offset : offset+2*count])
		}
		if err != nil {
			return "", fmt.Errorf("decode piece %d: %w", i, err)
		}
		out.Write(chunk)
	}
	return out.String(), nil
}

// cleanWordText maps Word's in-band control characters onto plain text.
// Field instructions (between 0x13 and 0x14) are dropped and field results
// kept.
func cleanWordText(raw string) string {
	var out strings.Builder
	// One entry per open field; true while still inside its instruction.
	var fields []bool
	for _, r := range raw {
		switch r {
		case 0x13:
			fields = append(fields, true)
			continue
		case 0x14:
			if len(fields) > 0 {
				fields[len(fields)-1] = false
			}
			continue
		case 0x15:
			if len(fields) > 0 {
				fields = fields[:len(fields)-1]
			}
			continue
		}
		if len(fields) > 0 && fields[len(fields)-1] {
			continue
		}

		switch {
		case r == '\r' || r == 0x0B || r == 0x0C:
			out.WriteByte('\n')
		case r == 0x07:
			out.WriteByte('\t')
		case r == 0x1E:
			out.WriteByte('-')
		case r == '\t' || r == '\n':
			out.WriteRune(r)
		case r < 0x20:
		default:
			out.WriteRune(r)
		}
	}
	return strings.TrimSpace(out.String())
}
