package result

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// WriteJSON encodes a report as
//
//	{"findings":[{"mnemonic":"ADD A, B","opcode":128,...}, ...],"cases":N,"failed":N}
func WriteJSON(w io.Writer, r *Report) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("findings")
	e.ArrStart()
	for _, f := range r.Findings {
		e.ObjStart()
		e.FieldStart("mnemonic")
		e.Str(f.Mnemonic)
		e.FieldStart("opcode")
		e.UInt64(uint64(f.Opcode))
		e.FieldStart("cases")
		e.UInt64(f.Cases)
		e.FieldStart("mismatches")
		e.UInt64(f.Mismatches)
		if f.First != "" {
			e.FieldStart("first")
			e.Str(f.First)
		}
		e.FieldStart("digest")
		e.Str(fmt.Sprintf("%016x", f.Digest))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("cases")
	e.UInt64(r.Cases())
	e.FieldStart("failed")
	e.Int(len(r.Failed()))
	e.ObjEnd()

	_, err := w.Write(e.Bytes())
	return err
}

// ReadJSON decodes a report written by WriteJSON. Summary fields are
// recomputed from the findings and ignored on input.
func ReadJSON(rd io.Reader) (*Report, error) {
	buf, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	var r Report
	d := jx.DecodeBytes(buf)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		if key != "findings" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			f, err := decodeFinding(d)
			if err != nil {
				return err
			}
			r.Findings = append(r.Findings, f)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func decodeFinding(d *jx.Decoder) (Finding, error) {
	var f Finding
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "mnemonic":
			f.Mnemonic, err = d.Str()
		case "opcode":
			var op uint64
			if op, err = d.UInt64(); err == nil && op > 0xFF {
				err = fmt.Errorf("opcode %d out of range", op)
			}
			f.Opcode = uint8(op)
		case "cases":
			f.Cases, err = d.UInt64()
		case "mismatches":
			f.Mismatches, err = d.UInt64()
		case "first":
			f.First, err = d.Str()
		case "digest":
			var s string
			if s, err = d.Str(); err == nil {
				_, err = fmt.Sscanf(s, "%x", &f.Digest)
			}
		default:
			err = d.Skip()
		}
		return err
	})
	return f, err
}
