package dict

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/morph/tensor"
)

// wireTensor is the shape-preserving wire form of a tensor.
type wireTensor struct {
	Shape []int     `msgpack:"shape"`
	Data  []float64 `msgpack:"data"`
}

// wireDict is the wire form of a Dict.
type wireDict struct {
	Fields map[string]wireTensor `msgpack:"fields"`
}

// Encode serializes the Dict as MessagePack, preserving field names, shapes,
// and element values. Use for checkpointing containers between processes.
func (d *Dict) Encode() ([]byte, error) {
	out := wireDict{Fields: make(map[string]wireTensor, len(d.fields))}
	for k, v := range d.fields {
		out.Fields[k] = wireTensor{Shape: v.Shape(), Data: v.Data()}
	}
	data, err := msgpack.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode dict: %w", err)
	}
	return data, nil
}

// Decode deserializes a Dict previously produced by Encode.
func Decode(data []byte) (*Dict, error) {
	var in wireDict
	if err := msgpack.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode dict: %w", err)
	}
	fields := make(map[string]*tensor.Dense, len(in.Fields))
	for k, v := range in.Fields {
		t, err := tensor.FromSlice(v.Data, v.Shape...)
		if err != nil {
			return nil, fmt.Errorf("decode dict field %q: %w", k, err)
		}
		fields[k] = t
	}
	return New(fields), nil
}
