package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// uint64SliceValue is a pflag.Value for repeatable uint64 flags, matching the
// behavior of pflag's built-in slice values (pflag has no Uint64Slice type).
type uint64SliceValue struct {
	value   *[]uint64
	changed bool
}

func newUint64SliceValue(p *[]uint64, val []uint64) *uint64SliceValue {
	*p = val
	return &uint64SliceValue{value: p}
}

func (s *uint64SliceValue) Set(val string) error {
	parts := strings.Split(val, ",")
	out := make([]uint64, 0, len(parts))
	for _, part := range parts {
		u, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return err
		}
		out = append(out, u)
	}
	if !s.changed {
		*s.value = out
		s.changed = true
	} else {
		*s.value = append(*s.value, out...)
	}
	return nil
}

func (s *uint64SliceValue) Type() string {
	return "uint64Slice"
}

func (s *uint64SliceValue) String() string {
	parts := make([]string, len(*s.value))
	for i, u := range *s.value {
		parts[i] = strconv.FormatUint(u, 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func uint64SliceVar(fs *pflag.FlagSet, p *[]uint64, name string, value []uint64, usage string) {
	fs.Var(newUint64SliceValue(p, value), name, usage)
}
