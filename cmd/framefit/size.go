package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gogpu/frameview"
)

// parseSize parses WxH, also accepting W:H for aspect-only input.
func parseSize(s string) (frameview.Size, error) {
	sep := "x"
	if strings.Contains(s, ":") {
		sep = ":"
	}
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), sep)
	if !ok {
		return frameview.Size{}, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseUint(ws, 10, 32)
	if err != nil {
		return frameview.Size{}, fmt.Errorf("size %q: width: %w", s, err)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return frameview.Size{}, fmt.Errorf("size %q: height: %w", s, err)
	}
	return frameview.Size{Width: uint32(w), Height: uint32(h)}, nil
}

// sizeValue is a pflag.Value holding one size.
type sizeValue struct{ size *frameview.Size }

var _ pflag.Value = sizeValue{}

func (v sizeValue) String() string {
	if v.size == nil {
		return ""
	}
	return v.size.String()
}

func (v sizeValue) Set(s string) error {
	size, err := parseSize(s)
	if err != nil {
		return err
	}
	*v.size = size
	return nil
}

func (sizeValue) Type() string { return "WxH" }

// sizeList is a repeatable pflag.Value collecting sizes.
type sizeList struct{ sizes *[]frameview.Size }

var _ pflag.Value = sizeList{}

func (v sizeList) String() string {
	if v.sizes == nil {
		return ""
	}
	parts := make([]string, len(*v.sizes))
	for i, s := range *v.sizes {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

func (v sizeList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		size, err := parseSize(part)
		if err != nil {
			return err
		}
		*v.sizes = append(*v.sizes, size)
	}
	return nil
}

func (sizeList) Type() string { return "WxH" }
