package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/futuroattore86/Ale-Abbey-Beer-Tycoon-Calculator/optimizer"
)

// searchInput is the validated triple handed to FindOptimal.
type searchInput struct {
	Required []int
	Unlocked []int
	Ranges   optimizer.Ranges
}

// resolveIngredient accepts an ingredient name or a catalog index.
func resolveIngredient(cat *optimizer.Catalog, s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if err := cat.Validate([]int{n}); err != nil {
			return -1, err
		}
		return n, nil
	}
	return cat.IndexOf(s)
}

func resolveIngredients(cat *optimizer.Catalog, items []string) ([]int, error) {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		idx, err := resolveIngredient(cat, it)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// parseRange reads "low:high" or a single value meaning low == high.
func parseRange(s string) (optimizer.Range, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), ":")
	low, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return optimizer.Range{}, fmt.Errorf("%w: %q", optimizer.ErrInvalidRange, s)
	}
	if !found {
		return optimizer.Range{Low: low, High: low}, nil
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return optimizer.Range{}, fmt.Errorf("%w: %q", optimizer.ErrInvalidRange, s)
	}
	return optimizer.Range{Low: low, High: high}, nil
}

// parseSearchRequest decodes a JSON request of the form
//
//	{"required": ["base_malt", 21], "unlocked": [...], "unlockedThrough": 5,
//	 "ranges": {"taste": [0, 5], "color": {"low": 1, "high": 2}, ...}}
//
// Ingredients may be names or indices. unlockedThrough adds the first n
// ingredients of the unlock order to unlocked.
func parseSearchRequest(cat *optimizer.Catalog, body string) (searchInput, error) {
	var in searchInput
	if !gjson.Valid(body) {
		return in, fmt.Errorf("invalid JSON")
	}
	root := gjson.Parse(body)

	var err error
	if in.Required, err = readIngredientList(cat, root.Get("required")); err != nil {
		return in, fmt.Errorf("required: %w", err)
	}
	if in.Unlocked, err = readIngredientList(cat, root.Get("unlocked")); err != nil {
		return in, fmt.Errorf("unlocked: %w", err)
	}
	if n := root.Get("unlockedThrough"); n.Exists() {
		in.Unlocked = append(in.Unlocked, cat.UnlockedThrough(int(n.Int()))...)
	}

	ranges := make(map[string]optimizer.Range)
	var rangeErr error
	root.Get("ranges").ForEach(func(k, v gjson.Result) bool {
		r, err := readRange(v)
		if err != nil {
			rangeErr = fmt.Errorf("%s: %w", k.String(), err)
			return false
		}
		ranges[k.String()] = r
		return true
	})
	if rangeErr != nil {
		return in, rangeErr
	}
	if in.Ranges, err = optimizer.ParseRanges(ranges); err != nil {
		return in, err
	}
	return in, nil
}

func readIngredientList(cat *optimizer.Catalog, v gjson.Result) ([]int, error) {
	var out []int
	var err error
	v.ForEach(func(_, item gjson.Result) bool {
		var idx int
		switch item.Type {
		case gjson.Number:
			idx = int(item.Int())
			err = cat.Validate([]int{idx})
		default:
			idx, err = cat.IndexOf(item.String())
		}
		if err != nil {
			return false
		}
		out = append(out, idx)
		return true
	})
	return out, err
}

func readRange(v gjson.Result) (optimizer.Range, error) {
	switch {
	case v.IsArray():
		arr := v.Array()
		if len(arr) != 2 {
			return optimizer.Range{}, fmt.Errorf("%w: want [low, high]", optimizer.ErrInvalidRange)
		}
		return optimizer.Range{Low: arr[0].Float(), High: arr[1].Float()}, nil
	case v.IsObject():
		low, high := v.Get("low"), v.Get("high")
		if !low.Exists() || !high.Exists() {
			return optimizer.Range{}, fmt.Errorf("%w: want {\"low\": n, \"high\": n}", optimizer.ErrInvalidRange)
		}
		return optimizer.Range{Low: low.Float(), High: high.Float()}, nil
	case v.Type == gjson.String:
		return parseRange(v.String())
	case v.Type == gjson.Number:
		return optimizer.Range{Low: v.Float(), High: v.Float()}, nil
	}
	return optimizer.Range{}, fmt.Errorf("%w: unsupported value %s", optimizer.ErrInvalidRange, v.Raw)
}
