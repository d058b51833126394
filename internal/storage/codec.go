package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// Record decoding errors. They describe a single skipped vendor entry, never
// the whole record.
var (
	ErrEntryNotObject  = errors.New("vendor entry is not an object")
	ErrEntryMissingKey = errors.New("vendor entry has no name")
	ErrEntryBadField   = errors.New("vendor entry has a malformed field")
	ErrUnexpectedShape = errors.New("unexpected record shape")
)

// vendorRecord is the persisted form of a vendor.
type vendorRecord struct {
	Name         string   `json:"name"`
	Zone         string   `json:"zone"`
	LastReset    string   `json:"last_reset"`
	Categories   []string `json:"categories"`
	CouncilLeft  int      `json:"council_left"`
	ResetMaximum int      `json:"reset_maximum"`
}

// EncodeRecord serializes a collection as the canonical list-shaped record.
func EncodeRecord(vendors []*model.Vendor) ([]byte, error) {
	records := make([]vendorRecord, 0, len(vendors))
	for _, v := range vendors {
		if v == nil {
			continue
		}
		categories := v.Categories
		if categories == nil {
			categories = []string{}
		}
		records = append(records, vendorRecord{
			Name:         v.Name,
			Zone:         v.Zone,
			CouncilLeft:  v.CouncilLeft,
			LastReset:    v.LastReset.Format(time.RFC3339Nano),
			ResetMaximum: v.ResetMaximum,
			Categories:   categories,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode vendor record: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRecord parses a stored record. Besides the canonical list it accepts
// the legacy {"vendors": [...]} and {"vendor_list": [...]} containers.
//
// Entries that cannot be read are skipped and reported in the diagnostics
// slice. Only a record that is not valid JSON fails as a whole, wrapping
// common.ErrCorruptRecord.
func DecodeRecord(data []byte, policy model.SeedPolicy, now time.Time) ([]*model.Vendor, []error, error) {
	var top any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&top); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
	}

	entries, err := recordEntries(top)
	if err != nil {
		return []*model.Vendor{}, []error{err}, nil
	}

	vendors := make([]*model.Vendor, 0, len(entries))
	var diagnostics []error
	for i, entry := range entries {
		v, warnings, entryErr := decodeEntry(entry, policy, now)
		if entryErr != nil {
			diagnostics = append(diagnostics, fmt.Errorf("entry %d (%s): %w", i, entryName(entry), entryErr))
			continue
		}
		for _, w := range warnings {
			diagnostics = append(diagnostics, fmt.Errorf("entry %d (%s): %w", i, v.Name, w))
		}
		// names are unique; a later entry wins
		vendors = model.Upsert(vendors, v)
	}

	return vendors, diagnostics, nil
}

func recordEntries(top any) ([]any, error) {
	switch shape := top.(type) {
	case []any:
		return shape, nil
	case map[string]any:
		for _, key := range []string{"vendors", "vendor_list"} {
			if list, ok := shape[key].([]any); ok && len(list) > 0 {
				return list, nil
			}
		}
		return nil, fmt.Errorf("%w: object without a vendors list", ErrUnexpectedShape)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedShape, top)
	}
}

func decodeEntry(entry any, policy model.SeedPolicy, now time.Time) (*model.Vendor, []error, error) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return nil, nil, ErrEntryNotObject
	}

	name, ok := stringField(obj, "name")
	if !ok || strings.TrimSpace(name) == "" {
		return nil, nil, ErrEntryMissingKey
	}
	zone, ok := stringField(obj, "zone")
	if !ok {
		return nil, nil, fmt.Errorf("%w: zone", ErrEntryBadField)
	}
	council, err := intField(obj, "council_left")
	if err != nil {
		return nil, nil, err
	}
	maximum, err := intField(obj, "reset_maximum")
	if err != nil {
		return nil, nil, err
	}
	categories, err := stringsField(obj, "categories")
	if err != nil {
		return nil, nil, err
	}

	var warnings []error
	rawReset := obj["last_reset"]
	if n, isNum := rawReset.(json.Number); isNum {
		f, _ := n.Float64()
		rawReset = f
	}
	lastReset, parseErr := model.ParseLastReset(rawReset, now)
	if parseErr != nil {
		warnings = append(warnings, parseErr)
	}

	return model.NewVendor(name, zone, council, lastReset, maximum, categories, policy), warnings, nil
}

func entryName(entry any) string {
	if obj, ok := entry.(map[string]any); ok {
		if name, ok := obj["name"].(string); ok && name != "" {
			return name
		}
	}
	return "Unknown"
}

func stringField(obj map[string]any, key string) (string, bool) {
	switch v := obj[key].(type) {
	case nil:
		return "", true
	case string:
		return v, true
	default:
		return "", false
	}
}

// intField reads an integer the way older records wrote them: numbers
// (fractions truncated) or numeric strings. Missing or null means zero.
func intField(obj map[string]any, key string) (int, error) {
	switch v := obj[key].(type) {
	case nil:
		return 0, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > 9e15 {
			return 0, fmt.Errorf("%w: %s=%s", ErrEntryBadField, key, v)
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrEntryBadField, key, v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrEntryBadField, key, v)
	}
}

func stringsField(obj map[string]any, key string) ([]string, error) {
	switch v := obj[key].(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s contains %T", ErrEntryBadField, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrEntryBadField, key, v)
	}
}
