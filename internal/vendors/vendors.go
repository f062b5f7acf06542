// internal/vendors/vendors.go

// Package vendors loads the optional vendor reference file and produces the
// CSV template buyers fill in with codes, minimum order quantities and
// vendor-specific lead times.
package vendors

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mcampagna/riordino/internal/domain"
)

var templateHeader = []string{"vendor_name", "vendor_code", "moq", "default_lead_time", "currency"}

// Load reads the vendor reference CSV keyed by vendor name as it appears in
// the sales export. Empty moq or lead time cells mean "no constraint" and
// "no override" respectively.
func Load(r io.Reader) (map[string]domain.VendorInfo, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor reference: %w", err)
	}
	if len(records) == 0 {
		return map[string]domain.VendorInfo{}, nil
	}

	indexes := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		indexes[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := indexes["vendor_name"]; !ok {
		return nil, fmt.Errorf("vendor reference has no vendor_name column (headers: %v)", records[0])
	}

	ref := make(map[string]domain.VendorInfo, len(records)-1)
	for line, record := range records[1:] {
		name := strings.TrimSpace(field(record, indexes, "vendor_name"))
		if name == "" {
			continue
		}

		info := domain.VendorInfo{
			VendorID:   name,
			VendorCode: strings.TrimSpace(field(record, indexes, "vendor_code")),
			Currency:   strings.TrimSpace(field(record, indexes, "currency")),
		}

		if raw := strings.TrimSpace(field(record, indexes, "moq")); raw != "" {
			moq, err := strconv.ParseFloat(raw, 64)
			if err != nil || moq < 0 {
				return nil, fmt.Errorf("vendor reference line %d: invalid moq %q", line+2, raw)
			}
			info.MinOrderQty = moq
		}
		if raw := strings.TrimSpace(field(record, indexes, "default_lead_time")); raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil || days < 0 {
				return nil, fmt.Errorf("vendor reference line %d: invalid default_lead_time %q", line+2, raw)
			}
			info.LeadTimeOverrideDays = days
			info.HasLeadTimeOverride = true
		}

		ref[name] = info
	}
	return ref, nil
}

// LoadFile is Load over a file on disk.
func LoadFile(path string) (map[string]domain.VendorInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vendor reference %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// WriteTemplate emits the reference CSV skeleton for the given vendor names,
// sorted and deduplicated, with the default values buyers start from.
func WriteTemplate(w io.Writer, vendorNames []string) error {
	seen := make(map[string]bool, len(vendorNames))
	unique := make([]string, 0, len(vendorNames))
	for _, name := range vendorNames {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	sort.Strings(unique)

	writer := csv.NewWriter(w)
	if err := writer.Write(templateHeader); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}
	for _, name := range unique {
		if err := writer.Write([]string{name, "", "0", "10", "EUR"}); err != nil {
			return fmt.Errorf("failed to write template row for %s: %w", name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func field(record []string, indexes map[string]int, name string) string {
	i, ok := indexes[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
