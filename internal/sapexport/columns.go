// internal/sapexport/columns.go
package sapexport

import "strings"

// Canonical column identifiers of a SAP B1 sales export.
const (
	colItemCode    = "item_code"
	colDescription = "product_description"
	colShipped     = "qty_shipped_period"
	colIncoming    = "qty_already_ordered_suppliers"
	colCommitted   = "qty_committed_open_customer_orders"
	colOnHand      = "stock_on_hand_total"
	colAvg6m       = "avg_sales_last_6_months"
	colPackSize    = "pack_size"
	colVendor      = "vendor_name"
	colVendorCode  = "vendor_code"
)

// columnSynonyms maps each canonical column to the header variants SAP B1
// produces across export templates. Matching happens on the normalized form
// (lowercase, accents stripped, alphanumeric only), so entries double as
// documentation of the raw headers seen in the wild.
var columnSynonyms = map[string][]string{
	colItemCode:    {"codice articolo", "articolo", "cod prod", "codice"},
	colDescription: {"descrizione articolo", "descrizione", "descr"},
	colShipped:     {"qta sped", "quantità spedita", "spedite"},
	colIncoming: {
		"quantità ordinata fornitori",
		"quantità ordinata dai fornitori",
		"fornitori ordinati",
		"ordinati fornitori",
	},
	colCommitted: {
		"quantità impegnata",
		"impegnata",
		"impegnato",
		"ordini clienti",
		"quantità ordinata clienti",
		"quantità ordinata dai clienti",
	},
	colOnHand:     {"giac tot", "giacenza totale", "giacenza", "stock"},
	colAvg6m:      {"media 6 mesi", "media 6 mesi vendite", "vendite 6 mesi"},
	colPackSize:   {"pezzi collo/scatola", "pezzi collo", "pezzi per collo"},
	colVendor:     {"fornitore", "nome fornitore", "vendor"},
	colVendorCode: {"codice fornitore", "vendorcode"},
}

var accentReplacer = strings.NewReplacer(
	"à", "a", "è", "e", "é", "e", "ì", "i", "ò", "o", "ù", "u",
)

// normalizeHeader lowercases, strips accents and drops every non-alphanumeric
// character, so "Quantità spedita" and "QtaSped " compare equal to their
// synonyms.
func normalizeHeader(name string) string {
	name = accentReplacer.Replace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveHeaders maps raw header cells to canonical column indices. Unknown
// headers are ignored; duplicate matches keep the first occurrence.
func resolveHeaders(headers []string) map[string]int {
	normalized := make(map[string]string, len(columnSynonyms))
	for canonical, synonyms := range columnSynonyms {
		for _, syn := range synonyms {
			normalized[normalizeHeader(syn)] = canonical
		}
	}

	indexes := make(map[string]int)
	for i, raw := range headers {
		canonical, ok := normalized[normalizeHeader(raw)]
		if !ok {
			continue
		}
		if _, taken := indexes[canonical]; !taken {
			indexes[canonical] = i
		}
	}
	return indexes
}
