package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Espacios de nombres de los IDs deterministas: el mismo SKU o documento siempre produce el mismo UUID.
var (
	productNamespace = uuid.MustParse("6f1c2a0e-93d4-4b7e-a1f5-0c8e5d2b7a10")
	clientNamespace  = uuid.MustParse("b8e4d1a2-57c3-4f09-9e6a-3d2f1c0b8a47")
)

type productRow struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	ReorderPoint int
}

type clientRow struct {
	ID      string
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// decodeText devuelve el contenido en UTF-8. Las hojas exportadas desde Excel en Windows
// suelen venir en ISO-8859-1; si el archivo no es UTF-8 válido se decodifica como Latin-1.
func decodeText(raw []byte) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar ISO-8859-1: %w", err)
	}
	return bytes.NewReader(out), nil
}

// readRecords lee un CSV con cabecera. Acepta ',' o ';' como separador.
func readRecords(raw []byte) ([]map[string]string, error) {
	r, err := decodeText(raw)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(data))
	firstLine, _, _ := strings.Cut(string(data), "\n")
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseProducts columnas: sku, name, price, stock, reorder_point, description (opcional).
func parseProducts(raw []byte) ([]productRow, error) {
	records, err := readRecords(raw)
	if err != nil {
		return nil, err
	}
	out := make([]productRow, 0, len(records))
	seen := map[string]int{}
	for i, rec := range records {
		line := i + 2
		p := productRow{
			SKU:         rec["sku"],
			Name:        rec["name"],
			Description: rec["description"],
		}
		if p.SKU == "" || p.Name == "" {
			return nil, fmt.Errorf("línea %d: sku y name son requeridos", line)
		}
		if prev, dup := seen[p.SKU]; dup {
			return nil, fmt.Errorf("línea %d: sku %q repetido (línea %d)", line, p.SKU, prev)
		}
		seen[p.SKU] = line

		if p.Price, err = parseMoney(rec["price"]); err != nil || p.Price.IsNegative() {
			return nil, fmt.Errorf("línea %d: price inválido %q", line, rec["price"])
		}
		if p.Stock, err = parseCount(rec["stock"]); err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec["stock"])
		}
		if p.ReorderPoint, err = parseCount(rec["reorder_point"]); err != nil {
			return nil, fmt.Errorf("línea %d: reorder_point inválido %q", line, rec["reorder_point"])
		}
		p.ID = uuid.NewSHA1(productNamespace, []byte(p.SKU)).String()
		out = append(out, p)
	}
	return out, nil
}

// parseClients columnas: name, tax_id, email, phone, address.
func parseClients(raw []byte) ([]clientRow, error) {
	records, err := readRecords(raw)
	if err != nil {
		return nil, err
	}
	out := make([]clientRow, 0, len(records))
	for i, rec := range records {
		c := clientRow{
			Name:    rec["name"],
			TaxID:   rec["tax_id"],
			Email:   rec["email"],
			Phone:   rec["phone"],
			Address: rec["address"],
		}
		if c.Name == "" {
			return nil, fmt.Errorf("línea %d: name es requerido", i+2)
		}
		key := c.TaxID
		if key == "" {
			key = "name:" + strings.ToLower(c.Name)
		}
		c.ID = uuid.NewSHA1(clientNamespace, []byte(key)).String()
		out = append(out, c)
	}
	return out, nil
}

// parseMoney acepta "18500", "18500.50" y el formato local "18.500,50".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negativo")
	}
	return n, nil
}

// writeSQL escribe un script idempotente (upsert por sku / id).
func writeSQL(w io.Writer, products []productRow, clients []clientRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed\n\n")

	if len(products) > 0 {
		b.WriteString("INSERT INTO products (id, sku, name, description, price, stock, reorder_point) VALUES\n")
		for i, p := range products {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, %d, %d)%s\n",
				p.ID, escapeSQL(p.SKU), escapeSQL(p.Name), escapeSQL(p.Description),
				p.Price.StringFixed(2), p.Stock, p.ReorderPoint, sep(i, len(products)))
		}
		b.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,\n")
		b.WriteString("  price = EXCLUDED.price, reorder_point = EXCLUDED.reorder_point, updated_at = now();\n\n")
	}

	if len(clients) > 0 {
		b.WriteString("INSERT INTO clients (id, name, tax_id, email, phone, address) VALUES\n")
		for i, c := range clients {
			fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s', '%s', '%s')%s\n",
				c.ID, escapeSQL(c.Name), nullable(c.TaxID), escapeSQL(c.Email),
				escapeSQL(c.Phone), escapeSQL(c.Address), sep(i, len(clients)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email,\n")
		b.WriteString("  phone = EXCLUDED.phone, address = EXCLUDED.address, updated_at = now();\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
