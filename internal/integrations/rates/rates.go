// Package rates loads the static currency rate table at startup. Two XML
// layouts are understood: a RateTable quoted per US dollar, and the Central
// Bank of Russia ValCurs daily document, which is re-based to the dollar.
package rates

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Dan9191/calc-service/internal/calc/currency"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

//go:embed rates.xml
var defaultRates []byte

// Loader reads rate documents
type Loader struct {
	log *logrus.Logger
}

// NewLoader initializes a new loader
func NewLoader(log *logrus.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads the table from path, or the built-in table when path is empty
func (l *Loader) Load(path string) (*currency.RateTable, error) {
	if path == "" {
		return l.Parse(defaultRates)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file: %w", err)
	}
	table, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Parse detects the document layout from its root element
func (l *Loader) Parse(data []byte) (*currency.RateTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty rate document")
	}

	var (
		rates []currency.Rate
		err   error
	)
	switch root.Tag {
	case "RateTable":
		rates, err = parseRateTable(root)
	case "ValCurs":
		rates, err = parseValCurs(root)
	default:
		return nil, fmt.Errorf("unsupported rate document <%s>", root.Tag)
	}
	if err != nil {
		return nil, err
	}

	table, err := currency.NewRateTable(rates)
	if err != nil {
		return nil, err
	}
	l.log.Infof("Loaded %d currency rates from <%s>", len(rates), root.Tag)
	return table, nil
}

func parseRateTable(root *etree.Element) ([]currency.Rate, error) {
	if base := root.SelectAttrValue("base", currency.BaseCode); base != currency.BaseCode {
		return nil, fmt.Errorf("rate table base must be %s, got %s", currency.BaseCode, base)
	}

	elements := root.SelectElements("Rate")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := make([]currency.Rate, 0, len(elements))
	for _, el := range elements {
		code := el.SelectAttrValue("code", "")
		value, err := parseNumber(el.Text())
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %q: %w", code, err)
		}
		rates = append(rates, currency.Rate{
			Code:   code,
			Name:   el.SelectAttrValue("name", ""),
			PerUSD: value,
		})
	}
	return rates, nil
}

// parseNumber accepts both decimal separators
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
