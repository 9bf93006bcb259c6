package rates

import (
	"fmt"

	"github.com/Dan9191/calc-service/internal/calc/currency"
	"github.com/beevik/etree"
)

const rubleCode = "RUB"

type valute struct {
	code      string
	name      string
	rubPerOne float64
}

// parseValCurs converts a CBR daily document, quoted in rubles per Nominal
// units, into rates per US dollar. The ruble itself is added to the table.
func parseValCurs(root *etree.Element) ([]currency.Rate, error) {
	elements := root.FindElements("./Valute")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no currency data found in XML")
	}

	valutes := make([]valute, 0, len(elements))
	var rubPerUSD float64
	for _, el := range elements {
		v, err := parseValute(el)
		if err != nil {
			return nil, err
		}
		if v.code == currency.BaseCode {
			rubPerUSD = v.rubPerOne
		}
		valutes = append(valutes, v)
	}
	if rubPerUSD == 0 {
		return nil, fmt.Errorf("%s quote not found in XML", currency.BaseCode)
	}

	rates := []currency.Rate{{Code: currency.BaseCode, Name: "US Dollar", PerUSD: 1}}
	for _, v := range valutes {
		if v.code == currency.BaseCode {
			continue
		}
		rates = append(rates, currency.Rate{
			Code:   v.code,
			Name:   v.name,
			PerUSD: rubPerUSD / v.rubPerOne,
		})
	}
	rates = append(rates, currency.Rate{Code: rubleCode, Name: "Russian Ruble", PerUSD: rubPerUSD})
	return rates, nil
}

func parseValute(el *etree.Element) (valute, error) {
	codeElement := el.FindElement("./CharCode")
	valueElement := el.FindElement("./Value")
	if codeElement == nil || valueElement == nil {
		return valute{}, fmt.Errorf("valute %q lacks CharCode or Value", el.SelectAttrValue("ID", ""))
	}
	code := codeElement.Text()

	nominal := 1.0
	if n := el.FindElement("./Nominal"); n != nil {
		var err error
		if nominal, err = parseNumber(n.Text()); err != nil {
			return valute{}, fmt.Errorf("failed to parse nominal for %s: %w", code, err)
		}
	}
	value, err := parseNumber(valueElement.Text())
	if err != nil {
		return valute{}, fmt.Errorf("failed to parse rate for %s: %w", code, err)
	}
	if nominal <= 0 || value <= 0 {
		return valute{}, fmt.Errorf("non-positive quote for %s", code)
	}

	var name string
	if n := el.FindElement("./Name"); n != nil {
		name = n.Text()
	}
	return valute{code: code, name: name, rubPerOne: value / nominal}, nil
}
