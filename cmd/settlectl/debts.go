package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/validation"
)

// debtFile is the YAML snapshot settlectl works on:
//
//	debts:
//	  - debtor: site-a
//	    creditor: site-b
//	    material: cement
//	    quantity: "40"
//	    unit: bag
//	    amount: "1000.00"
//	    vendor_unpaid: false
type debtFile struct {
	Debts []debtEntry `yaml:"debts"`
}

type debtEntry struct {
	ID           string `yaml:"id"`
	Debtor       string `yaml:"debtor"`
	Creditor     string `yaml:"creditor"`
	Material     string `yaml:"material"`
	MaterialName string `yaml:"material_name"`
	Unit         string `yaml:"unit"`
	Quantity     string `yaml:"quantity"`
	Amount       string `yaml:"amount"`
	VendorUnpaid bool   `yaml:"vendor_unpaid"`
}

// loadDebts reads and validates every debt in path.
func loadDebts(path string) ([]models.MaterialDebt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file debtFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	debts := make([]models.MaterialDebt, 0, len(file.Debts))
	for i, e := range file.Debts {
		d, err := e.toModel()
		if err != nil {
			return nil, fmt.Errorf("debt %d: %w", i+1, err)
		}
		if d.ID == "" {
			d.ID = fmt.Sprintf("debt-%d", i+1)
		}
		debts = append(debts, d)
	}
	return debts, nil
}

func (e debtEntry) toModel() (models.MaterialDebt, error) {
	amount, err := parseDecimal("amount", e.Amount)
	if err != nil {
		return models.MaterialDebt{}, err
	}
	quantity, err := parseDecimal("quantity", e.Quantity)
	if err != nil {
		return models.MaterialDebt{}, err
	}

	name := e.MaterialName
	if name == "" {
		name = e.Material
	}
	d := models.MaterialDebt{
		ID:             e.ID,
		DebtorSiteID:   e.Debtor,
		CreditorSiteID: e.Creditor,
		MaterialID:     e.Material,
		MaterialName:   name,
		Unit:           e.Unit,
		Quantity:       quantity,
		TotalAmount:    amount,
		VendorUnpaid:   e.VendorUnpaid,
	}
	if err := validation.Struct(d); err != nil {
		return models.MaterialDebt{}, err
	}
	return d, nil
}

// parseDecimal treats an empty value as zero.
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: field '%s' is not a number: %q", validation.ErrInvalid, field, value)
	}
	return d, nil
}
