package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pharmabill/pkg/money"
)

func TestRupees_RedondeaADosDecimales(t *testing.T) {
	assert.Equal(t, "₹224.00", money.Rupees(decimal.NewFromInt(224)))
	assert.Equal(t, "₹10.13", money.Rupees(decimal.RequireFromString("10.125")))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "0.00", money.Plain(decimal.Zero))
	assert.Equal(t, "12.35", money.Plain(decimal.RequireFromString("12.345")))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12%", money.Percent(decimal.NewFromInt(12)))
	assert.Equal(t, "2.5%", money.Percent(decimal.RequireFromString("2.50")))
}

func TestFoldKey_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, money.FoldKey("Paracetamol"), money.FoldKey("  PARACETAMOL "))
	assert.NotEqual(t, money.FoldKey("B1"), money.FoldKey("B2"))
}

func TestGrouped_SinSimbolo(t *testing.T) {
	assert.Equal(t, "224.00", money.Grouped(decimal.NewFromInt(224)))
	assert.Contains(t, money.Grouped(decimal.RequireFromString("123456.5")), "456.50")
}
