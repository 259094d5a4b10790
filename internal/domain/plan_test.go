package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_ValidateValidity(t *testing.T) {
	p := &Plan{ValidityStart: 2024, ValidityEnd: 2027}
	require.NoError(t, p.ValidateValidity())

	p = &Plan{ValidityStart: 2027, ValidityEnd: 2024}
	assert.Error(t, p.ValidateValidity())

	p = &Plan{ValidityStart: 24, ValidityEnd: 27}
	assert.Error(t, p.ValidateValidity())
}

func TestPlan_ValidityLabel(t *testing.T) {
	p := &Plan{ValidityStart: 2024, ValidityEnd: 2027}
	assert.Equal(t, "2024-2027", p.ValidityLabel())
}

func TestGoal_BudgetTotal(t *testing.T) {
	g := &Goal{AnnualBudget: []BudgetYear{
		{Year: 2024, Amount: 1500},
		{Year: 2025, Amount: 2500},
	}}
	assert.Equal(t, 4000.0, g.BudgetTotal())

	empty := &Goal{}
	assert.Equal(t, 0.0, empty.BudgetTotal())
}

func TestGoal_CoversMunicipality(t *testing.T) {
	g := &Goal{Municipalities: []string{"Pasto", "Ipiales"}}
	assert.True(t, g.CoversMunicipality("Pasto"))
	assert.False(t, g.CoversMunicipality("Tumaco"))

	whole := &Goal{Municipalities: []string{WholeTerritory}}
	assert.True(t, whole.CoversMunicipality("Tumaco"))
}

func TestChildLevel(t *testing.T) {
	next, ok := ChildLevel(LevelLine)
	require.True(t, ok)
	assert.Equal(t, LevelComponent, next)

	next, ok = ChildLevel(LevelBet)
	require.True(t, ok)
	assert.Equal(t, LevelInitiative, next)

	_, ok = ChildLevel(LevelInitiative)
	assert.False(t, ok)
}
