package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() Roster {
	return Roster{
		TeamName: "Стальные ястребы",
		Players: []Player{
			{Name: "Вратарь", Position: PositionGoalkeeper, Level: 10, Attack: 20, Defense: 80, Stamina: 60},
			{Name: "Защитник", Position: PositionDefender, Level: 11, Attack: 35, Defense: 70, Stamina: 65},
			{Name: "Полузащитник", Position: PositionMidfielder, Level: 12, Attack: 55, Defense: 55, Stamina: 70},
			{Name: "Нападающий", Position: PositionForward, Level: 13, Attack: 80, Defense: 30, Stamina: 65},
		},
		Formation: Formation{Lineup: []string{"Вратарь", "Защитник", "Полузащитник", "Нападающий"}},
	}
}

func TestRoster_ScanValue(t *testing.T) {
	// Arrange
	original := testRoster()

	// Act: сериализуем в JSONB и читаем обратно
	value, err := original.Value()
	require.NoError(t, err)

	var restored Roster
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestRoster_Scan_NilAndEmpty(t *testing.T) {
	var r Roster
	require.NoError(t, r.Scan(nil))
	assert.Empty(t, r.Players, "nil из базы должен давать пустой состав")

	require.NoError(t, r.Scan([]byte{}))
	assert.Empty(t, r.Players)
}

func TestRoster_HasPosition(t *testing.T) {
	roster := testRoster()

	assert.True(t, roster.HasPosition(PositionGoalkeeper))
	assert.True(t, roster.HasPosition(PositionForward))

	noKeeper := Roster{Players: []Player{{Position: PositionForward}}}
	assert.False(t, noKeeper.HasPosition(PositionGoalkeeper), "Состав без вратаря не содержит позицию GK")
}

func TestRoster_PlayersByPosition(t *testing.T) {
	roster := Roster{Players: []Player{
		{Name: "A", Position: PositionDefender},
		{Name: "B", Position: PositionDefender},
		{Name: "C", Position: PositionForward},
	}}

	defenders := roster.PlayersByPosition(PositionDefender)
	require.Len(t, defenders, 2)
	assert.Equal(t, "A", defenders[0].Name)
	assert.Equal(t, "B", defenders[1].Name)

	assert.Empty(t, roster.PlayersByPosition(PositionGoalkeeper))
}

func TestRoster_Clone_DeepCopy(t *testing.T) {
	// Arrange
	original := testRoster()

	// Act
	clone := original.Clone()
	clone.Players[0].Level = 99
	clone.Players[0].FormModifier = 0.5
	clone.Formation.Lineup[0] = "Другой"

	// Assert: оригинал не изменился
	assert.Equal(t, 10, original.Players[0].Level, "Изменение копии не должно трогать оригинал")
	assert.Equal(t, float64(0), original.Players[0].FormModifier)
	assert.Equal(t, "Вратарь", original.Formation.Lineup[0])
}
