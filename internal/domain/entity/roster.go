package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Константы позиций игроков
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DF"
	PositionMidfielder = "MF"
	PositionForward    = "FW"
)

// Player представляет одного игрока в составе команды
type Player struct {
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	Level        int     `json:"level"`
	Attack       int     `json:"attack"`
	Defense      int     `json:"defense"`
	Stamina      int     `json:"stamina"`
	FormModifier float64 `json:"form_modifier,omitempty"`
}

// Formation описывает расстановку команды на поле
type Formation struct {
	Lineup []string `json:"lineup"`
}

// Roster — состав команды. Пользовательский тип для работы с JSONB:
// босс хранит свой состав одной колонкой, атакующий состав приходит в запросе.
type Roster struct {
	TeamName  string    `json:"team_name"`
	Players   []Player  `json:"players"`
	Formation Formation `json:"formation"`
}

// Scan реализует интерфейс sql.Scanner для Roster
// Используется GORM для чтения JSONB данных из базы
func (r *Roster) Scan(value interface{}) error {
	if value == nil {
		*r = Roster{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*r = Roster{}
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// Value реализует интерфейс driver.Valuer для Roster
// Используется GORM для записи Roster в JSONB в базе
func (r Roster) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// PlayersByPosition возвращает игроков заданной позиции
func (r *Roster) PlayersByPosition(position string) []Player {
	var players []Player
	for _, p := range r.Players {
		if p.Position == position {
			players = append(players, p)
		}
	}
	return players
}

// HasPosition проверяет, есть ли в составе хотя бы один игрок на позиции
func (r *Roster) HasPosition(position string) bool {
	for _, p := range r.Players {
		if p.Position == position {
			return true
		}
	}
	return false
}

// Clone возвращает глубокую копию состава.
// Используется при подготовке состава к матчу: сохранённый состав босса
// переиспользуется многими вызовами и не должен мутироваться.
func (r Roster) Clone() Roster {
	clone := r
	clone.Players = make([]Player, len(r.Players))
	copy(clone.Players, r.Players)
	clone.Formation.Lineup = make([]string, len(r.Formation.Lineup))
	copy(clone.Formation.Lineup, r.Formation.Lineup)
	return clone
}
