package bossbattle

import (
	"fmt"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// MatchResult — исход одного симулированного матча с точки зрения атакующего
type MatchResult struct {
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// String возвращает счёт в виде "3:1"
func (m MatchResult) String() string {
	return fmt.Sprintf("%d:%d", m.GoalsFor, m.GoalsAgainst)
}

// Damage возвращает урон по боссу: ровно количество забитых атакующим голов.
// Поражение или ничья с нулём забитых — валидный исход с нулевым уроном.
func (m MatchResult) Damage() int {
	if m.GoalsFor < 0 {
		return 0
	}
	return m.GoalsFor
}

// MatchResolver — внешний симулятор матча. Может быть недетерминированным;
// координатор трактует его как чёрный ящик и никогда не перезапускает
// в рамках одной попытки.
type MatchResolver interface {
	Resolve(attacker, defender entity.Roster) (MatchResult, error)
}
