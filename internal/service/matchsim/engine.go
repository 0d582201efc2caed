package matchsim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
	"github.com/yourusername/fantasy-api/internal/service/bossbattle"
)

// Весовые коэффициенты позиций при подсчёте силы атаки/обороны
var attackWeights = map[string]float64{
	entity.PositionGoalkeeper: 0.0,
	entity.PositionDefender:   0.2,
	entity.PositionMidfielder: 0.6,
	entity.PositionForward:    1.0,
}

var defenseWeights = map[string]float64{
	entity.PositionGoalkeeper: 1.0,
	entity.PositionDefender:   1.0,
	entity.PositionMidfielder: 0.5,
	entity.PositionForward:    0.1,
}

// Engine — рандомизированный симулятор матча.
// Реализует bossbattle.MatchResolver; внедряется в координатор при сборке.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine создает симулятор с заданным seed (0 — от текущего времени)
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Resolve разыгрывает матч между двумя составами и возвращает счёт
// с точки зрения атакующего. Десять моментов на каждую сторону; шанс гола
// в моменте пропорционален силе атаки против силы обороны соперника.
// Всегда завершается, счёт неотрицателен.
func (e *Engine) Resolve(attacker, defender entity.Roster) (bossbattle.MatchResult, error) {
	if len(attacker.Players) == 0 || len(defender.Players) == 0 {
		return bossbattle.MatchResult{}, fmt.Errorf("matchsim: both rosters must have players")
	}

	attackerStrength := teamStrength(attacker, attackWeights, func(p entity.Player) int { return p.Attack })
	attackerDefense := teamStrength(attacker, defenseWeights, func(p entity.Player) int { return p.Defense })
	defenderStrength := teamStrength(defender, attackWeights, func(p entity.Player) int { return p.Attack })
	defenderDefense := teamStrength(defender, defenseWeights, func(p entity.Player) int { return p.Defense })

	e.mu.Lock()
	defer e.mu.Unlock()

	const chances = 10
	result := bossbattle.MatchResult{}
	for i := 0; i < chances; i++ {
		if e.goalScored(attackerStrength, defenderDefense) {
			result.GoalsFor++
		}
		if e.goalScored(defenderStrength, attackerDefense) {
			result.GoalsAgainst++
		}
	}

	return result, nil
}

// goalScored разыгрывает один голевой момент
func (e *Engine) goalScored(attack, defense float64) bool {
	if attack <= 0 {
		return false
	}
	// Базовый шанс ~25% при равных силах, растёт с перевесом атаки
	chance := 0.5 * attack / (attack + defense)
	return e.rng.Float64() < chance
}

// teamStrength считает взвешенную силу состава по одной характеристике.
// Уровень и форма игрока усиливают его вклад.
func teamStrength(roster entity.Roster, weights map[string]float64, stat func(entity.Player) int) float64 {
	total := 0.0
	for _, p := range roster.Players {
		levelFactor := 1.0 + float64(p.Level)*0.02
		formFactor := 1.0 + p.FormModifier
		total += weights[p.Position] * float64(stat(p)) * levelFactor * formFactor
	}
	return total
}
