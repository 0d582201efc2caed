package dto

import (
	"time"

	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// BossResponse представляет босса в формате для ответа клиенту
type BossResponse struct {
	ID                uint           `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	ImageRef          string         `json:"image_ref,omitempty"`
	Status            string         `json:"status"`
	MaxHP             int            `json:"max_hp"`
	CurrentHP         int            `json:"current_hp"`
	HPPercent         int            `json:"hp_percent"`
	Difficulty        string         `json:"difficulty"`
	TotalDamage       int            `json:"total_damage"`
	TotalParticipants int            `json:"total_participants"`
	TotalAttempts     int            `json:"total_attempts"`
	OpposingRoster    *entity.Roster `json:"opposing_roster,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	DefeatedAt        *time.Time     `json:"defeated_at,omitempty"`
}

// ParticipantResponse представляет запись участника в формате для ответа клиенту
type ParticipantResponse struct {
	TeamID          uint      `json:"team_id"`
	TeamName        string    `json:"team_name"`
	TotalDamage     int       `json:"total_damage"`
	Attempts        int       `json:"attempts"`
	LastAttemptAt   time.Time `json:"last_attempt_at"`
	LastMatchResult string    `json:"last_match_result,omitempty"`
}

// LeaderboardResponse представляет лидерборд одного босса
type LeaderboardResponse struct {
	BossID       uint                   `json:"boss_id"`
	Participants []*ParticipantResponse `json:"participants"`
}

// PaginatedBossResponse представляет пагинированный список боссов
type PaginatedBossResponse struct {
	Bosses  []*BossResponse `json:"bosses"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewBossResponse создает DTO для босса.
// includeRoster скрывает состав босса от обычных игроков: он нужен
// только админке.
func NewBossResponse(boss *entity.Boss, includeRoster bool) *BossResponse {
	if boss == nil {
		return nil
	}

	resp := &BossResponse{
		ID:                boss.ID,
		Name:              boss.Name,
		Description:       boss.Description,
		ImageRef:          boss.ImageRef,
		Status:            boss.Status,
		MaxHP:             boss.MaxHP,
		CurrentHP:         boss.CurrentHP,
		HPPercent:         boss.HPPercent(),
		Difficulty:        boss.Difficulty,
		TotalDamage:       boss.TotalDamage,
		TotalParticipants: boss.TotalParticipants,
		TotalAttempts:     boss.TotalAttempts,
		CreatedAt:         boss.CreatedAt,
		DefeatedAt:        boss.DefeatedAt,
	}

	if includeRoster {
		roster := boss.OpposingRoster
		resp.OpposingRoster = &roster
	}

	return resp
}

// NewParticipantResponse создает DTO для записи участника
func NewParticipantResponse(p *entity.BossParticipant) *ParticipantResponse {
	if p == nil {
		return nil
	}
	return &ParticipantResponse{
		TeamID:          p.TeamID,
		TeamName:        p.TeamName,
		TotalDamage:     p.TotalDamage,
		Attempts:        p.Attempts,
		LastAttemptAt:   p.LastAttemptAt,
		LastMatchResult: p.LastMatchResult,
	}
}

// NewLeaderboardResponse создает DTO для лидерборда
func NewLeaderboardResponse(bossID uint, participants []entity.BossParticipant) *LeaderboardResponse {
	resp := &LeaderboardResponse{
		BossID:       bossID,
		Participants: make([]*ParticipantResponse, 0, len(participants)),
	}
	for i := range participants {
		resp.Participants = append(resp.Participants, NewParticipantResponse(&participants[i]))
	}
	return resp
}

// NewPaginatedBossResponse создает DTO для пагинированного списка боссов
func NewPaginatedBossResponse(bosses []entity.Boss, total int64, page, perPage int) *PaginatedBossResponse {
	resp := &PaginatedBossResponse{
		Bosses:  make([]*BossResponse, 0, len(bosses)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for i := range bosses {
		resp.Bosses = append(resp.Bosses, NewBossResponse(&bosses[i], false))
	}
	return resp
}
