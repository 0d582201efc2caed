package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/fantasy-api/internal/domain/entity"
)

// ExportLeaderboard выгружает лидерборд босса файлом для админки.
// Формат задаётся query-параметром format: csv (по умолчанию) или xlsx.
func (h *BossHandler) ExportLeaderboard(c *gin.Context) {
	bossID := c.MustGet("bossID").(uint) // Получаем из контекста

	boss, err := h.bossService.GetBossByID(bossID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	// Полная выгрузка, без кеша: админке нужен актуальный журнал
	participants, err := h.bossService.ExportLeaderboard(bossID)
	if err != nil {
		h.handleBossError(c, err)
		return
	}

	filename := fmt.Sprintf("boss_%d_leaderboard", boss.ID)

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportLeaderboardXLSX(c, participants, filename)
	default:
		h.exportLeaderboardCSV(c, participants, filename)
	}
}

// exportLeaderboardCSV экспортирует лидерборд в CSV с правильным экранированием спецсимволов
func (h *BossHandler) exportLeaderboardCSV(c *gin.Context, participants []entity.BossParticipant, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "Команда", "Урон", "Попыток", "Последняя попытка", "Последний счёт"})

	for i, p := range participants {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(p.TeamName),
			strconv.Itoa(p.TotalDamage),
			strconv.Itoa(p.Attempts),
			p.LastAttemptAt.Format("2006-01-02 15:04:05"),
			p.LastMatchResult,
		})
	}
}

// exportLeaderboardXLSX экспортирует лидерборд в Excel через StreamWriter
func (h *BossHandler) exportLeaderboardXLSX(c *gin.Context, participants []entity.BossParticipant, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Лидерборд"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[BossHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "Команда", "Урон", "Попыток", "Последняя попытка", "Последний счёт"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[BossHandler] Ошибка записи заголовков: %v", err)
	}

	for i, p := range participants {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			i + 1,
			sanitizeForExcel(p.TeamName),
			p.TotalDamage,
			p.Attempts,
			p.LastAttemptAt.Format("2006-01-02 15:04:05"),
			p.LastMatchResult,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[BossHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[BossHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[BossHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
